package game

import (
	"fmt"
	"strings"

	"skirmish/utils"

	"github.com/google/uuid"
)

// UnitType represents the archetype of a combat unit. Each type defines its own base stats.
type UnitType int

const (
	Large UnitType = iota
	Medium
	Light
)

var unitTypeNames = []string{"Large", "Medium", "Light"}

// Stats returns the (maxHealth, baseDamage) pair of the archetype.
func (t UnitType) Stats() (maxHealth, baseDamage int) {
	switch t {
	case Large:
		return 120, 8
	case Medium:
		return 90, 12
	case Light:
		return 60, 18
	default:
		panic(fmt.Sprintf("unknown unit type %d", int(t)))
	}
}

func (t UnitType) Valid() bool {
	return t >= Large && t <= Light
}

func (t UnitType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
	return unitTypeNames[t]
}

// menuChoices are the console menu numbers, indexed by UnitType.
var menuChoices = []string{"1", "2", "3"}

// ParseUnitType accepts a type name (case-insensitive) or its 1-based menu number.
func ParseUnitType(s string) (UnitType, error) {
	s = strings.TrimSpace(s)
	if i := utils.FindIndex(menuChoices, s); i >= 0 {
		return UnitType(i), nil
	}
	i := utils.FindIndexFunc(unitTypeNames, func(name string) bool {
		return strings.EqualFold(name, s)
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnitType, s)
	}
	return UnitType(i), nil
}

func (t UnitType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnitType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *UnitType) UnmarshalText(text []byte) error {
	parsed, err := ParseUnitType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Unit is a single combatant. Health may drop below zero internally; it is only clamped for display.
type Unit struct {
	ID         uuid.UUID
	Name       string
	Type       UnitType
	Health     int
	BaseDamage int
}

// NewUnit creates a unit at full health for the given archetype.
func NewUnit(name string, t UnitType) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnitType, int(t))
	}
	hp, dmg := t.Stats()
	return &Unit{
		ID:         uuid.New(),
		Name:       name,
		Type:       t,
		Health:     hp,
		BaseDamage: dmg,
	}, nil
}

func (u *Unit) IsAlive() bool {
	return u.Health > 0
}

func (u *Unit) MaxHealth() int {
	hp, _ := u.Type.Stats()
	return hp
}

// DisplayHealth is the health shown to players, never below zero.
func (u *Unit) DisplayHealth() int {
	return max(u.Health, 0)
}

// HealthRatio is the clamped health over max health, in [0, 1].
func (u *Unit) HealthRatio() float64 {
	return float64(u.DisplayHealth()) / float64(u.MaxHealth())
}

// Heal restores the unit to its archetype's max health.
func (u *Unit) Heal() {
	u.Health = u.MaxHealth()
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s (%s) - HP: %d", u.Name, u.Type, u.DisplayHealth())
}
