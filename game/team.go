package game

import (
	"fmt"

	"skirmish/meta"
	"skirmish/utils"
)

// Team is an ordered, fixed-size squad. Slot 0 is the frontliner.
type Team struct {
	Name  string
	Units []*Unit
}

// NewTeam builds a team from exactly meta.TEAM_SIZE units.
func NewTeam(name string, units ...*Unit) (*Team, error) {
	if len(units) != meta.TEAM_SIZE {
		return nil, fmt.Errorf("%w: got %d units, want %d", ErrTeamSize, len(units), meta.TEAM_SIZE)
	}
	for i, u := range units {
		if u == nil {
			return nil, fmt.Errorf("%w: slot %d is empty", ErrTeamSize, i)
		}
	}
	return &Team{Name: name, Units: units}, nil
}

func (t *Team) AliveCount() int {
	count := 0
	for _, u := range t.Units {
		if u.IsAlive() {
			count++
		}
	}
	return count
}

func (t *Team) IsEliminated() bool {
	return t.AliveCount() == 0
}

// FirstAlive returns the slot of the first living unit, or -1 when the team is eliminated.
func (t *Team) FirstAlive() int {
	return utils.FindIndexFunc(t.Units, (*Unit).IsAlive)
}

func (t *Team) Frontliner() *Unit {
	return t.Units[0]
}

// Swap moves the unit in slot to the front. The target must be alive.
func (t *Team) Swap(slot int) error {
	if slot < 0 || slot >= len(t.Units) {
		return fmt.Errorf("%w: slot %d out of range", ErrInvalidSwap, slot)
	}
	if !t.Units[slot].IsAlive() {
		return fmt.Errorf("%w: %s in slot %d has fallen", ErrInvalidSwap, t.Units[slot].Name, slot)
	}
	t.Units[0], t.Units[slot] = t.Units[slot], t.Units[0]
	return nil
}

// PromoteFrontliner swaps the first living unit into slot 0 when the frontliner has fallen.
// It reports whether a swap happened.
func (t *Team) PromoteFrontliner() bool {
	if t.Units[0].IsAlive() {
		return false
	}
	next := t.FirstAlive()
	if next < 0 {
		return false
	}
	t.Units[0], t.Units[next] = t.Units[next], t.Units[0]
	return true
}

func (t *Team) HealAll() {
	for _, u := range t.Units {
		u.Heal()
	}
}
