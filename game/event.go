package game

import "fmt"

// Event records the outcome of one attack direction within a turn.
type Event struct {
	Actor        string `json:"actor"`
	Target       string `json:"target"`
	AttackPoints int    `json:"attack_points"`
	DefendPoints int    `json:"defend_points"`
	Damage       int    `json:"damage"`
	Blocked      bool   `json:"blocked"`
}

func (e Event) String() string {
	if e.Blocked {
		return fmt.Sprintf("%s's attack (%d pts) was blocked.", e.Actor, e.AttackPoints)
	}
	return fmt.Sprintf("%s attacks %s (atk %d vs def %d) -> %d dmg",
		e.Actor, e.Target, e.AttackPoints, e.DefendPoints, e.Damage)
}
