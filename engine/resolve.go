package engine

import "skirmish/game"

// Combatant is an acting unit together with the allocation it committed this turn.
type Combatant struct {
	Unit       *game.Unit
	Allocation game.Allocation
}

// Outcome is the result of resolving both attack directions of a turn.
type Outcome struct {
	Events     []game.Event
	DamageToA  int
	DamageToB  int
	BlockedByA bool // b attacked and a blocked it
	BlockedByB bool // a attacked and b blocked it
}

// Damage is baseDamage per attack point that exceeds the opposing defense.
func Damage(attack, defend, baseDamage int) int {
	if attack <= defend {
		return 0
	}
	return baseDamage * (attack - defend)
}

// ResolveDirection computes one attack without applying it. It reports false when no attack was attempted.
func ResolveDirection(attacker, defender Combatant) (game.Event, bool) {
	attack := attacker.Allocation.Attack
	defend := defender.Allocation.Defend
	if attack <= 0 {
		return game.Event{}, false
	}
	dmg := Damage(attack, defend, attacker.Unit.BaseDamage)
	return game.Event{
		Actor:        attacker.Unit.Name,
		Target:       defender.Unit.Name,
		AttackPoints: attack,
		DefendPoints: defend,
		Damage:       dmg,
		Blocked:      dmg == 0,
	}, true
}

// Resolve evaluates both directions against the committed allocations, then applies the damage.
// Health has no floor here.
func Resolve(a, b Combatant) Outcome {
	var out Outcome
	forward, attackedB := ResolveDirection(a, b)
	backward, attackedA := ResolveDirection(b, a)

	if attackedB {
		out.Events = append(out.Events, forward)
		out.DamageToB = forward.Damage
		out.BlockedByB = forward.Blocked
	}
	if attackedA {
		out.Events = append(out.Events, backward)
		out.DamageToA = backward.Damage
		out.BlockedByA = backward.Blocked
	}

	b.Unit.Health -= out.DamageToB
	a.Unit.Health -= out.DamageToA
	return out
}
