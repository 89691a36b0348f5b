package policy

// Regime is the behavioral mode the heuristic picks from a unit's health ratio.
type Regime int

const (
	Balanced Regime = iota
	Defensive
	Aggressive
)

// Default thresholds and follow-up chances.
const (
	LowHealthRatio         = 0.33
	HighHealthRatio        = 0.66
	DefensiveAttackChance  = 0.3
	AggressiveDefendChance = 0.4
)

func (r Regime) String() string {
	switch r {
	case Defensive:
		return "defensive"
	case Aggressive:
		return "aggressive"
	default:
		return "balanced"
	}
}

// SelectRegime maps a health ratio onto a regime. Both thresholds are exclusive.
func (h *Heuristic) SelectRegime(ratio float64) Regime {
	switch {
	case ratio < h.low:
		return Defensive
	case ratio > h.high:
		return Aggressive
	default:
		return Balanced
	}
}
