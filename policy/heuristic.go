package policy

import (
	"fmt"
	"time"

	"skirmish/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(h *Heuristic)

// Heuristic allocates an enemy unit's pool from its health ratio. It is not safe for concurrent use.
type Heuristic struct {
	rng          *rand.Rand
	low          float64
	high         float64
	attackChance float64 // follow-up attack while defensive
	defendChance float64 // follow-up defend while aggressive
	metrics      Collector
}

func WithSource(src rand.Source) Option {
	return func(h *Heuristic) {
		if src != nil {
			h.rng = rand.New(src)
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(h *Heuristic) {
		h.rng = rand.New(rand.NewSource(seed))
	}
}

func WithThresholds(low, high float64) Option {
	return func(h *Heuristic) {
		if low >= 0 && high <= 1 && low <= high {
			h.low = low
			h.high = high
		}
	}
}

func WithFollowUpChances(attack, defend float64) Option {
	return func(h *Heuristic) {
		if attack >= 0 && attack <= 1 {
			h.attackChance = attack
		}
		if defend >= 0 && defend <= 1 {
			h.defendChance = defend
		}
	}
}

func WithMetrics(collector Collector) Option {
	return func(h *Heuristic) {
		if collector != nil {
			h.metrics = collector
		}
	}
}

func NewHeuristic(options ...Option) *Heuristic {
	h := &Heuristic{ // Default values
		low:          LowHealthRatio,
		high:         HighHealthRatio,
		attackChance: DefensiveAttackChance,
		defendChance: AggressiveDefendChance,
		metrics:      NewDummyCollector(),
	}
	for _, option := range options {
		option(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return h
}

// Decide splits min(8, saved+base) between attack and defend for unit.
// Points left over are not returned; the caller saves pool - attack - defend.
func (h *Heuristic) Decide(savedPoints, basePoints int, unit *game.Unit) game.Allocation {
	pool := game.ComputePool(basePoints, savedPoints)
	regime := h.SelectRegime(unit.HealthRatio())
	if pool == 0 {
		h.metrics.AddDecision(regime, pool, game.Allocation{})
		return game.Allocation{}
	}

	var alloc game.Allocation
	remaining := pool
	switch regime {
	case Defensive:
		alloc.Defend = h.draw(pool/2, pool)
		remaining -= alloc.Defend
		if remaining > 0 && chance(h.rng, h.attackChance) {
			alloc.Attack = h.draw(1, remaining)
		}
	case Aggressive:
		alloc.Attack = h.draw(pool/2, pool)
		remaining -= alloc.Attack
		if remaining > 0 && chance(h.rng, h.defendChance) {
			alloc.Defend = h.draw(1, remaining)
		}
	default:
		alloc.Attack = h.draw(0, pool)
		remaining -= alloc.Attack
		if remaining > 0 {
			alloc.Defend = h.draw(0, remaining)
		}
	}

	log.Debug().
		Str("unit", unit.Name).
		Str("regime", regime.String()).
		Int("pool", pool).
		Int("attack", alloc.Attack).
		Int("defend", alloc.Defend).
		Msg("enemy allocation")
	h.metrics.AddDecision(regime, pool, alloc)
	return alloc
}

func (h *Heuristic) draw(lo, hi int) int {
	v, err := drawRange(h.rng, lo, hi)
	if err != nil {
		panic(fmt.Sprintf("guarded draw failed: %v", err))
	}
	return v
}
