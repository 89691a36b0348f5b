package policy

import (
	"testing"

	"skirmish/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func unitAt(t *testing.T, unitType game.UnitType, health int) *game.Unit {
	t.Helper()
	u, err := game.NewUnit("Enemy", unitType)
	require.NoError(t, err)
	u.Health = health
	return u
}

func TestSelectRegime(t *testing.T) {
	h := NewHeuristic(WithSeed(1))

	require.Equal(t, Defensive, h.SelectRegime(0))
	require.Equal(t, Defensive, h.SelectRegime(0.32))
	require.Equal(t, Balanced, h.SelectRegime(0.33))
	require.Equal(t, Balanced, h.SelectRegime(0.5))
	require.Equal(t, Balanced, h.SelectRegime(0.66))
	require.Equal(t, Aggressive, h.SelectRegime(0.67))
	require.Equal(t, Aggressive, h.SelectRegime(1))

	t.Run("custom thresholds", func(t *testing.T) {
		h := NewHeuristic(WithSeed(1), WithThresholds(0.5, 0.9))
		require.Equal(t, Defensive, h.SelectRegime(0.4))
		require.Equal(t, Balanced, h.SelectRegime(0.8))
	})

	t.Run("invalid thresholds are ignored", func(t *testing.T) {
		h := NewHeuristic(WithSeed(1), WithThresholds(0.9, 0.1))
		require.Equal(t, Defensive, h.SelectRegime(0.2))
		require.Equal(t, Aggressive, h.SelectRegime(0.7))
	})
}

func TestDecideStaysWithinPool(t *testing.T) {
	h := NewHeuristic(WithSeed(42))
	healths := map[string]int{
		"defensive":  10,
		"balanced":   60,
		"aggressive": 120,
		"fallen":     -20,
	}
	for name, health := range healths {
		t.Run(name, func(t *testing.T) {
			u := unitAt(t, game.Large, health)
			for base := 0; base <= 4; base++ {
				for saved := 0; saved <= 8; saved++ {
					pool := game.ComputePool(base, saved)
					for i := 0; i < 50; i++ {
						alloc := h.Decide(saved, base, u)
						require.GreaterOrEqual(t, alloc.Attack, 0)
						require.GreaterOrEqual(t, alloc.Defend, 0)
						require.LessOrEqual(t, alloc.Spent(), pool)
						require.NoError(t, alloc.Validate(pool))
					}
				}
			}
		})
	}
}

func TestDecideEmptyPool(t *testing.T) {
	h := NewHeuristic(WithSeed(3))
	for _, health := range []int{5, 60, 120} {
		alloc := h.Decide(0, 0, unitAt(t, game.Large, health))
		require.Equal(t, game.Allocation{}, alloc, "Empty pool should never draw")
	}
}

func TestDecideDefensive(t *testing.T) {
	h := NewHeuristic(WithSeed(7))
	u := unitAt(t, game.Large, 20) // ratio 0.17

	for pool := 1; pool <= 8; pool++ {
		for i := 0; i < 100; i++ {
			alloc := h.Decide(pool, 0, u)
			require.GreaterOrEqual(t, alloc.Defend, pool/2)
			require.LessOrEqual(t, alloc.Spent(), pool)
		}
	}
}

func TestDecideAggressive(t *testing.T) {
	h := NewHeuristic(WithSeed(11))
	u := unitAt(t, game.Medium, 90)

	for pool := 1; pool <= 8; pool++ {
		for i := 0; i < 100; i++ {
			alloc := h.Decide(pool, 0, u)
			require.GreaterOrEqual(t, alloc.Attack, pool/2)
			require.LessOrEqual(t, alloc.Spent(), pool)
		}
	}
}

func TestDecideFollowUps(t *testing.T) {
	t.Run("defensive never attacks without the follow-up chance", func(t *testing.T) {
		h := NewHeuristic(WithSeed(5), WithFollowUpChances(0, 0))
		u := unitAt(t, game.Light, 10)
		for i := 0; i < 200; i++ {
			require.Zero(t, h.Decide(8, 0, u).Attack)
		}
	})

	t.Run("aggressive always defends leftovers with certain follow-up", func(t *testing.T) {
		h := NewHeuristic(WithSeed(5), WithFollowUpChances(1, 1))
		u := unitAt(t, game.Light, 60)
		for i := 0; i < 200; i++ {
			alloc := h.Decide(8, 0, u)
			if alloc.Attack < 8 {
				require.GreaterOrEqual(t, alloc.Defend, 1)
			}
		}
	})
}

func TestLightUnitLowHealthScenario(t *testing.T) {
	// Light unit at 15/60 health (ratio 0.25) with a full pool of 8.
	u := unitAt(t, game.Light, 15)
	for seed := uint64(1); seed <= 20; seed++ {
		h := NewHeuristic(WithSeed(seed))
		for i := 0; i < 50; i++ {
			alloc := h.Decide(8, 4, u)
			require.GreaterOrEqual(t, alloc.Defend, 4)
			require.LessOrEqual(t, alloc.Defend, 8)
		}
	}
}

func TestDecideIsReproducible(t *testing.T) {
	u := unitAt(t, game.Medium, 50)
	a := NewHeuristic(WithSource(rand.NewSource(99)))
	b := NewHeuristic(WithSource(rand.NewSource(99)))
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Decide(i%9, 2, u), b.Decide(i%9, 2, u))
	}
}

func TestDrawRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	t.Run("closed interval", func(t *testing.T) {
		seen := map[int]bool{}
		for i := 0; i < 500; i++ {
			v, err := drawRange(r, 2, 4)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, 2)
			require.LessOrEqual(t, v, 4)
			seen[v] = true
		}
		require.Len(t, seen, 3, "Both bounds should be reachable")
	})

	t.Run("single value", func(t *testing.T) {
		v, err := drawRange(r, 0, 0)
		require.NoError(t, err)
		require.Zero(t, v)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := drawRange(r, 1, 0)
		require.ErrorIs(t, err, ErrEmptyDrawRange)
	})
}

func TestDecisionMetrics(t *testing.T) {
	collector := NewCollector()
	h := NewHeuristic(WithSeed(2), WithMetrics(collector))

	h.Decide(0, 2, unitAt(t, game.Large, 120))
	h.Decide(0, 2, unitAt(t, game.Large, 60))
	h.Decide(0, 2, unitAt(t, game.Large, 10))
	h.Decide(0, 0, unitAt(t, game.Large, 10))

	got := collector.Complete()
	require.Equal(t, int64(4), got.Decisions)
	require.Equal(t, int64(1), got.Aggressive)
	require.Equal(t, int64(1), got.Balanced)
	require.Equal(t, int64(2), got.Defensive)
	require.Equal(t, int64(6), got.PointsPooled)
	require.LessOrEqual(t, got.PointsSpent, got.PointsPooled)
}
