package engine

import (
	"errors"
	"testing"

	"skirmish/experiments/metrics"
	"skirmish/game"

	"github.com/stretchr/testify/require"
)

// scriptedController replays allocations and swap choices; when it runs out it repeats the last one.
type scriptedController struct {
	allocations []game.Allocation
	swaps       []int
	pools       []int
	names       []string
	err         error
}

func (c *scriptedController) RequestAllocation(unitName string, pool int) (game.Allocation, error) {
	if c.err != nil {
		return game.Allocation{}, c.err
	}
	c.pools = append(c.pools, pool)
	c.names = append(c.names, unitName)
	alloc := c.allocations[0]
	if len(c.allocations) > 1 {
		c.allocations = c.allocations[1:]
	}
	return alloc, nil
}

func (c *scriptedController) RequestFrontlinerSwap(team *game.Team) (int, error) {
	if len(c.swaps) == 0 {
		return 0, nil
	}
	slot := c.swaps[0]
	c.swaps = c.swaps[1:]
	return slot, nil
}

// fixedPolicy always returns the same allocation and records the pools it was offered.
type fixedPolicy struct {
	alloc game.Allocation
	calls []policyCall
}

type policyCall struct {
	saved, base int
	unit        string
}

func (p *fixedPolicy) Decide(savedPoints, basePoints int, unit *game.Unit) game.Allocation {
	p.calls = append(p.calls, policyCall{saved: savedPoints, base: basePoints, unit: unit.Name})
	return p.alloc
}

type recordingReporter struct {
	events [][]game.Event
}

func (r *recordingReporter) ReportRoundEvents(events []game.Event)             { r.events = append(r.events, events) }
func (r *recordingReporter) ReportTeamStatus(teamName string, team *game.Team) {}

func newTeam(t *testing.T, name string, types ...game.UnitType) *game.Team {
	t.Helper()
	units := make([]*game.Unit, len(types))
	for i, ut := range types {
		units[i] = newUnit(t, name+"_"+string(rune('1'+i)), ut)
	}
	team, err := game.NewTeam(name, units...)
	require.NoError(t, err)
	return team
}

func TestMatchStep(t *testing.T) {
	t.Run("first turn uses round 1 base points", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		ctrl := &scriptedController{allocations: []game.Allocation{{Attack: 2}}}
		policy := &fixedPolicy{alloc: game.Allocation{Defend: 1}}
		m := NewMatch(player, enemy, ctrl, policy)

		result, err := m.Step()

		require.NoError(t, err)
		require.Equal(t, 2, result.BasePoints)
		require.Equal(t, 2, result.PlayerPool)
		require.Equal(t, 2, result.EnemyPool)
		require.Equal(t, 120-18, enemy.Units[0].Health)
		require.Equal(t, RoundInProgress, m.State())
		require.Equal(t, 2, m.Turn())
		require.Equal(t, []policyCall{{saved: 0, base: 2, unit: "Enemy_1"}}, policy.calls)
	})

	t.Run("unspent points carry over per unit", func(t *testing.T) {
		player := newTeam(t, "Player", game.Large, game.Large, game.Large)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}}
		policy := &fixedPolicy{}
		m := NewMatch(player, enemy, ctrl, policy)

		for i := 0; i < 5; i++ {
			_, err := m.Step()
			require.NoError(t, err)
		}

		// Base points 2,3,4,4,4 with nothing spent: pools 2,5,8,8,8.
		require.Equal(t, []int{2, 5, 8, 8, 8}, ctrl.pools)
		require.Equal(t, 8, m.SavedPoints(player.Units[0]))
		require.Equal(t, 8, m.SavedPoints(enemy.Units[0]))
		require.Equal(t, []int{0, 2, 5, 8, 8}, []int{policy.calls[0].saved, policy.calls[1].saved, policy.calls[2].saved, policy.calls[3].saved, policy.calls[4].saved})
	})

	t.Run("swapped-in unit brings its own savings", func(t *testing.T) {
		player := newTeam(t, "Player", game.Large, game.Large, game.Large)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}, swaps: []int{0, 1}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		_, err := m.Step() // Player_1 saves 2
		require.NoError(t, err)
		result, err := m.Step() // Player_2 starts from 0
		require.NoError(t, err)

		require.Equal(t, "Player_2", result.PlayerUnit)
		require.Equal(t, 3, result.PlayerPool)
		require.Equal(t, 2, m.SavedPoints(player.Units[1]), "Player_1 keeps its savings in its new slot")
	})

	t.Run("shared savings follow the frontliner slot", func(t *testing.T) {
		player := newTeam(t, "Player", game.Large, game.Large, game.Large)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}, swaps: []int{0, 1}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{}, WithSharedPlayerSavings())

		_, err := m.Step()
		require.NoError(t, err)
		result, err := m.Step()
		require.NoError(t, err)

		require.Equal(t, "Player_2", result.PlayerUnit)
		require.Equal(t, 5, result.PlayerPool)
	})

	t.Run("dead frontliner is promoted without asking", func(t *testing.T) {
		player := newTeam(t, "Player", game.Medium, game.Medium, game.Medium)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		player.Units[0].Health = 0
		player.Units[1].Health = -2
		ctrl := &scriptedController{allocations: []game.Allocation{{}}, swaps: []int{1}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		result, err := m.Step()

		require.NoError(t, err)
		require.True(t, result.Promoted)
		require.Equal(t, "Player_3", result.PlayerUnit)
		require.Equal(t, []int{1}, ctrl.swaps, "Swap prompt should be skipped")
	})

	t.Run("enemy acts with its first living unit", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		enemy.Units[0].Health = 0
		ctrl := &scriptedController{allocations: []game.Allocation{{Attack: 1}}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		result, err := m.Step()

		require.NoError(t, err)
		require.Equal(t, "Enemy_2", result.EnemyUnit)
		require.Equal(t, 60-18, enemy.Units[1].Health)
		require.Equal(t, "Enemy_1", enemy.Units[0].Name, "Enemy order never changes")
	})

	t.Run("invalid swap aborts", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		player.Units[2].Health = 0
		ctrl := &scriptedController{allocations: []game.Allocation{{}}, swaps: []int{2}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		_, err := m.Step()

		require.ErrorIs(t, err, game.ErrInvalidSwap)
		require.Equal(t, Aborted, m.State())
	})
}

func TestMatchAllocationOverflow(t *testing.T) {
	t.Run("player overspending aborts before any damage", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		ctrl := &scriptedController{allocations: []game.Allocation{{Attack: 3}}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		_, err := m.Step()

		var overflow *game.AllocationOverflowError
		require.True(t, errors.As(err, &overflow))
		require.Equal(t, 2, overflow.Pool)
		require.Equal(t, Aborted, m.State())
		require.Equal(t, 60, enemy.Units[0].Health)

		_, err = m.Step()
		require.ErrorIs(t, err, ErrMatchOver)
	})

	t.Run("enemy overspending aborts", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{alloc: game.Allocation{Attack: 2, Defend: 1}})

		_, err := m.Step()

		var overflow *game.AllocationOverflowError
		require.True(t, errors.As(err, &overflow))
		require.Equal(t, 60, player.Units[0].Health)
	})
}

func TestMatchRun(t *testing.T) {
	t.Run("player wins and is healed", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		ctrl := &scriptedController{allocations: []game.Allocation{{Attack: 2}}}
		policy := &fixedPolicy{alloc: game.Allocation{Attack: 1}}
		collector := metrics.NewCollector()
		m := NewMatch(player, enemy, ctrl, policy, WithMetrics(collector))

		state, err := m.Run()

		require.NoError(t, err)
		require.Equal(t, RoundWon, state)
		require.Zero(t, enemy.AliveCount())
		for _, u := range player.Units {
			require.Equal(t, 60, u.Health)
		}
		metric := m.Metric()
		require.Equal(t, "won", metric.Outcome)
		require.Equal(t, "Enemy", metric.Opponent)
		require.Equal(t, m.Turn(), metric.Turns)
		require.GreaterOrEqual(t, metric.DamageDealt, 180)
	})

	t.Run("player loses", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}}
		policy := &fixedPolicy{alloc: game.Allocation{Attack: 2}}
		reporter := &recordingReporter{}
		m := NewMatch(player, enemy, ctrl, policy, WithReporter(reporter))

		state, err := m.Run()

		require.NoError(t, err)
		require.Equal(t, RoundLost, state)
		require.True(t, player.IsEliminated())
		require.Len(t, reporter.events, m.Turn())
		require.Equal(t, "Enemy_1", reporter.events[0][0].Actor)
	})

	t.Run("zero-attack stalemate stops at the turn limit", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		ctrl := &scriptedController{allocations: []game.Allocation{{}}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{}, WithMaxTurns(25))

		state, err := m.Run()

		require.ErrorIs(t, err, ErrTurnLimit)
		require.Equal(t, Stalled, state)
		require.Len(t, ctrl.pools, 25)
	})

	t.Run("eliminated teams end the match before any turn", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		for _, u := range enemy.Units {
			u.Health = -1
		}
		ctrl := &scriptedController{allocations: []game.Allocation{{}}}
		m := NewMatch(player, enemy, ctrl, &fixedPolicy{})

		state, err := m.Run()

		require.NoError(t, err)
		require.Equal(t, RoundWon, state)
		require.Empty(t, ctrl.pools)
	})

	t.Run("enemy team wiped outside the match panics", func(t *testing.T) {
		player := newTeam(t, "Player", game.Large, game.Large, game.Large)
		enemy := newTeam(t, "Enemy", game.Large, game.Large, game.Large)
		m := NewMatch(player, enemy, &scriptedController{allocations: []game.Allocation{{}}}, &fixedPolicy{})
		_, err := m.Step()
		require.NoError(t, err)

		for _, u := range enemy.Units {
			u.Health = 0
		}

		require.Panics(t, func() { m.Step() })
	})

	t.Run("controller failure aborts", func(t *testing.T) {
		player := newTeam(t, "Player", game.Light, game.Light, game.Light)
		enemy := newTeam(t, "Enemy", game.Light, game.Light, game.Light)
		boom := errors.New("input closed")
		m := NewMatch(player, enemy, &scriptedController{err: boom}, &fixedPolicy{})

		state, err := m.Run()

		require.ErrorIs(t, err, boom)
		require.Equal(t, Aborted, state)
	})
}
