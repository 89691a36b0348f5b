package engine

import (
	"fmt"

	"skirmish/communication"
	"skirmish/experiments/metrics"
	"skirmish/game"
	"skirmish/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(m *Match)

// TurnResult summarizes one resolved turn.
type TurnResult struct {
	Turn             int
	BasePoints       int
	Promoted         bool
	PlayerUnit       string
	EnemyUnit        string
	PlayerPool       int
	EnemyPool        int
	PlayerAllocation game.Allocation
	EnemyAllocation  game.Allocation
	Outcome          Outcome
	State            State
}

// Match plays one player team against one enemy team until a side is eliminated.
type Match struct {
	Player *game.Team
	Enemy  *game.Team

	controller communication.Controller
	policy     Policy
	reporter   communication.Reporter
	metrics    metrics.Collector

	playerSaved  *game.Ledger
	enemySaved   *game.Ledger
	sharedSaving bool

	maxTurns int
	turn     int
	state    State
	metric   metrics.MatchMetric
}

func WithMaxTurns(turns int) Option {
	return func(m *Match) {
		if turns > 0 {
			m.maxTurns = turns
		}
	}
}

func WithReporter(reporter communication.Reporter) Option {
	return func(m *Match) {
		if reporter != nil {
			m.reporter = reporter
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Match) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// WithPlayerLedger lets the player's saved points outlive the match, e.g. across a tournament.
func WithPlayerLedger(ledger *game.Ledger) Option {
	return func(m *Match) {
		if ledger != nil {
			m.playerSaved = ledger
		}
	}
}

// WithSharedPlayerSavings keeps a single saved-points balance for the whole player side
// instead of one per unit, so a swapped-in frontliner spends what the previous one saved.
func WithSharedPlayerSavings() Option {
	return func(m *Match) {
		m.sharedSaving = true
	}
}

func NewMatch(player, enemy *game.Team, controller communication.Controller, policy Policy, options ...Option) *Match {
	if player == nil || enemy == nil {
		panic("match needs two teams")
	}
	if controller == nil || policy == nil {
		panic("match needs a player controller and an enemy policy")
	}
	m := &Match{ // Default values
		Player:      player,
		Enemy:       enemy,
		controller:  controller,
		policy:      policy,
		reporter:    communication.Discard,
		metrics:     metrics.NewDummyCollector(),
		playerSaved: game.NewLedger(),
		enemySaved:  game.NewLedger(),
		maxTurns:    meta.MAX_TURNS,
		turn:        1,
		state:       TeamSetup,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Match) State() State {
	return m.state
}

// Metric returns what the metrics collector recorded once the match is over.
func (m *Match) Metric() metrics.MatchMetric {
	return m.metric
}

// Turn is the 1-indexed turn counter that drives the base points.
func (m *Match) Turn() int {
	return m.turn
}

// SavedPoints returns what the unit has carried over, on either side.
func (m *Match) SavedPoints(u *game.Unit) int {
	for _, e := range m.Enemy.Units {
		if e == u {
			return m.enemySaved.Get(u.ID)
		}
	}
	return m.playerSaved.Get(m.playerKey(u))
}

func (m *Match) playerKey(u *game.Unit) uuid.UUID {
	if m.sharedSaving {
		return uuid.Nil
	}
	return u.ID
}

// Run plays turns until the match reaches a terminal state.
func (m *Match) Run() (State, error) {
	for !m.state.Terminal() {
		if _, err := m.Step(); err != nil {
			return m.state, err
		}
	}
	return m.state, nil
}

// Step plays a single turn.
func (m *Match) Step() (TurnResult, error) {
	if m.state.Terminal() {
		return TurnResult{State: m.state}, ErrMatchOver
	}
	if m.state == TeamSetup {
		m.start()
		if m.state.Terminal() {
			return TurnResult{State: m.state}, nil
		}
	}
	if m.turn > m.maxTurns {
		m.finish(Stalled)
		log.Warn().Msgf("match against %s stopped after %d turns", m.Enemy.Name, m.maxTurns)
		return TurnResult{Turn: m.turn, State: m.state}, ErrTurnLimit
	}

	result := TurnResult{Turn: m.turn, BasePoints: game.BasePointsForRound(m.turn)}

	// Frontliner
	if m.Player.PromoteFrontliner() {
		result.Promoted = true
		log.Info().Msgf("frontliner has fallen, swapping in %s", m.Player.Frontliner().Name)
	} else {
		slot, err := m.controller.RequestFrontlinerSwap(m.Player)
		if err != nil {
			return m.abort(result, fmt.Errorf("frontliner swap: %w", err))
		}
		if slot != 0 {
			if err := m.Player.Swap(slot); err != nil {
				return m.abort(result, err)
			}
			log.Debug().Msgf("swapped %s to the front", m.Player.Frontliner().Name)
		}
	}

	// Player allocation
	front := m.Player.Frontliner()
	playerKey := m.playerKey(front)
	result.PlayerUnit = front.Name
	result.PlayerPool = game.ComputePool(result.BasePoints, m.playerSaved.Get(playerKey))
	playerAlloc, err := m.controller.RequestAllocation(front.Name, result.PlayerPool)
	if err != nil {
		return m.abort(result, fmt.Errorf("player allocation: %w", err))
	}
	if err := playerAlloc.Validate(result.PlayerPool); err != nil {
		return m.abort(result, fmt.Errorf("player allocation for %s: %w", front.Name, err))
	}
	result.PlayerAllocation = playerAlloc

	// Enemy allocation
	idx := m.Enemy.FirstAlive()
	if idx < 0 {
		// checkOutcome ends the match as soon as the enemy team is wiped
		panic(fmt.Sprintf("enemy team %s has no living unit in an ongoing match", m.Enemy.Name))
	}
	enemy := m.Enemy.Units[idx]
	enemySaved := m.enemySaved.Get(enemy.ID)
	result.EnemyUnit = enemy.Name
	result.EnemyPool = game.ComputePool(result.BasePoints, enemySaved)
	enemyAlloc := m.policy.Decide(enemySaved, result.BasePoints, enemy)
	if err := enemyAlloc.Validate(result.EnemyPool); err != nil {
		return m.abort(result, fmt.Errorf("enemy allocation for %s: %w", enemy.Name, err))
	}
	result.EnemyAllocation = enemyAlloc

	// Resolution
	result.Outcome = Resolve(
		Combatant{Unit: front, Allocation: playerAlloc},
		Combatant{Unit: enemy, Allocation: enemyAlloc},
	)
	m.playerSaved.Set(playerKey, game.ComputeCarryOver(result.PlayerPool, playerAlloc.Spent()))
	m.enemySaved.Set(enemy.ID, game.ComputeCarryOver(result.EnemyPool, enemyAlloc.Spent()))
	m.metrics.AddTurn(result.Outcome.DamageToB, result.Outcome.DamageToA, result.Outcome.BlockedByB)

	log.Debug().
		Int("turn", m.turn).
		Str("player", front.Name).
		Stringer("player_allocation", playerAlloc).
		Str("enemy", enemy.Name).
		Stringer("enemy_allocation", enemyAlloc).
		Int("dealt", result.Outcome.DamageToB).
		Int("taken", result.Outcome.DamageToA).
		Msg("turn resolved")

	m.reporter.ReportRoundEvents(result.Outcome.Events)
	m.reporter.ReportTeamStatus(m.Player.Name, m.Player)
	m.reporter.ReportTeamStatus(m.Enemy.Name, m.Enemy)

	m.checkOutcome()
	if !m.state.Terminal() {
		m.turn++
	}
	result.State = m.state
	return result, nil
}

func (m *Match) start() {
	m.state = RoundInProgress
	m.metrics.Start(m.Enemy.Name)
	log.Info().Msgf("match against %s is starting", m.Enemy.Name)
	m.reporter.ReportTeamStatus(m.Player.Name, m.Player)
	m.reporter.ReportTeamStatus(m.Enemy.Name, m.Enemy)
	m.checkOutcome()
}

// checkOutcome ends the match when a side has no living units. The player team is healed on a win.
func (m *Match) checkOutcome() {
	switch {
	case m.Enemy.IsEliminated():
		m.Player.HealAll()
		m.finish(RoundWon)
		log.Info().Msgf("%s defeated, player team recovered to full health", m.Enemy.Name)
	case m.Player.IsEliminated():
		m.finish(RoundLost)
		log.Info().Msgf("player team was defeated by %s", m.Enemy.Name)
	}
}

func (m *Match) finish(state State) {
	m.state = state
	m.metric = m.metrics.Complete(state.String())
}

func (m *Match) abort(result TurnResult, err error) (TurnResult, error) {
	m.finish(Aborted)
	result.State = m.state
	log.Error().Err(err).Msgf("match against %s aborted", m.Enemy.Name)
	return result, err
}
