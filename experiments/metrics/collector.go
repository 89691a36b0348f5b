package metrics

import (
	"time"
)

type MatchMetric struct {
	Opponent       string
	Turns          int
	DamageDealt    int
	DamageTaken    int
	BlockedAttacks int // player attacks fully blocked
	Outcome        string
	StartTime      time.Time
	Duration       time.Duration
}

type TournamentMetric struct {
	Seed          uint64
	Outcome       string
	MatchesWon    int
	Turns         int
	EnemyDecision DecisionMetric
	StartTime     time.Time
	Duration      time.Duration
}

type DecisionMetric struct {
	Defensive  int
	Aggressive int
	Balanced   int
}

// Collector records one match at a time. Matches are single-threaded, so collectors are not synchronized.
type Collector interface {
	Start(opponent string)
	AddTurn(dealt, taken int, blocked bool)
	Complete(outcome string) MatchMetric
}

type collector struct {
	current MatchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(opponent string) {
	m.current = MatchMetric{
		Opponent:  opponent,
		StartTime: time.Now(),
	}
}

func (m *collector) AddTurn(dealt, taken int, blocked bool) {
	m.current.Turns++
	m.current.DamageDealt += dealt
	m.current.DamageTaken += taken
	if blocked {
		m.current.BlockedAttacks++
	}
}

func (m *collector) Complete(outcome string) MatchMetric {
	m.current.Outcome = outcome
	m.current.Duration = time.Since(m.current.StartTime)
	return m.current
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(opponent string)                  {}
func (m *dummyCollector) AddTurn(dealt, taken int, blocked bool) {}
func (m *dummyCollector) Complete(outcome string) MatchMetric    { return MatchMetric{} }
