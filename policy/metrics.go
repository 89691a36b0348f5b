package policy

import (
	"sync/atomic"

	"skirmish/game"
)

type DecisionMetrics struct {
	Decisions    int64
	Defensive    int64
	Aggressive   int64
	Balanced     int64
	PointsPooled int64
	PointsSpent  int64
}

type Collector interface {
	AddDecision(regime Regime, pool int, alloc game.Allocation)
	Complete() DecisionMetrics
}

type collector struct {
	decisions    atomic.Int64
	regimes      [3]atomic.Int64
	pointsPooled atomic.Int64
	pointsSpent  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) AddDecision(regime Regime, pool int, alloc game.Allocation) {
	m.decisions.Add(1)
	m.regimes[regime].Add(1)
	m.pointsPooled.Add(int64(pool))
	m.pointsSpent.Add(int64(alloc.Spent()))
}

func (m *collector) Complete() DecisionMetrics {
	return DecisionMetrics{
		Decisions:    m.decisions.Load(),
		Defensive:    m.regimes[Defensive].Load(),
		Aggressive:   m.regimes[Aggressive].Load(),
		Balanced:     m.regimes[Balanced].Load(),
		PointsPooled: m.pointsPooled.Load(),
		PointsSpent:  m.pointsSpent.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) AddDecision(regime Regime, pool int, alloc game.Allocation) {}
func (m *dummyCollector) Complete() DecisionMetrics                                  { return DecisionMetrics{} }
