package game

import (
	"fmt"

	"skirmish/meta"

	"github.com/google/uuid"
)

// BasePointsForRound returns the base points of a 1-indexed round, growing until capped at 4.
func BasePointsForRound(round int) int {
	if round < 1 {
		panic(fmt.Sprintf("round must be >= 1, got %d", round))
	}
	return min(meta.MAX_BASE_POINTS, round+1)
}

// ComputePool adds saved points to the base points, capped at 8.
func ComputePool(basePoints, savedPoints int) int {
	return max(0, min(meta.MAX_POOL, basePoints+savedPoints))
}

// ComputeCarryOver returns the points saved for the acting unit's next turn.
func ComputeCarryOver(pool, spent int) int {
	if spent < 0 || spent > pool {
		panic(fmt.Sprintf("spent %d outside pool %d", spent, pool))
	}
	return min(meta.MAX_POOL, pool-spent)
}

// Ledger tracks saved points per unit identity.
type Ledger struct {
	saved map[uuid.UUID]int
}

func NewLedger() *Ledger {
	return &Ledger{saved: make(map[uuid.UUID]int)}
}

func (l *Ledger) Get(id uuid.UUID) int {
	return l.saved[id]
}

// Set stores a balance, capped at 8.
func (l *Ledger) Set(id uuid.UUID, points int) {
	l.saved[id] = max(0, min(meta.MAX_POOL, points))
}

func (l *Ledger) Reset() {
	clear(l.saved)
}

func (l *Ledger) Len() int {
	return len(l.saved)
}
