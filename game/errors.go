package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName     = errors.New("unit name cannot be empty")
	ErrUnknownUnitType = errors.New("unknown unit type")
	ErrTeamSize        = errors.New("invalid team size")
	ErrInvalidSwap     = errors.New("invalid frontliner swap")
)

// AllocationOverflowError reports an allocation that spends more than its pool.
type AllocationOverflowError struct {
	Pool   int
	Attack int
	Defend int
}

func (e *AllocationOverflowError) Error() string {
	return fmt.Sprintf("allocation overflow: attack %d + defend %d exceeds pool %d", e.Attack, e.Defend, e.Pool)
}
