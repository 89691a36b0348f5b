package engine

import (
	"errors"

	"skirmish/game"
)

var (
	ErrTurnLimit = errors.New("turn limit reached without a winner")
	ErrMatchOver = errors.New("match is over - no turns allowed")
)

// Policy chooses the enemy's allocation for its acting unit.
type Policy interface {
	Decide(savedPoints, basePoints int, unit *game.Unit) game.Allocation
}

// State is the lifecycle of a match.
type State int

const (
	TeamSetup State = iota
	RoundInProgress
	RoundWon
	RoundLost
	Stalled
	Aborted
)

func (s State) String() string {
	switch s {
	case TeamSetup:
		return "setup"
	case RoundInProgress:
		return "in_progress"
	case RoundWon:
		return "won"
	case RoundLost:
		return "lost"
	case Stalled:
		return "stalled"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s >= RoundWon
}
