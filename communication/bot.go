package communication

import (
	"time"

	"skirmish/game"

	"golang.org/x/exp/rand"
)

// Bot plays the player side automatically. It commits at least half of its pool to attack,
// puts a random share of the rest into defense and never swaps a living frontliner.
type Bot struct {
	rng *rand.Rand
}

func NewBot(seed uint64) *Bot {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Bot{rng: rand.New(rand.NewSource(seed))}
}

func (b *Bot) RequestAllocation(unitName string, pool int) (game.Allocation, error) {
	if pool <= 0 {
		return game.Allocation{}, nil
	}
	attack := pool/2 + b.rng.Intn(pool-pool/2+1)
	defend := b.rng.Intn(pool - attack + 1)
	return game.Allocation{Attack: attack, Defend: defend}, nil
}

func (b *Bot) RequestFrontlinerSwap(team *game.Team) (int, error) {
	return 0, nil
}
