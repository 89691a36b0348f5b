package gamemaster

import (
	"errors"
	"fmt"
	"strings"

	"skirmish/communication"
	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/game"
	"skirmish/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Outcome is the terminal result of a tournament.
type Outcome int

const (
	TournamentComplete Outcome = iota
	TournamentLost
	TournamentStalled
	TournamentAborted
)

func (o Outcome) String() string {
	switch o {
	case TournamentComplete:
		return "complete"
	case TournamentLost:
		return "lost"
	case TournamentStalled:
		return "stalled"
	default:
		return "aborted"
	}
}

type Result struct {
	Outcome    Outcome
	MatchesWon int
	Matches    []metrics.MatchMetric
}

// Turns is the total number of turns played across all matches.
func (r Result) Turns() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Turns
	}
	return total
}

// Announcer receives free-form tournament messages.
type Announcer interface {
	Say(format string, args ...any)
}

type Option func(gm *GameMaster)

// GameMaster runs the player team through every enemy team in order.
type GameMaster struct {
	Player  *game.Team
	Enemies []*game.Team

	controller   communication.Controller
	policy       engine.Policy
	reporter     communication.Reporter
	announcer    Announcer
	matchOptions []engine.Option
	playerSaved  *game.Ledger
}

func WithReporter(reporter communication.Reporter) Option {
	return func(gm *GameMaster) {
		gm.reporter = reporter
	}
}

func WithAnnouncer(announcer Announcer) Option {
	return func(gm *GameMaster) {
		gm.announcer = announcer
	}
}

// WithMatchOptions passes extra options to every match, e.g. engine.WithMaxTurns.
func WithMatchOptions(options ...engine.Option) Option {
	return func(gm *GameMaster) {
		gm.matchOptions = append(gm.matchOptions, options...)
	}
}

func NewGameMaster(player *game.Team, enemies []*game.Team, controller communication.Controller, policy engine.Policy, options ...Option) *GameMaster {
	gm := &GameMaster{
		Player:      player,
		Enemies:     enemies,
		controller:  controller,
		policy:      policy,
		reporter:    communication.Discard,
		playerSaved: game.NewLedger(),
	}
	for _, option := range options {
		option(gm)
	}
	return gm
}

func (gm *GameMaster) say(format string, args ...any) {
	if gm.announcer != nil {
		gm.announcer.Say(format, args...)
	}
}

// Run plays the tournament. The player's saved points carry across matches; the enemies' do not.
func (gm *GameMaster) Run() (Result, error) {
	var result Result
	log.Info().Msgf("tournament starting with %d enemy teams", len(gm.Enemies))

	for i, enemy := range gm.Enemies {
		gm.say("\n== Round %d: %s ==", i+1, enemy.Name)

		options := append([]engine.Option{
			engine.WithReporter(gm.reporter),
			engine.WithMetrics(metrics.NewCollector()),
			engine.WithPlayerLedger(gm.playerSaved),
		}, gm.matchOptions...)
		match := engine.NewMatch(gm.Player, enemy, gm.controller, gm.policy, options...)

		state, err := match.Run()
		result.Matches = append(result.Matches, match.Metric())
		switch {
		case errors.Is(err, engine.ErrTurnLimit):
			result.Outcome = TournamentStalled
			return result, fmt.Errorf("round %d against %s: %w", i+1, enemy.Name, err)
		case err != nil:
			result.Outcome = TournamentAborted
			return result, fmt.Errorf("round %d against %s: %w", i+1, enemy.Name, err)
		case state == engine.RoundLost:
			gm.say("Your team was defeated.")
			result.Outcome = TournamentLost
			log.Info().Msgf("tournament lost in round %d", i+1)
			return result, nil
		}

		result.MatchesWon++
		gm.say("Enemy team defeated! Your team has recovered to full health!")
	}

	gm.say("\nTournament complete!")
	log.Info().Msg("tournament complete")
	result.Outcome = TournamentComplete
	return result, nil
}

// GenerateEnemyTeam builds a team of random archetypes named after the theme.
func GenerateEnemyTeam(theme string, r *rand.Rand) *game.Team {
	prefix := strings.ReplaceAll(strings.TrimSpace(theme), " ", "_")
	units := make([]*game.Unit, meta.TEAM_SIZE)
	for slot := range units {
		unitType := game.UnitType(r.Intn(3))
		u, err := game.NewUnit(fmt.Sprintf("%s_%d", prefix, slot+1), unitType)
		if err != nil {
			panic(fmt.Sprintf("generated unit is invalid: %v", err))
		}
		units[slot] = u
	}
	team, err := game.NewTeam(theme, units...)
	if err != nil {
		panic(fmt.Sprintf("generated team is invalid: %v", err))
	}
	return team
}

// GenerateEnemyTeams builds one team per theme, in order.
func GenerateEnemyTeams(themes []string, r *rand.Rand) []*game.Team {
	teams := make([]*game.Team, len(themes))
	for i, theme := range themes {
		teams[i] = GenerateEnemyTeam(theme, r)
	}
	return teams
}
