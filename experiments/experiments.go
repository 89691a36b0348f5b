package experiments

import (
	"fmt"
	"sync"
	"time"

	"skirmish/communication"
	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/gamemaster"
	"skirmish/policy"
	"skirmish/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Summary aggregates a batch of simulated tournaments.
type Summary struct {
	Tournaments int
	Complete    int
	Lost        int
	Stalled     int
	Aborted     int
	Turns       int
}

func (s Summary) WinRate() float64 {
	if s.Tournaments == 0 {
		return 0
	}
	return float64(s.Complete) / float64(s.Tournaments)
}

// Simulate plays cfg.Simulation.Tournaments tournaments with a bot player on a pool of workers.
// Tournament i uses seed+i, so a batch is reproducible for a fixed seed. Round events are logged at trace level.
func Simulate(cfg config.Config, seed uint64) ([]metrics.TournamentRecord, []metrics.MatchRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	count := cfg.Simulation.Tournaments
	workers := max(1, cfg.Simulation.Goroutines)

	task := make(chan int, count)
	for i := 0; i < count; i++ {
		task <- i
	}
	close(task)

	tournaments := make([]metrics.TournamentRecord, count)
	matches := make([][]metrics.MatchRecord, count)
	errs := make([]error, count)

	log.Info().Msgf("simulating %d tournaments on %d goroutines...", count, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				tournaments[i], matches[i], errs[i] = runTournament(cfg, i+1, seed+uint64(i))
			}
		}()
	}
	wg.Wait()

	var matchRecords []metrics.MatchRecord
	for i := range tournaments {
		if errs[i] != nil {
			return nil, nil, errs[i]
		}
		matchRecords = append(matchRecords, matches[i]...)
	}
	log.Info().Msgf("completed %d tournaments", count)
	return tournaments, matchRecords, nil
}

// runTournament plays one tournament. Stalled and aborted tournaments are recorded, not returned as errors;
// only setup failures are.
func runTournament(cfg config.Config, id int, seed uint64) (metrics.TournamentRecord, []metrics.MatchRecord, error) {
	start := time.Now()
	player, err := cfg.PlayerTeam()
	if err != nil {
		return metrics.TournamentRecord{}, nil, fmt.Errorf("tournament %d: %w", id, err)
	}
	if player == nil {
		if player, err = config.Default().PlayerTeam(); err != nil {
			return metrics.TournamentRecord{}, nil, fmt.Errorf("tournament %d: %w", id, err)
		}
	}

	// teams, enemy policy and bot each get their own stream
	seeds := utils.SplitSeed(seed, 3)
	enemies := gamemaster.GenerateEnemyTeams(cfg.Themes, rand.New(rand.NewSource(seeds[0])))
	decisions := policy.NewCollector()
	heuristic := policy.NewHeuristic(append(cfg.PolicyOptions(seeds[1]), policy.WithMetrics(decisions))...)

	matchOptions := []engine.Option{engine.WithMaxTurns(cfg.MaxTurns)}
	if cfg.SharedPlayerSavings {
		matchOptions = append(matchOptions, engine.WithSharedPlayerSavings())
	}
	reporter := communication.NewLogReporter(log.With().Int("tournament", id).Logger(), zerolog.TraceLevel)
	gm := gamemaster.NewGameMaster(player, enemies, communication.NewBot(seeds[2]), heuristic,
		gamemaster.WithReporter(reporter),
		gamemaster.WithMatchOptions(matchOptions...))

	result, err := gm.Run()
	if err != nil {
		log.Debug().Err(err).Msgf("tournament %d ended early", id)
	}

	d := decisions.Complete()
	record := metrics.TournamentRecord{
		ID: id,
		TournamentMetric: metrics.TournamentMetric{
			Seed:       seed,
			Outcome:    result.Outcome.String(),
			MatchesWon: result.MatchesWon,
			Turns:      result.Turns(),
			EnemyDecision: metrics.DecisionMetric{
				Defensive:  int(d.Defensive),
				Aggressive: int(d.Aggressive),
				Balanced:   int(d.Balanced),
			},
			StartTime: start,
			Duration:  time.Since(start),
		},
	}
	matchRecords := make([]metrics.MatchRecord, len(result.Matches))
	for i, m := range result.Matches {
		matchRecords[i] = metrics.MatchRecord{Tournament: id, Match: i + 1, MatchMetric: m}
	}
	return record, matchRecords, nil
}

func Summarize(records []metrics.TournamentRecord) Summary {
	s := Summary{Tournaments: len(records)}
	for _, r := range records {
		s.Turns += r.Turns
		switch r.Outcome {
		case gamemaster.TournamentComplete.String():
			s.Complete++
		case gamemaster.TournamentLost.String():
			s.Lost++
		case gamemaster.TournamentStalled.String():
			s.Stalled++
		default:
			s.Aborted++
		}
	}
	return s
}

// Store writes the records of one experiment under dir/name/<timestamp>.
func Store(dir, name string, tournaments []metrics.TournamentRecord, matches []metrics.MatchRecord) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteTournamentRecords(tournaments); err != nil {
		return "", fmt.Errorf("failed to write tournament records: %w", err)
	}
	log.Info().Msg("stored tournament records")
	if err := writer.WriteMatchRecords(matches); err != nil {
		return "", fmt.Errorf("failed to write match records: %w", err)
	}
	log.Info().Msg("stored match records")
	return writer.Dir(), nil
}
