package main

import (
	"fmt"
	"os"
	"time"

	"skirmish/communication"
	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments"
	"skirmish/gamemaster"
	"skirmish/policy"
	"skirmish/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

type options struct {
	configPath string
	seed       uint64
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "skirmish",
		Short:        "Turn-based squad combat against heuristic enemy teams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly})
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML tournament config")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "trace, debug, info, warn or error")

	root.AddCommand(newPlayCommand(opts), newSimulateCommand(opts))
	return root
}

// loadConfig reads the config file if given and applies the flag overrides.
func (o *options) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Info().Msgf("using seed %d", cfg.Seed)
	return cfg, nil
}

func newPlayCommand(opts *options) *cobra.Command {
	var eventsPath string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a tournament from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			console := communication.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			console.Say("=== Welcome to the Skirmish Tournament ===")
			console.Say("Defeat %d enemy teams to win!\n", len(cfg.Themes))

			// A config file fixes the player's team; otherwise it is drafted interactively.
			player, err := cfg.PlayerTeam()
			if err != nil {
				return err
			}
			if opts.configPath == "" || player == nil {
				if player, err = console.CreateTeam(cfg.Player.Name); err != nil {
					return err
				}
			}

			reporters := []communication.Reporter{console}
			if eventsPath != "" {
				f, err := os.Create(eventsPath)
				if err != nil {
					return fmt.Errorf("failed to create events file: %w", err)
				}
				defer f.Close()
				reporters = append(reporters, communication.NewJSONReporter(f))
			}
			if zerolog.GlobalLevel() <= zerolog.DebugLevel {
				reporters = append(reporters, communication.NewLogReporter(log.Logger, zerolog.DebugLevel))
			}

			matchOptions := []engine.Option{engine.WithMaxTurns(cfg.MaxTurns)}
			if cfg.SharedPlayerSavings {
				matchOptions = append(matchOptions, engine.WithSharedPlayerSavings())
			}
			seeds := utils.SplitSeed(cfg.Seed, 2)
			enemies := gamemaster.GenerateEnemyTeams(cfg.Themes, rand.New(rand.NewSource(seeds[0])))
			heuristic := policy.NewHeuristic(cfg.PolicyOptions(seeds[1])...)
			gm := gamemaster.NewGameMaster(player, enemies, console, heuristic,
				gamemaster.WithReporter(communication.MultiReporter(reporters...)),
				gamemaster.WithAnnouncer(console),
				gamemaster.WithMatchOptions(matchOptions...))

			result, err := gm.Run()
			log.Info().Msgf("tournament %s after %d turns", result.Outcome, result.Turns())
			return err
		},
	}
	cmd.Flags().StringVar(&eventsPath, "events", "", "also write round events as JSON lines to this file")
	return cmd
}

func newSimulateCommand(opts *options) *cobra.Command {
	var tournaments, goroutines int
	var out string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run bot tournaments in batch and store CSV metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tournaments") {
				cfg.Simulation.Tournaments = tournaments
			}
			if cmd.Flags().Changed("goroutines") {
				cfg.Simulation.Goroutines = goroutines
			}
			if cmd.Flags().Changed("out") {
				cfg.Simulation.OutputDir = out
			}

			records, matches, err := experiments.Simulate(cfg, cfg.Seed)
			if err != nil {
				return err
			}
			dir, err := experiments.Store(cfg.Simulation.OutputDir, "bot", records, matches)
			if err != nil {
				return err
			}

			s := experiments.Summarize(records)
			fmt.Fprintf(cmd.OutOrStdout(), "%d tournaments: %d complete, %d lost, %d stalled, %d aborted (win rate %.2f)\n",
				s.Tournaments, s.Complete, s.Lost, s.Stalled, s.Aborted, s.WinRate())
			fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", dir)
			return nil
		},
	}
	cmd.Flags().IntVarP(&tournaments, "tournaments", "n", 0, "number of tournaments (overrides config)")
	cmd.Flags().IntVarP(&goroutines, "goroutines", "g", 0, "worker goroutines (overrides config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides config)")
	return cmd
}
