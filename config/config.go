package config

import (
	"errors"
	"fmt"
	"os"

	"skirmish/game"
	"skirmish/meta"
	"skirmish/policy"

	"gopkg.in/yaml.v3"
)

type UnitConfig struct {
	Name string        `yaml:"name"`
	Type game.UnitType `yaml:"type"`
}

type PlayerConfig struct {
	Name  string       `yaml:"name"`
	Units []UnitConfig `yaml:"units"`
}

type PolicyConfig struct {
	LowHealthRatio         float64 `yaml:"low_health_ratio"`
	HighHealthRatio        float64 `yaml:"high_health_ratio"`
	DefensiveAttackChance  float64 `yaml:"defensive_attack_chance"`
	AggressiveDefendChance float64 `yaml:"aggressive_defend_chance"`
}

type SimulationConfig struct {
	Tournaments int    `yaml:"tournaments"`
	Goroutines  int    `yaml:"goroutines"`
	OutputDir   string `yaml:"output_dir"`
}

// Config describes a tournament. Zero seeds are replaced by a time-based seed at startup.
type Config struct {
	Seed                uint64           `yaml:"seed"`
	MaxTurns            int              `yaml:"max_turns"`
	SharedPlayerSavings bool             `yaml:"shared_player_savings"`
	Themes              []string         `yaml:"themes"`
	Player              PlayerConfig     `yaml:"player"`
	Policy              PolicyConfig     `yaml:"policy"`
	Simulation          SimulationConfig `yaml:"simulation"`
}

func Default() Config {
	return Config{
		MaxTurns: meta.MAX_TURNS,
		Themes:   append([]string(nil), meta.TEAM_THEMES...),
		Player: PlayerConfig{
			Name: "Player",
			Units: []UnitConfig{
				{Name: "Bulwark", Type: game.Large},
				{Name: "Vanguard", Type: game.Medium},
				{Name: "Striker", Type: game.Light},
			},
		},
		Policy: PolicyConfig{
			LowHealthRatio:         policy.LowHealthRatio,
			HighHealthRatio:        policy.HighHealthRatio,
			DefensiveAttackChance:  policy.DefensiveAttackChance,
			AggressiveDefendChance: policy.AggressiveDefendChance,
		},
		Simulation: SimulationConfig{
			Tournaments: meta.TOURNAMENTS,
			Goroutines:  meta.GO_ROUTINES,
			OutputDir:   "experiments",
		},
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads a YAML file on top of the defaults, so omitted keys keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	if len(c.Themes) == 0 {
		errs = append(errs, errors.New("at least one enemy theme is required"))
	}
	if n := len(c.Player.Units); n != 0 && n != meta.TEAM_SIZE {
		errs = append(errs, fmt.Errorf("player needs %d units, got %d", meta.TEAM_SIZE, n))
	}
	p := c.Policy
	if p.LowHealthRatio < 0 || p.HighHealthRatio > 1 || p.LowHealthRatio > p.HighHealthRatio {
		errs = append(errs, fmt.Errorf("health ratios must satisfy 0 <= low <= high <= 1, got %v and %v", p.LowHealthRatio, p.HighHealthRatio))
	}
	for _, chance := range []float64{p.DefensiveAttackChance, p.AggressiveDefendChance} {
		if chance < 0 || chance > 1 {
			errs = append(errs, fmt.Errorf("follow-up chance %v outside [0, 1]", chance))
		}
	}
	if c.Simulation.Tournaments < 0 || c.Simulation.Goroutines < 0 {
		errs = append(errs, errors.New("simulation counts cannot be negative"))
	}
	return errors.Join(errs...)
}

// PlayerTeam builds the configured player team, or returns nil when no units are configured.
func (c Config) PlayerTeam() (*game.Team, error) {
	if len(c.Player.Units) == 0 {
		return nil, nil
	}
	units := make([]*game.Unit, 0, len(c.Player.Units))
	for _, uc := range c.Player.Units {
		u, err := game.NewUnit(uc.Name, uc.Type)
		if err != nil {
			return nil, fmt.Errorf("player unit %q: %w", uc.Name, err)
		}
		units = append(units, u)
	}
	return game.NewTeam(c.Player.Name, units...)
}

// PolicyOptions translates the policy section into heuristic options, seeded with seed.
func (c Config) PolicyOptions(seed uint64) []policy.Option {
	return []policy.Option{
		policy.WithSeed(seed),
		policy.WithThresholds(c.Policy.LowHealthRatio, c.Policy.HighHealthRatio),
		policy.WithFollowUpChances(c.Policy.DefensiveAttackChance, c.Policy.AggressiveDefendChance),
	}
}
