package communication

import (
	"skirmish/game"

	"github.com/rs/zerolog"
)

// LogReporter writes match output as structured log records.
type LogReporter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func NewLogReporter(logger zerolog.Logger, level zerolog.Level) *LogReporter {
	return &LogReporter{logger: logger, level: level}
}

func (r *LogReporter) ReportRoundEvents(events []game.Event) {
	for _, e := range events {
		r.logger.WithLevel(r.level).
			Str("actor", e.Actor).
			Str("target", e.Target).
			Int("attack_points", e.AttackPoints).
			Int("defend_points", e.DefendPoints).
			Int("damage", e.Damage).
			Bool("blocked", e.Blocked).
			Msg("resolution")
	}
}

func (r *LogReporter) ReportTeamStatus(teamName string, team *game.Team) {
	for i, u := range team.Units {
		r.logger.WithLevel(r.level).
			Str("team", teamName).
			Int("slot", i+1).
			Str("unit", u.Name).
			Stringer("type", u.Type).
			Int("hp", u.DisplayHealth()).
			Msg("status")
	}
}
