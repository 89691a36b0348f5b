package communication

import (
	"encoding/json"
	"io"

	"skirmish/game"

	"github.com/rs/zerolog/log"
)

type unitStatus struct {
	Slot int           `json:"slot"`
	Name string        `json:"name"`
	Type game.UnitType `json:"type"`
	HP   int           `json:"hp"`
}

type teamStatus struct {
	Team  string       `json:"team"`
	Units []unitStatus `json:"units"`
}

// JSONReporter writes one JSON document per line: resolution events and team snapshots.
type JSONReporter struct {
	enc *json.Encoder
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

func (r *JSONReporter) ReportRoundEvents(events []game.Event) {
	for _, e := range events {
		if err := r.enc.Encode(e); err != nil {
			log.Warn().Err(err).Msg("failed to encode resolution event")
			return
		}
	}
}

func (r *JSONReporter) ReportTeamStatus(teamName string, team *game.Team) {
	status := teamStatus{Team: teamName, Units: make([]unitStatus, len(team.Units))}
	for i, u := range team.Units {
		status.Units[i] = unitStatus{Slot: i + 1, Name: u.Name, Type: u.Type, HP: u.DisplayHealth()}
	}
	if err := r.enc.Encode(status); err != nil {
		log.Warn().Err(err).Msg("failed to encode team status")
	}
}
