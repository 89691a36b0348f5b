package communication

import "skirmish/game"

// Controller abstracts how the player side makes its choices.
type Controller interface {
	// RequestAllocation returns a split with attack+defend <= pool.
	RequestAllocation(unitName string, pool int) (game.Allocation, error)
	// RequestFrontlinerSwap returns the slot (0, 1 or 2) to move to the front. 0 keeps the current frontliner.
	RequestFrontlinerSwap(team *game.Team) (int, error)
}

// Reporter receives match output. Reporters are sinks; nothing they do feeds back into the match.
type Reporter interface {
	ReportRoundEvents(events []game.Event)
	ReportTeamStatus(teamName string, team *game.Team)
}

type multiReporter []Reporter

// MultiReporter fans every report out to all reporters in order.
func MultiReporter(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) ReportRoundEvents(events []game.Event) {
	for _, r := range m {
		r.ReportRoundEvents(events)
	}
}

func (m multiReporter) ReportTeamStatus(teamName string, team *game.Team) {
	for _, r := range m {
		r.ReportTeamStatus(teamName, team)
	}
}

type discard struct{}

// Discard drops every report.
var Discard Reporter = discard{}

func (discard) ReportRoundEvents(events []game.Event)             {}
func (discard) ReportTeamStatus(teamName string, team *game.Team) {}
