// meta/meta.go
package meta

// MAX_POOL caps every pool and every saved-points balance.
const MAX_POOL = 8

// MAX_BASE_POINTS is the per-round base budget once it stops growing.
const MAX_BASE_POINTS = 4

// TEAM_SIZE is the number of units on every team.
const TEAM_SIZE = 3

// MAX_TURNS bounds a single match so a zero-attack stalemate cannot loop forever.
const MAX_TURNS = 300

// GO_ROUTINES defines the default number of simulation workers.
const GO_ROUTINES = 8

// TOURNAMENTS defines the default number of simulated tournaments.
const TOURNAMENTS = 100

// TEAM_THEMES names the enemy teams of a default tournament, in order.
var TEAM_THEMES = []string{"The Raptors", "The Sentinels", "The Elite"}
