package communication

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"skirmish/game"
	"skirmish/meta"
)

// Console prompts a human on a line-oriented terminal. Invalid input is retried locally.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (c *Console) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("failed to read input: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptPoints(text string, limit int) (int, error) {
	for {
		input, err := c.prompt(text)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(input)
		if err == nil && v >= 0 && v <= limit {
			return v, nil
		}
		fmt.Fprintf(c.out, "Invalid number. Must be between 0 and %d.\n", limit)
	}
}

func (c *Console) RequestAllocation(unitName string, pool int) (game.Allocation, error) {
	fmt.Fprintf(c.out, "\n%s's turn. You have %d points to spend.\n", unitName, pool)

	attack, err := c.promptPoints("Points to attack with (0 to skip): ", pool)
	if err != nil {
		return game.Allocation{}, err
	}
	defend := 0
	if remaining := pool - attack; remaining > 0 {
		defend, err = c.promptPoints("Points to defend with (0 to skip): ", remaining)
		if err != nil {
			return game.Allocation{}, err
		}
	}

	alloc := game.Allocation{Attack: attack, Defend: defend}
	fmt.Fprintf(c.out, "Turn Summary -> %s\n", alloc)
	return alloc, nil
}

func (c *Console) RequestFrontlinerSwap(team *game.Team) (int, error) {
	front := team.Frontliner()
	fmt.Fprintf(c.out, "\nCurrent frontliner: %s (%d HP)\n", front.Name, front.DisplayHealth())
	fmt.Fprintln(c.out, "Would you like to swap?")
	fmt.Fprintln(c.out, "1. Keep current")
	for slot := 1; slot < len(team.Units); slot++ {
		fmt.Fprintf(c.out, "%d. Swap with unit %d (if alive)\n", slot+1, slot+1)
	}

	for {
		input, err := c.prompt(fmt.Sprintf("Choose option (1-%d): ", len(team.Units)))
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(input)
		slot := choice - 1
		if err == nil && slot == 0 {
			return 0, nil
		}
		if err == nil && slot > 0 && slot < len(team.Units) && team.Units[slot].IsAlive() {
			return slot, nil
		}
		fmt.Fprintln(c.out, "Invalid choice or target is dead.")
	}
}

// CreateTeam asks for the type and name of every unit on the player's team.
func (c *Console) CreateTeam(name string) (*game.Team, error) {
	fmt.Fprintf(c.out, "Choose %d units for your team.\n", meta.TEAM_SIZE)
	fmt.Fprintln(c.out, "Large = High Health, Low Damage")
	fmt.Fprintln(c.out, "Medium = Balanced")
	fmt.Fprintln(c.out, "Light = Low Health, High Damage")

	units := make([]*game.Unit, 0, meta.TEAM_SIZE)
	for i := 1; i <= meta.TEAM_SIZE; i++ {
		var unitType game.UnitType
		for {
			input, err := c.prompt(fmt.Sprintf("Unit %d type (1=Large, 2=Medium, 3=Light): ", i))
			if err != nil {
				return nil, err
			}
			if unitType, err = game.ParseUnitType(input); err == nil {
				break
			}
			fmt.Fprintln(c.out, "Invalid choice. Enter 1, 2, or 3.")
		}

		for {
			input, err := c.prompt("Enter unit name: ")
			if err != nil {
				return nil, err
			}
			u, err := game.NewUnit(input, unitType)
			if err == nil {
				units = append(units, u)
				break
			}
			fmt.Fprintln(c.out, "Name cannot be empty. Try again.")
		}
	}
	return game.NewTeam(name, units...)
}

func (c *Console) ReportRoundEvents(events []game.Event) {
	fmt.Fprintln(c.out, "\nRound Log:")
	for _, e := range events {
		fmt.Fprintf(c.out, " - %s\n", e)
	}
}

func (c *Console) ReportTeamStatus(teamName string, team *game.Team) {
	fmt.Fprintf(c.out, "=== %s Status ===\n", teamName)
	for i, u := range team.Units {
		fmt.Fprintf(c.out, "Slot %d: %s\n", i+1, u)
	}
}

// Say prints a free-form line, used for tournament announcements.
func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
