package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type TournamentRecord struct {
	ID int
	TournamentMetric
}

type MatchRecord struct {
	Tournament int // TournamentRecord.ID
	Match      int // 1-based position within the tournament
	MatchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder for one experiment under dir.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteTournamentRecords(records []TournamentRecord) error {
	header := []string{"id", "seed", "outcome", "matches_won", "turns", "enemy_defensive", "enemy_aggressive", "enemy_balanced", "start_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Outcome,
			strconv.Itoa(record.MatchesWon),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.EnemyDecision.Defensive),
			strconv.Itoa(record.EnemyDecision.Aggressive),
			strconv.Itoa(record.EnemyDecision.Balanced),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("tournament_records.csv", header, rows)
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{"tournament", "match", "opponent", "outcome", "turns", "damage_dealt", "damage_taken", "blocked_attacks", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Tournament),
			strconv.Itoa(record.Match),
			record.Opponent,
			record.Outcome,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.DamageDealt),
			strconv.Itoa(record.DamageTaken),
			strconv.Itoa(record.BlockedAttacks),
			record.Duration.String(),
		})
	}
	return w.writeCSV("match_records.csv", header, rows)
}
