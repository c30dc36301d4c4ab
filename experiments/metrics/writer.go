package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID     int
	AgentX int // AgentConfig.ID
	AgentO int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh run directory below dir/name.
func NewWriter(dir, name string) (*Writer, error) {
	baseDir := filepath.Join(dir, name, uuid.NewString())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir returns the run directory records are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "type", "evaluation", "depth", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Type,
			config.Evaluation,
			strconv.Itoa(config.Depth),
			config.Seed,
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent_x", "agent_o", "starting_player", "winner", "utility", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentX),
			strconv.Itoa(record.AgentO),
			record.StartingPlayer.String(),
			record.Winner.String(),
			strconv.FormatFloat(record.Utility, 'f', -1, 64),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "row", "column", "state_hash", "depth", "evaluation", "duration", "nodes", "evaluations", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Column),
			strconv.FormatUint(uint64(record.Hash), 16),
			strconv.Itoa(record.Depth),
			record.Evaluation,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", filename, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filename, err)
	}
	return nil
}
