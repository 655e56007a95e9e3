package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID       int
	Positive int // AgentConfig.ID
	Negative int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Setup is the experiment description stored next to its results.
type Setup struct {
	Name     string        `yaml:"name"`
	Rows     int           `yaml:"rows"`
	Cols     int           `yaml:"cols"`
	Games    int           `yaml:"games"` // Per matchup
	Workers  int           `yaml:"workers"`
	Agents   []AgentConfig `yaml:"agents"`
	MatchUps [][2]int      `yaml:"matchups"` // Pairs of AgentConfig.ID
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> for the results of one experiment.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000")
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

func (w *Writer) WriteSetup(setup Setup) error {
	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, "setup.yaml"), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "name", "depth", "iterations", "exploration", "temperature", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Name,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.writeCSV("agent_configs.csv", "agent config", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "positive", "negative", "winner", "terminal", "start_time", "end_time", "duration", "total_moves", "rejected"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Positive),
			strconv.Itoa(record.Negative),
			record.Winner.String(),
			strconv.FormatBool(record.Terminal),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rejected),
		})
	}
	return w.writeCSV("game_records.csv", "game record", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "tile", "agent", "col", "row", "duration", "iterations", "playouts", "nodes"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Tile.String(),
			record.Agent,
			strconv.Itoa(record.Move.Pos.Col),
			strconv.Itoa(record.Move.Pos.Row),
			record.Duration.String(),
			strconv.FormatInt(record.Iterations, 10),
			strconv.FormatInt(record.Playouts, 10),
			strconv.FormatInt(record.Nodes, 10),
		})
	}
	return w.writeCSV("move_records.csv", "move record", header, rows)
}

func (w *Writer) writeCSV(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s file: %w", what, err)
	}
	return nil
}
