// Package trace records headless runs to disk: one directory per run
// holding metadata.json and a frames.csv of node positions over time.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sway/internal/sim"
)

// Frame is one sampled tick: elapsed time plus flattened node
// positions in handle order (x0, y0, x1, y1, ...).
type Frame struct {
	Time      float64
	Positions []float64
}

// Recording accumulates frames during a run.
type Recording struct {
	Frames []Frame
}

// Sample appends the simulator's current node positions.
func (r *Recording) Sample(s *sim.Simulator) {
	w := s.World()
	frame := Frame{
		Time:      s.Elapsed(),
		Positions: make([]float64, 0, w.NodeCount()*2),
	}
	for _, h := range w.Handles() {
		n := w.Node(h)
		frame.Positions = append(frame.Positions, n.Position.X, n.Position.Y)
	}
	r.Frames = append(r.Frames, frame)
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	Timestamp time.Time `json:"timestamp"`
	Dt        float64   `json:"dt"`
	Duration  float64   `json:"duration"`
	Nodes     int       `json:"nodes"`
	Frames    int       `json:"frames"`
}

// Save writes a run directory and returns its generated ID.
func (s *Store) Save(scene string, dt, duration float64, nodes int, rec *Recording) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     scene,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Nodes:     nodes,
		Frames:    len(rec.Frames),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(rec.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < len(rec.Frames[0].Positions)/2; i++ {
		header = append(header, fmt.Sprintf("n%d_x", i), fmt.Sprintf("n%d_y", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, frame := range rec.Frames {
		row := []string{strconv.FormatFloat(frame.Time, 'f', 6, 64)}
		for _, val := range frame.Positions {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads a run's sampled frames back from CSV. Rows with
// unparsable fields are skipped.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := Frame{Time: t, Positions: make([]float64, 0, len(record)-1)}
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			frame.Positions = append(frame.Positions, val)
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
