package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/sim"
)

var ErrCorruptRun = errors.New("storage: corrupt run")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	columnsPer   = 4
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Elapsed   float64            `json:"elapsed"`
	State     string             `json:"state"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes result under a fresh run directory and returns its id. name
// prefixes the id; metrics is stored verbatim.
func (s *Store) Save(name string, seed int64, dt float64, result *sim.Result, metrics map[string]float64) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", name, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: ts,
		Seed:      seed,
		Dt:        dt,
		Frames:    len(result.Times),
		Elapsed:   result.Final.Elapsed,
		State:     result.Final.State.String(),
		Bodies:    result.Names,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteCSV writes one row per frame: time, then angle,x,y,z per body.
func WriteCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header, name+"_angle", name+"_x", name+"_y", name+"_z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, t := range result.Times {
		row := make([]string, 0, len(header))
		row = append(row, format(t))
		for b := range result.Names {
			p := result.Positions[b][i]
			row = append(row, format(result.Angles[b][i]), format(p.X()), format(p.Y()), format(p.Z()))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteJSON dumps the whole result, final snapshot included.
func WriteJSON(out io.Writer, result *sim.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	return &meta, nil
}

// LoadResult reads a run's frames back. The final snapshot is not stored, so
// Final is left zero.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	if len(records) == 0 || (len(records[0])-1)%columnsPer != 0 {
		return nil, fmt.Errorf("%w: %s: bad header", ErrCorruptRun, runID)
	}

	header := records[0]
	n := (len(header) - 1) / columnsPer
	result := &sim.Result{
		Names:     make([]string, n),
		Times:     make([]float64, 0, len(records)-1),
		Angles:    make([][]float64, n),
		Positions: make([][]geom.Vec3, n),
	}
	for b := 0; b < n; b++ {
		col := header[1+b*columnsPer]
		if !strings.HasSuffix(col, "_angle") {
			return nil, fmt.Errorf("%w: %s: unexpected column %q", ErrCorruptRun, runID, col)
		}
		result.Names[b] = strings.TrimSuffix(col, "_angle")
	}

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: row %d: %v", ErrCorruptRun, runID, i+1, err)
			}
			vals[j] = v
		}

		result.Times = append(result.Times, vals[0])
		for b := 0; b < n; b++ {
			c := 1 + b*columnsPer
			result.Angles[b] = append(result.Angles[b], vals[c])
			result.Positions[b] = append(result.Positions[b], geom.Vec3{vals[c+1], vals[c+2], vals[c+3]})
		}
	}
	return result, nil
}
