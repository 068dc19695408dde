// Package storage persists recorded scene runs as a metadata file plus a
// per-frame CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/folio3d/internal/scene"
)

var ErrNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "time", "state", "detail", "particles", "visible", "shapes", "frame_ms"}

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
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Theme         string             `json:"theme"`
	ParticleCount int                `json:"particle_count"`
	FPS           int                `json:"fps"`
	Frames        int                `json:"frames"`
	FinalState    string             `json:"final_state"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Sample is one recorded frame.
type Sample struct {
	Frame     uint64
	Time      float64
	State     scene.State
	Detail    scene.Detail
	Particles int
	Visible   int
	Shapes    int
	FrameMS   float64
}

// FromFrame fills the fields a frame carries. The caller adds what only the
// surface or the clock knows.
func FromFrame(f scene.Frame) Sample {
	s := Sample{
		Frame:  f.Number,
		Time:   f.Time,
		State:  f.State,
		Shapes: len(f.Shapes),
	}
	if f.Field.Consistent() {
		s.Particles = f.Field.Count
	}
	return s
}

// Save writes a run under a fresh id and returns it.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", runName(meta.Name), uuid.NewString()[:8])
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(samples)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Frame, 10),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			smp.State.String(),
			smp.Detail.String(),
			strconv.Itoa(smp.Particles),
			strconv.Itoa(smp.Visible),
			strconv.Itoa(smp.Shapes),
			strconv.FormatFloat(smp.FrameMS, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

// List returns every readable run, newest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// runName reduces a scenario name to a single path element usable in a run id.
func runName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		return "run"
	}
	return base
}

// runDir resolves runID inside the base directory. Ids that are not a single
// path element never name a run.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's samples. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]Sample, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
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
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		smp, ok := parseSample(rec)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (Sample, bool) {
	if len(rec) != len(frameHeader) {
		return Sample{}, false
	}
	var smp Sample
	var err error
	if smp.Frame, err = strconv.ParseUint(rec[0], 10, 64); err != nil {
		return Sample{}, false
	}
	if smp.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return Sample{}, false
	}
	smp.State = parseState(rec[2])
	if rec[3] == scene.Simple.String() {
		smp.Detail = scene.Simple
	}
	ints := []*int{&smp.Particles, &smp.Visible, &smp.Shapes}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[4+i]); err != nil {
			return Sample{}, false
		}
	}
	if smp.FrameMS, err = strconv.ParseFloat(rec[7], 64); err != nil {
		return Sample{}, false
	}
	return smp, true
}

func parseState(name string) scene.State {
	for _, st := range []scene.State{scene.Uninitialized, scene.Initialized, scene.Reduced, scene.Disposed} {
		if st.String() == name {
			return st
		}
	}
	return scene.Uninitialized
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	dir, err := s.runDir(runID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return os.RemoveAll(dir)
}
