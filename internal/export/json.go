package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/folio3d/internal/storage"
)

type ExportData struct {
	Run     storage.RunMetadata `json:"run"`
	Frames  int                 `json:"frames"`
	Samples []SampleRecord      `json:"samples"`
}

type SampleRecord struct {
	Frame     uint64  `json:"frame"`
	Time      float64 `json:"time"`
	State     string  `json:"state"`
	Detail    string  `json:"detail"`
	Particles int     `json:"particles"`
	Visible   int     `json:"visible"`
	Shapes    int     `json:"shapes"`
	FrameMS   float64 `json:"frame_ms"`
}

func NewExportData(meta storage.RunMetadata, samples []storage.Sample) ExportData {
	data := ExportData{
		Run:     meta,
		Frames:  len(samples),
		Samples: make([]SampleRecord, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = SampleRecord{
			Frame:     s.Frame,
			Time:      s.Time,
			State:     s.State.String(),
			Detail:    s.Detail.String(),
			Particles: s.Particles,
			Visible:   s.Visible,
			Shapes:    s.Shapes,
			FrameMS:   s.FrameMS,
		}
	}
	return data
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, samples []storage.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, samples))
}

func ExportJSON(path string, meta storage.RunMetadata, samples []storage.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, samples)
}

// FrameTimeSeries turns samples into a frame-cost chart series.
func FrameTimeSeries(samples []storage.Sample) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: float64(s.Frame), Y: s.FrameMS}
	}
	return points
}
