package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/folio3d/internal/scene"
	"github.com/san-kum/folio3d/internal/storage"
	"github.com/san-kum/folio3d/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	red := colorful.Color{R: 1}
	c.SetColor(0, 0, red)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, colorful.Color{}, colorful.Color{G: 1})
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, red.Hex()) {
		t.Error("expected cell color in output")
	}
	if !strings.Contains(svg, "#00ff00") {
		t.Error("expected fallback color for uncolored cell")
	}
	if CanvasToSVG(nil, 1, red, red) != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]Point{{0, 0}}, 10, 10, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]Point{{0, 1}, {1, 2}, {2, 1}}, 100, 50, "#00d4ff")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected two line segments in %s", svg)
	}
}

func TestWriteJSON(t *testing.T) {
	meta := storage.RunMetadata{ID: "run_1", Name: "run"}
	samples := []storage.Sample{
		{Frame: 1, State: scene.Initialized, Particles: 10},
		{Frame: 2, State: scene.Reduced, Detail: scene.Simple, Particles: 5, FrameMS: 2},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, samples); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Frames != 2 || got.Run.ID != "run_1" {
		t.Errorf("unexpected export %+v", got)
	}
	if got.Samples[1].State != "reduced" || got.Samples[1].Detail != "simple" {
		t.Errorf("unexpected sample %+v", got.Samples[1])
	}

	series := FrameTimeSeries(samples)
	if series[1] != (Point{X: 2, Y: 2}) {
		t.Errorf("unexpected series point %+v", series[1])
	}
}
