package viz

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/folio3d/internal/scene"
)

// SurfaceStats describes the most recent frame drawn into a CanvasSurface.
type SurfaceStats struct {
	Frame         uint64
	Time          float64
	State         scene.State
	Particles     int
	Visible       int
	Shapes        int
	ParticleColor colorful.Color
	Background    colorful.Color
}

// CanvasSurface renders scene frames into a braille canvas. It is safe for
// the frame loop and a reader to use concurrently.
type CanvasSurface struct {
	mu     sync.Mutex
	canvas *Canvas
	stats  SurfaceStats
	wire   *Wireframe
	dots   []dot
}

// dot is a projected particle waiting to be plotted.
type dot struct {
	x, y int
	ok   bool
}

// NewCanvasSurface returns a surface of w by h terminal cells.
func NewCanvasSurface(w, h int) *CanvasSurface {
	return &CanvasSurface{canvas: NewCanvas(w, h), wire: NewWireframe()}
}

// Size reports the surface in dots.
func (s *CanvasSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.SubWidth(), s.canvas.SubHeight()
}

// Resize reallocates the canvas to w by h cells.
func (s *CanvasSurface) Resize(w, h int) {
	s.mu.Lock()
	s.canvas = NewCanvas(w, h)
	s.mu.Unlock()
}

func (s *CanvasSurface) Render(f scene.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.canvas
	c.Clear()
	proj := NewProjector(f.Camera, c.SubWidth(), c.SubHeight())
	stats := SurfaceStats{
		Frame:         f.Number,
		Time:          f.Time,
		State:         f.State,
		ParticleColor: f.ParticleColor,
		Background:    f.Background,
		Shapes:        len(f.Shapes),
	}

	if field := f.Field; field.Consistent() {
		spin := scene.Vec3{Y: f.FieldRotation}
		stats.Particles = field.Count
		if cap(s.dots) < field.Count {
			s.dots = make([]dot, field.Count)
		}
		dots := s.dots[:field.Count]
		parallelFor(field.Count, projectChunk, func(start, end int) {
			for i := start; i < end; i++ {
				world := field.Positions[i].Add(scene.Wobble(field.Jitter[i], f.Time)).RotateXYZ(spin)
				x, y, _, ok := proj.Project(world)
				dots[i] = dot{x: x, y: y, ok: ok}
			}
		})
		for i, d := range dots {
			if !d.ok {
				continue
			}
			c.SetColor(d.x, d.y, field.BaseColors[i].BlendRgb(f.ParticleColor, 0.5))
			stats.Visible++
		}
	}

	s.wire.Clear()
	for _, shape := range f.Shapes {
		s.wire.AddShape(shape)
	}
	Render3D(c, s.wire, proj)
	s.stats = stats
}

// View returns the colored canvas.
func (s *CanvasSurface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Render()
}

// String returns the canvas without color.
func (s *CanvasSurface) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.String()
}

func (s *CanvasSurface) Stats() SurfaceStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Snapshot returns a copy of the canvas.
func (s *CanvasSurface) Snapshot() *Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.canvas
	dst := NewCanvas(src.Width, src.Height)
	for i := range src.Grid {
		copy(dst.Grid[i], src.Grid[i])
		copy(dst.Colors[i], src.Colors[i])
		copy(dst.inked[i], src.inked[i])
	}
	return dst
}
