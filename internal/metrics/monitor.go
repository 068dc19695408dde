package metrics

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/folio3d/internal/scene"
)

const (
	// MinFPS is the rate below which the monitor asks for reduced quality.
	MinFPS = 30
	// TargetFPS is the rate the recommendations are measured against.
	TargetFPS = 60

	historyCapacity = 120
)

var ErrUnknownLevel = errors.New("metrics: unknown optimization level")

// Monitor watches the frame loop and turns sustained low frame rates into
// performance signals.
type Monitor struct {
	fps     *FPS
	frame   *FrameTime
	heap    *HeapUsage
	minFPS  float64
	armed   bool
	history []float64
	logger  *zap.Logger
}

func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		fps:    NewFPS(time.Second),
		frame:  NewFrameTime(),
		heap:   NewHeapUsage(5 * time.Second),
		minFPS: MinFPS,
		armed:  true,
		logger: logger,
	}
}

// Observe records a frame at now. It returns a reduce-quality signal the
// first time a window closes below MinFPS; the monitor re-arms once a
// window closes at or above it.
func (m *Monitor) Observe(now time.Time) *scene.PerformanceSignal {
	for _, metric := range m.Metrics() {
		metric.Observe(now)
	}
	if !m.fps.Updated() {
		return nil
	}
	fps := m.fps.Value()
	m.history = append(m.history, fps)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	if fps >= m.minFPS {
		m.armed = true
		return nil
	}
	if !m.armed {
		return nil
	}
	m.armed = false
	m.logger.Warn("low fps detected", zap.Float64("fps", fps))
	return &scene.PerformanceSignal{ReduceQuality: true, Reason: "low_fps"}
}

func (m *Monitor) Metrics() []Metric {
	return []Metric{m.fps, m.frame, m.heap}
}

func (m *Monitor) FPS() float64 { return m.fps.Value() }

// History returns the FPS of recent windows, oldest first.
func (m *Monitor) History() []float64 {
	out := make([]float64, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Monitor) Reset() {
	for _, metric := range m.Metrics() {
		metric.Reset()
	}
	m.history = m.history[:0]
	m.armed = true
}

// Recommendations lists human-readable tuning hints for the current state.
func (m *Monitor) Recommendations(d Device) []string {
	var recs []string
	if fps := m.fps.Value(); fps > 0 && fps < TargetFPS {
		recs = append(recs, "Consider reducing particle count or visual effects")
	}
	if m.heap.Value() > 100 {
		recs = append(recs, "High memory usage detected, consider optimizing assets")
	}
	if d.LowEnd() {
		recs = append(recs, "Low-end device detected, performance optimizations applied")
	}
	return recs
}

// Device is the host capability snapshot used for low-end detection.
type Device struct {
	Cores    int
	MemoryGB float64
}

func DetectDevice() Device {
	return Device{Cores: runtime.NumCPU()}
}

// LowEnd reports two or fewer cores, or a known memory size of 4 GB or less.
func (d Device) LowEnd() bool {
	return d.Cores <= 2 || (d.MemoryGB > 0 && d.MemoryGB <= 4)
}

// LowEndSignal returns the startup downgrade for low-end devices.
func LowEndSignal(d Device) (scene.PerformanceSignal, bool) {
	if !d.LowEnd() {
		return scene.PerformanceSignal{}, false
	}
	return scene.PerformanceSignal{
		ParticleCount:          500,
		ReduceQuality:          true,
		DisableAdvancedEffects: true,
		Reason:                 "low_end_device",
	}, true
}

var optimizeLevels = map[string]int{
	"low":    1000,
	"medium": 500,
	"high":   200,
}

// Optimize returns the manual optimization signal for level.
func Optimize(level string) (scene.PerformanceSignal, error) {
	count, ok := optimizeLevels[level]
	if !ok {
		return scene.PerformanceSignal{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	return scene.PerformanceSignal{
		ParticleCount:          count,
		DisableAdvancedEffects: level != "low",
		Reason:                 "optimize_" + level,
	}, nil
}
