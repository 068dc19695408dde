package metrics

import (
	"math"
	"runtime"
	"time"
)

// Metric accumulates one frame-loop measurement.
type Metric interface {
	Name() string
	Observe(now time.Time)
	Value() float64
	Reset()
}

// FPS counts frames over fixed windows and reports the rate of the last
// completed window.
type FPS struct {
	name    string
	window  time.Duration
	start   time.Time
	frames  int
	fps     float64
	updated bool
}

func NewFPS(window time.Duration) *FPS {
	if window <= 0 {
		window = time.Second
	}
	return &FPS{name: "fps", window: window}
}

func (f *FPS) Name() string { return f.name }

func (f *FPS) Observe(now time.Time) {
	f.updated = false
	if f.start.IsZero() {
		f.start = now
		return
	}
	f.frames++
	elapsed := now.Sub(f.start)
	if elapsed < f.window {
		return
	}
	f.fps = math.Round(float64(f.frames) / elapsed.Seconds())
	f.frames = 0
	f.start = now
	f.updated = true
}

// Updated reports whether the last Observe closed a window.
func (f *FPS) Updated() bool { return f.updated }

func (f *FPS) Value() float64 { return f.fps }

func (f *FPS) Reset() {
	f.start = time.Time{}
	f.frames = 0
	f.fps = 0
	f.updated = false
}

// FrameTime is the mean interval between observed frames in milliseconds.
type FrameTime struct {
	name    string
	last    time.Time
	total   time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_time_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(now time.Time) {
	if !f.last.IsZero() {
		f.total += now.Sub(f.last)
		f.samples++
	}
	f.last = now
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.total.Seconds() * 1000 / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.last = time.Time{}
	f.total = 0
	f.samples = 0
}

// HeapUsage samples the Go heap in megabytes at most once per interval.
type HeapUsage struct {
	name     string
	interval time.Duration
	last     time.Time
	mb       float64
}

func NewHeapUsage(interval time.Duration) *HeapUsage {
	return &HeapUsage{name: "heap_mb", interval: interval}
}

func (h *HeapUsage) Name() string { return h.name }

func (h *HeapUsage) Observe(now time.Time) {
	if !h.last.IsZero() && now.Sub(h.last) < h.interval {
		return
	}
	h.last = now
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	h.mb = math.Round(float64(ms.HeapAlloc) / (1 << 20))
}

func (h *HeapUsage) Value() float64 { return h.mb }

func (h *HeapUsage) Reset() {
	h.last = time.Time{}
	h.mb = 0
}
