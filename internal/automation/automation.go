// Package automation drives a headless scene from scripted scenarios and
// benchmarks it across particle counts.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/folio3d/internal/metrics"
	"github.com/san-kum/folio3d/internal/scene"
	"github.com/san-kum/folio3d/internal/storage"
	"github.com/san-kum/folio3d/internal/viz"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
	DefaultFrames = 120
	DefaultFPS    = 60
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

type Action string

const (
	ActionInit         Action = "init"
	ActionParticles    Action = "set_particle_count"
	ActionWireframe    Action = "wireframe"
	ActionSimpleShapes Action = "simple_shapes"
	ActionTheme        Action = "theme"
	ActionToggleTheme  Action = "toggle_theme"
	ActionOptimize     Action = "optimize"
	ActionPerformance  Action = "performance"
	ActionPointer      Action = "pointer"
	ActionResize       Action = "resize"
	ActionDispose      Action = "dispose"
)

var knownActions = map[Action]bool{
	ActionInit: true, ActionParticles: true, ActionWireframe: true,
	ActionSimpleShapes: true, ActionTheme: true, ActionToggleTheme: true,
	ActionOptimize: true, ActionPerformance: true, ActionPointer: true,
	ActionResize: true, ActionDispose: true,
}

// Scenario defines a scripted scene run.
type Scenario struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Seed          int64  `yaml:"seed"`
	Theme         string `yaml:"theme"`
	ParticleCount int    `yaml:"particle_count"`
	FPS           int    `yaml:"fps"`
	Frames        int    `yaml:"frames"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Steps         []Step `yaml:"steps"`
}

// Step fires an action just before the given frame is advanced. Only the
// fields the action reads need to be set.
type Step struct {
	Frame          int     `yaml:"frame"`
	Action         Action  `yaml:"action"`
	Count          int     `yaml:"count,omitempty"`
	Enabled        bool    `yaml:"enabled,omitempty"`
	Theme          string  `yaml:"theme,omitempty"`
	Level          string  `yaml:"level,omitempty"`
	ReduceQuality  bool    `yaml:"reduce_quality,omitempty"`
	DisableEffects bool    `yaml:"disable_effects,omitempty"`
	Reason         string  `yaml:"reason,omitempty"`
	X              float64 `yaml:"x,omitempty"`
	Y              float64 `yaml:"y,omitempty"`
	Width          int     `yaml:"width,omitempty"`
	Height         int     `yaml:"height,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Name == "" {
		sc.Name = "scenario"
	}
	if sc.Theme == "" {
		sc.Theme = string(scene.ThemeDark)
	}
	if sc.FPS <= 0 {
		sc.FPS = DefaultFPS
	}
	if sc.Frames <= 0 {
		sc.Frames = DefaultFrames
	}
	if sc.Width <= 0 {
		sc.Width = DefaultWidth
	}
	if sc.Height <= 0 {
		sc.Height = DefaultHeight
	}
}

func (sc *Scenario) Validate() error {
	if _, err := scene.ParseTheme(sc.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if sc.ParticleCount < 0 {
		return fmt.Errorf("%w: particle_count %d", ErrInvalidScenario, sc.ParticleCount)
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i+1, st.Action)
		}
		if st.Frame < 0 || st.Frame >= sc.Frames {
			return fmt.Errorf("%w: step %d: frame %d outside [0, %d)", ErrInvalidScenario, i+1, st.Frame, sc.Frames)
		}
	}
	return nil
}

// Result is the outcome of a scenario run.
type Result struct {
	Scenario  string
	Samples   []storage.Sample
	Final     scene.State
	Detail    scene.Detail
	Particles int
	Canvas    *viz.Canvas
	Metrics   map[string]float64
}

// Metadata describes the run for storage.
func (r *Result) Metadata(sc *Scenario) storage.RunMetadata {
	return storage.RunMetadata{
		Name:          r.Scenario,
		Seed:          sc.Seed,
		Theme:         sc.Theme,
		ParticleCount: sc.ParticleCount,
		FPS:           sc.FPS,
		FinalState:    r.Final.String(),
		Metrics:       r.Metrics,
	}
}

type runner struct {
	anim    *scene.Animator
	surface *viz.CanvasSurface
	theme   scene.Theme
}

// Run executes a scenario against a fresh headless animator. Extra options
// are applied before the scenario's own settings.
func Run(ctx context.Context, sc *Scenario, logger *zap.Logger, opts ...scene.Option) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	surface := viz.NewCanvasSurface(sc.Width, sc.Height)
	clock := &scene.StepClock{Step: scene.TimeScale / float64(sc.FPS)}

	opts = append(opts,
		scene.WithClock(clock),
		scene.WithTheme(scene.Theme(sc.Theme)),
		scene.WithLogger(logger),
	)
	if sc.Seed != 0 {
		opts = append(opts, scene.WithSeed(sc.Seed))
	}
	if sc.ParticleCount > 0 {
		opts = append(opts, scene.WithParticleCount(sc.ParticleCount))
	}
	anim, err := scene.New(surface, opts...)
	if err != nil {
		return nil, err
	}
	defer anim.Dispose()
	if err := anim.Init(); err != nil {
		return nil, err
	}

	steps := append([]Step(nil), sc.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Frame < steps[j].Frame })

	r := &runner{anim: anim, surface: surface, theme: scene.Theme(sc.Theme)}
	ft := metrics.NewFrameTime()
	samples := make([]storage.Sample, 0, sc.Frames)
	var worst float64

	logger.Info("running scenario", zap.String("name", sc.Name), zap.Int("frames", sc.Frames), zap.Int("steps", len(steps)))
	next := 0
	for i := 0; i < sc.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for next < len(steps) && steps[next].Frame == i {
			if err := r.apply(steps[next]); err != nil {
				return nil, fmt.Errorf("step %d (%s at frame %d): %w", next+1, steps[next].Action, i, err)
			}
			next++
		}

		start := time.Now()
		f := anim.Advance(clock.Now())
		elapsed := time.Since(start)
		ft.Observe(start.Add(elapsed))

		smp := storage.FromFrame(f)
		smp.Detail = anim.Detail()
		smp.Visible = surface.Stats().Visible
		smp.FrameMS = elapsed.Seconds() * 1000
		worst = max(worst, smp.FrameMS)
		samples = append(samples, smp)
	}

	res := &Result{
		Scenario:  sc.Name,
		Samples:   samples,
		Final:     anim.State(),
		Detail:    anim.Detail(),
		Particles: anim.ParticleCount(),
		Canvas:    surface.Snapshot(),
		Metrics: map[string]float64{
			ft.Name():         ft.Value(),
			"max_frame_ms":    worst,
			"final_particles": float64(anim.ParticleCount()),
		},
	}
	logger.Info("scenario complete", zap.String("name", sc.Name), zap.String("state", res.Final.String()))
	return res, nil
}

func (r *runner) apply(st Step) error {
	a := r.anim
	switch st.Action {
	case ActionInit:
		return a.Init()
	case ActionParticles:
		return a.SetParticleCount(st.Count)
	case ActionWireframe:
		return a.SetWireframeAll(st.Enabled)
	case ActionSimpleShapes:
		return a.SwitchToSimpleShapes()
	case ActionTheme:
		if err := a.ApplyTheme(scene.Theme(st.Theme)); err != nil {
			return err
		}
		r.theme = scene.Theme(st.Theme)
	case ActionToggleTheme:
		r.theme = r.theme.Toggle()
		return a.ApplyTheme(r.theme)
	case ActionOptimize:
		sig, err := metrics.Optimize(st.Level)
		if err != nil {
			return err
		}
		return a.ApplyPerformance(sig)
	case ActionPerformance:
		return a.ApplyPerformance(scene.PerformanceSignal{
			ParticleCount:          st.Count,
			ReduceQuality:          st.ReduceQuality,
			DisableAdvancedEffects: st.DisableEffects,
			Reason:                 st.Reason,
		})
	case ActionPointer:
		a.PointerMoved(st.X, st.Y)
	case ActionResize:
		r.surface.Resize(st.Width, st.Height)
		a.Resize(r.surface.Size())
	case ActionDispose:
		a.Dispose()
	}
	return nil
}

// Sweep benchmarks frame cost across particle counts.
type Sweep struct {
	Counts []int
	Frames int
	Width  int
	Height int
	Seed   int64
}

type SweepResult struct {
	Count       int
	MeanFrameMS float64
	Visible     int
}

// RunSweep runs each count for the configured number of frames and reports
// the mean frame cost.
func RunSweep(ctx context.Context, sw *Sweep, logger *zap.Logger) ([]SweepResult, error) {
	if len(sw.Counts) == 0 {
		return nil, fmt.Errorf("%w: no counts to sweep", ErrInvalidScenario)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]SweepResult, 0, len(sw.Counts))
	for i, count := range sw.Counts {
		sc := &Scenario{
			Name:          fmt.Sprintf("sweep_%d", count),
			Seed:          sw.Seed,
			ParticleCount: count,
			Frames:        sw.Frames,
			Width:         sw.Width,
			Height:        sw.Height,
		}
		sc.applyDefaults()
		if count == 0 {
			sc.Steps = []Step{{Frame: 0, Action: ActionParticles, Count: 0}}
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		res, err := Run(ctx, sc, nil)
		if err != nil {
			return nil, err
		}
		last := res.Samples[len(res.Samples)-1]
		results = append(results, SweepResult{
			Count:       count,
			MeanFrameMS: res.Metrics["frame_time_ms"],
			Visible:     last.Visible,
		})
		logger.Info("sweep step", zap.Int("index", i+1), zap.Int("of", len(sw.Counts)), zap.Int("count", count))
	}
	return results, nil
}
