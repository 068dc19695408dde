package scene

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

type State int

const (
	Uninitialized State = iota
	Initialized
	Reduced
	Disposed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Reduced:
		return "reduced"
	case Disposed:
		return "disposed"
	default:
		return "uninitialized"
	}
}

// Surface is the drawable the animator renders into once per frame.
type Surface interface {
	Size() (w, h int)
	Render(f Frame)
}

// Frame is the render input for one advance. Shapes are copies; Field is
// the live field and must be treated as read-only.
type Frame struct {
	Number        uint64
	Time          float64
	State         State
	Field         *Field
	FieldRotation float64
	ParticleColor colorful.Color
	Shapes        []Shape
	Camera        Camera
	Background    colorful.Color
}

type Option func(*Animator)

func WithRand(rng Rand) Option { return func(a *Animator) { a.rng = rng } }

func WithSeed(seed int64) Option { return func(a *Animator) { a.rng = NewRand(seed) } }

func WithParticleCount(n int) Option { return func(a *Animator) { a.count = n } }

func WithKinetics(k Kinetics) Option { return func(a *Animator) { a.kinetics = k } }

func WithGradient(g Gradient) Option { return func(a *Animator) { a.gradient = g } }

func WithTheme(t Theme) Option {
	return func(a *Animator) {
		if c, err := t.Colors(); err == nil {
			a.palette, a.background = c.Palette, c.Background
		}
	}
}

func WithSmoothing(f float64) Option { return func(a *Animator) { a.smoothing = f } }

func WithPointerScale(s float64) Option { return func(a *Animator) { a.pointerScale = s } }

func WithClock(c Clock) Option { return func(a *Animator) { a.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(a *Animator) { a.logger = l } }

// Animator owns the field, the shape set and their animation state.
type Animator struct {
	surface      Surface
	rng          Rand
	gradient     Gradient
	kinetics     Kinetics
	smoothing    float64
	pointerScale float64
	clock        Clock
	logger       *zap.Logger

	queue    commandQueue
	disposed atomic.Bool

	mu            sync.Mutex
	state         State
	count         int
	configured    int
	palette       Palette
	background    colorful.Color
	field         *Field
	shapes        *ShapeSet
	camera        Camera
	pointer       Vec3
	frame         uint64
	fieldRotation float64

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New validates the surface and returns an uninitialized animator.
func New(surface Surface, opts ...Option) (*Animator, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if w, h := surface.Size(); w <= 0 || h <= 0 {
		return nil, ErrNoSurface
	}
	dark, _ := ThemeDark.Colors()
	a := &Animator{
		surface:      surface,
		gradient:     DefaultGradient(),
		kinetics:     DefaultKinetics(),
		smoothing:    DefaultSmoothing,
		pointerScale: DefaultPointerScale,
		count:        DefaultParticleCount,
		palette:      dark.Palette,
		background:   dark.Background,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.count < 0 {
		return nil, ErrInvalidCount
	}
	a.configured = a.count
	if a.rng == nil {
		a.rng = NewRand(0)
	}
	if a.clock == nil {
		a.clock = NewWallClock()
	}
	return a, nil
}

// Init builds the field and the detailed shape set. Calling it on a live
// scene is a full rebuild and returns the scene to Initialized.
func (a *Animator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Disposed {
		return ErrDisposed
	}
	// Requests made before a rebuild are applied first so the rebuild wins.
	if a.state != Uninitialized {
		for _, cmd := range a.queue.drain() {
			cmd.apply(a)
		}
	}
	field, err := GenerateField(a.configured, a.rng, a.gradient)
	if err != nil {
		return err
	}
	field.Palette = a.palette
	shapes := GenerateShapes(Detailed, a.palette, a.kinetics, a.rng)

	a.releaseLocked()
	a.field, a.shapes = field, shapes
	a.count = a.configured
	w, h := a.surface.Size()
	a.camera = NewCamera(float64(w) / float64(h))
	a.pointer = Vec3{}
	a.state = Initialized

	a.logger.Info("scene initialized",
		zap.Int("particles", field.Count),
		zap.Int("shapes", len(shapes.Shapes)))
	return nil
}

// Advance applies every pending command, moves the scene to time t and
// renders it. It never fails; missing entities are skipped.
func (a *Animator) Advance(t float64) Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Uninitialized || a.state == Disposed {
		return Frame{Time: t, State: a.state}
	}

	for _, cmd := range a.queue.drain() {
		cmd.apply(a)
		a.logger.Debug("applied command", zap.String("command", cmd.name), zap.Uint64("frame", a.frame))
	}

	a.frame++
	a.fieldRotation = t * FieldSpinRate
	if a.shapes != nil {
		for _, s := range a.shapes.Shapes {
			if s == nil {
				continue
			}
			s.advance(t)
		}
	}
	a.camera.follow(a.pointer, a.pointerScale, a.smoothing)

	f := a.snapshotLocked(t)
	a.render(f)
	return f
}

func (a *Animator) snapshotLocked(t float64) Frame {
	f := Frame{
		Number:        a.frame,
		Time:          t,
		State:         a.state,
		FieldRotation: a.fieldRotation,
		Camera:        a.camera,
		Background:    a.background,
	}
	if a.field.Consistent() {
		f.Field = a.field
		f.ParticleColor = a.field.LiveColor(t)
	}
	if a.shapes != nil {
		f.Shapes = make([]Shape, 0, len(a.shapes.Shapes))
		for _, s := range a.shapes.Shapes {
			if s != nil {
				f.Shapes = append(f.Shapes, *s)
			}
		}
	}
	return f
}

func (a *Animator) render(f Frame) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("surface render panicked", zap.Any("panic", r), zap.Uint64("frame", f.Number))
		}
	}()
	a.surface.Render(f)
}

// Dispose stops the frame loop and releases every structural buffer.
// Disposed is terminal.
func (a *Animator) Dispose() {
	a.Stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Disposed {
		return
	}
	a.disposed.Store(true)
	a.queue.drain()
	a.releaseLocked()
	a.state = Disposed
	a.logger.Info("scene disposed", zap.Uint64("frames", a.frame))
}

func (a *Animator) releaseLocked() {
	if a.field != nil {
		a.field.Release()
		a.field = nil
	}
	if a.shapes != nil {
		a.shapes.Release()
		a.shapes = nil
	}
}

// Start runs the frame loop at fps until Stop, Dispose or ctx cancellation.
func (a *Animator) Start(ctx context.Context, fps int) error {
	a.loopMu.Lock()
	defer a.loopMu.Unlock()

	if a.disposed.Load() {
		return ErrDisposed
	}
	if a.done != nil {
		select {
		case <-a.done:
		default:
			return ErrAlreadyRunning
		}
	}
	if fps <= 0 {
		fps = 60
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel, a.done = cancel, done
	go a.loop(ctx, time.Second/time.Duration(fps), done)
	return nil
}

func (a *Animator) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Advance(a.clock.Now())
		}
	}
}

// Stop cancels the frame loop and waits for it to exit.
func (a *Animator) Stop() {
	a.loopMu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.loopMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Field returns the live field. Callers must not mutate it.
func (a *Animator) Field() *Field {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.field
}

// Shapes returns copies of the live shapes.
func (a *Animator) Shapes() []Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shapes == nil {
		return nil
	}
	out := make([]Shape, 0, len(a.shapes.Shapes))
	for _, s := range a.shapes.Shapes {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func (a *Animator) Detail() Detail {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shapes == nil {
		return Detailed
	}
	return a.shapes.Detail
}

func (a *Animator) ParticleCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

func (a *Animator) Palette() Palette {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.palette
}

func (a *Animator) Camera() Camera {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.camera
}

// Pending reports queued commands not yet applied.
func (a *Animator) Pending() int { return a.queue.len() }
