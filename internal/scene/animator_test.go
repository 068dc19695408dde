package scene

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	mu     sync.Mutex
	w, h   int
	frames []Frame
	panics bool
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Render(f Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
	if s.panics {
		panic("render failed")
	}
}

func (s *recordingSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func newTestAnimator(t *testing.T, opts ...Option) (*Animator, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{w: 160, h: 90}
	a, err := New(surface, append([]Option{WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, a.Init())
	return a, surface
}

func TestNewRequiresSurface(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSurface)

	_, err = New(&recordingSurface{w: 0, h: 10})
	assert.ErrorIs(t, err, ErrNoSurface)

	_, err = New(&recordingSurface{w: 10, h: 10}, WithParticleCount(-5))
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestInitBuildsFullScene(t *testing.T) {
	a, _ := newTestAnimator(t)

	assert.Equal(t, Initialized, a.State())
	f := a.Field()
	require.NotNil(t, f)
	assert.Equal(t, DefaultParticleCount, f.Count)
	assert.Len(t, f.Positions, DefaultParticleCount)
	assert.Len(t, f.BaseColors, DefaultParticleCount)
	assert.Len(t, f.Jitter, DefaultParticleCount)
	assert.Len(t, a.Shapes(), 8)
	assert.Equal(t, Detailed, a.Detail())
}

func TestAdvanceBeforeInit(t *testing.T) {
	surface := &recordingSurface{w: 4, h: 4}
	a, err := New(surface, WithSeed(1))
	require.NoError(t, err)

	f := a.Advance(1)
	assert.Equal(t, Uninitialized, f.State)
	assert.Zero(t, surface.count())
}

func TestSetParticleCountSwapsField(t *testing.T) {
	a, _ := newTestAnimator(t)
	old := a.Field()

	require.NoError(t, a.SetParticleCount(500))
	assert.Same(t, old, a.Field(), "command must wait for the frame boundary")
	assert.Equal(t, 1, a.Pending())

	frame := a.Advance(0.1)
	require.NotNil(t, frame.Field)
	assert.Equal(t, 500, frame.Field.Count)
	assert.Len(t, frame.Field.Positions, 500)
	assert.Len(t, frame.Field.BaseColors, 500)
	assert.Len(t, frame.Field.Jitter, 500)
	assert.NotSame(t, old, a.Field())
	assert.Nil(t, old.Positions, "old field must be released")
	assert.Equal(t, Reduced, a.State())
}

func TestSetParticleCountRejectsNegative(t *testing.T) {
	a, _ := newTestAnimator(t)
	before := a.Field()

	err := a.SetParticleCount(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCount)
	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr))

	a.Advance(0.1)
	assert.Same(t, before, a.Field())
	assert.Equal(t, DefaultParticleCount, a.Field().Count)
}

func TestSetParticleCountSameIsNoop(t *testing.T) {
	a, _ := newTestAnimator(t)
	before := a.Field()
	require.NoError(t, a.SetParticleCount(DefaultParticleCount))
	a.Advance(0.1)
	assert.Same(t, before, a.Field())
	assert.Equal(t, Initialized, a.State())
}

func TestSetParticleCountIncreaseStaysInitialized(t *testing.T) {
	a, _ := newTestAnimator(t, WithParticleCount(100))
	require.NoError(t, a.SetParticleCount(300))
	a.Advance(0.1)
	assert.Equal(t, 300, a.ParticleCount())
	assert.Equal(t, Initialized, a.State())
}

func TestAdvanceNeverSeesMismatchedField(t *testing.T) {
	a, surface := newTestAnimator(t)
	counts := []int{500, 0, 1200, 3, 2000}
	for i, n := range counts {
		require.NoError(t, a.SetParticleCount(n))
		a.Advance(float64(i))
	}
	for _, f := range surface.frames {
		if f.Field == nil {
			continue
		}
		// Fields from earlier frames have since been released; a released
		// field is still internally consistent.
		assert.True(t, f.Field.Consistent())
	}
	assert.Equal(t, 2000, a.Field().Count)
}

func TestRotationMonotonic(t *testing.T) {
	a, _ := newTestAnimator(t)
	start := a.Shapes()
	prev := make([]Vec3, len(start))
	for i := range prev {
		prev[i] = start[i].Rotation
	}

	for n := 1; n <= 100; n++ {
		frame := a.Advance(float64(n) * 0.01)
		require.Len(t, frame.Shapes, len(start))
		for i, s := range frame.Shapes {
			base := start[i].Rotation
			axes := [][3]float64{
				{s.RotationSpeed.X, s.Rotation.X - base.X, prev[i].X - base.X},
				{s.RotationSpeed.Y, s.Rotation.Y - base.Y, prev[i].Y - base.Y},
				{s.RotationSpeed.Z, s.Rotation.Z - base.Z, prev[i].Z - base.Z},
			}
			for axis, v := range axes {
				speed, cur, last := v[0], math.Abs(v[1]), math.Abs(v[2])
				if speed == 0 {
					assert.Zero(t, cur, "shape %d axis %d moved with zero speed", i, axis)
					continue
				}
				assert.Greater(t, cur, last, "shape %d axis %d frame %d", i, axis, n)
			}
			prev[i] = s.Rotation
		}
	}
}

func TestSwitchToSimpleShapes(t *testing.T) {
	a, surface := newTestAnimator(t)
	require.NoError(t, a.SwitchToSimpleShapes())
	require.NoError(t, a.SwitchToSimpleShapes())

	for n := 0; n < 5; n++ {
		a.Advance(float64(n))
	}
	for _, f := range surface.frames {
		require.Len(t, f.Shapes, len(SimpleKinds))
		for i, s := range f.Shapes {
			assert.Equal(t, SimpleKinds[i], s.Kind)
			assert.True(t, s.Flat)
		}
	}
	assert.Equal(t, Simple, a.Detail())
	assert.Equal(t, Reduced, a.State())
}

func TestReducedOnlyLeavesThroughInit(t *testing.T) {
	a, _ := newTestAnimator(t)
	require.NoError(t, a.SwitchToSimpleShapes())
	a.Advance(0)
	require.NoError(t, a.SetParticleCount(5000))
	a.Advance(0.1)
	assert.Equal(t, Reduced, a.State())

	require.NoError(t, a.Init())
	assert.Equal(t, Initialized, a.State())
	assert.Equal(t, Detailed, a.Detail())
}

func TestInitRestoresConfiguredCount(t *testing.T) {
	a, _ := newTestAnimator(t)
	require.NoError(t, a.SetParticleCount(500))
	a.Advance(0)
	require.Equal(t, Reduced, a.State())

	require.NoError(t, a.Init())
	assert.Equal(t, Initialized, a.State())
	assert.Equal(t, DefaultParticleCount, a.ParticleCount())
	assert.Equal(t, DefaultParticleCount, a.Field().Count)

	require.NoError(t, a.SetParticleCount(1000))
	a.Advance(0.1)
	assert.Equal(t, Reduced, a.State(), "a downgrade after a rebuild is still a reduction")
	assert.Equal(t, 1000, a.Field().Count)
}

func TestInitAppliesPendingCommandsFirst(t *testing.T) {
	a, _ := newTestAnimator(t)
	light, err := ThemeLight.Colors()
	require.NoError(t, err)
	require.NoError(t, a.SwitchToSimpleShapes())
	require.NoError(t, a.SetPalette(light.Palette))

	require.NoError(t, a.Init())
	assert.Zero(t, a.Pending())
	assert.Equal(t, light.Palette, a.Palette())
	assert.Equal(t, light.Palette, a.Field().Palette)

	a.Advance(0)
	assert.Equal(t, Detailed, a.Detail())
	assert.Equal(t, Initialized, a.State())
	assert.Len(t, a.Shapes(), 8)
}

func TestSetWireframeAll(t *testing.T) {
	a, _ := newTestAnimator(t)
	meshes := a.Shapes()
	require.NoError(t, a.SetWireframeAll(true))
	a.Advance(0)
	for i, s := range a.Shapes() {
		assert.True(t, s.Wireframe)
		assert.Equal(t, len(meshes[i].Mesh.Edges), len(s.Mesh.Edges))
	}
	require.NoError(t, a.SetWireframeAll(false))
	a.Advance(0.1)
	for _, s := range a.Shapes() {
		assert.False(t, s.Wireframe)
	}
}

func TestSetPaletteIdempotent(t *testing.T) {
	a, _ := newTestAnimator(t)
	light, err := ThemeLight.Colors()
	require.NoError(t, err)

	require.NoError(t, a.SetPalette(light.Palette))
	a.Advance(0)
	first := a.Shapes()
	require.NoError(t, a.SetPalette(light.Palette))
	a.Advance(0.1)
	second := a.Shapes()

	assert.Equal(t, light.Palette, a.Palette())
	assert.Equal(t, light.Palette, a.Field().Palette)
	for i := range first {
		assert.Equal(t, first[i].Primary, second[i].Primary)
		assert.Equal(t, first[i].Secondary, second[i].Secondary)
	}
	assert.Equal(t, light.Palette.Primary, second[0].Primary)
	assert.Equal(t, light.Palette.Primary, second[1].Secondary)
}

func TestRegeneratedGeometryUsesCurrentPalette(t *testing.T) {
	a, _ := newTestAnimator(t)
	require.NoError(t, a.ApplyTheme(ThemeLight))
	require.NoError(t, a.SetParticleCount(10))
	require.NoError(t, a.SwitchToSimpleShapes())
	a.Advance(0)

	light, _ := ThemeLight.Colors()
	assert.Equal(t, light.Palette, a.Field().Palette)
	assert.Equal(t, light.Palette.Primary, a.Shapes()[0].Primary)
}

func TestApplyThemeUnknown(t *testing.T) {
	a, _ := newTestAnimator(t)
	err := a.ApplyTheme(Theme("sepia"))
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Zero(t, a.Pending())
}

func TestApplyPerformance(t *testing.T) {
	a, _ := newTestAnimator(t)
	require.NoError(t, a.ApplyPerformance(PerformanceSignal{
		ParticleCount:          500,
		ReduceQuality:          true,
		DisableAdvancedEffects: true,
		Reason:                 "low-end device",
	}))
	assert.Equal(t, 3, a.Pending())

	a.Advance(0)
	assert.Equal(t, 500, a.Field().Count)
	assert.Equal(t, Simple, a.Detail())
	for _, s := range a.Shapes() {
		assert.True(t, s.Wireframe)
	}

	err := a.ApplyPerformance(PerformanceSignal{ParticleCount: -3})
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestPointerFollow(t *testing.T) {
	a, _ := newTestAnimator(t)
	a.PointerMoved(1, 1)

	var last Camera
	for n := 0; n < 500; n++ {
		last = a.Advance(float64(n)).Camera
	}
	assert.InDelta(t, DefaultPointerScale, last.Position.X, 1e-3)
	assert.InDelta(t, -DefaultPointerScale, last.Position.Y, 1e-3)
	assert.InDelta(t, -last.Position.X*CameraRollFactor, last.Roll, 1e-12)
	assert.Equal(t, CameraDistance, last.Position.Z)

	a.PointerMoved(7, -7)
	a.Advance(500)
	assert.Less(t, a.Camera().Position.X, DefaultPointerScale+1e-9, "pointer is clamped to [-1, 1]")
}

func TestResize(t *testing.T) {
	a, _ := newTestAnimator(t)
	a.Resize(200, 100)
	a.Resize(0, 100)
	a.Advance(0)
	assert.Equal(t, 2.0, a.Camera().Aspect)
}

func TestPointerAndResizeKeepOnlyLatest(t *testing.T) {
	a, _ := newTestAnimator(t)
	for i := 0; i < 100000; i++ {
		a.PointerMoved(float64(i%3)-1, 0)
		a.Resize(100+i%7, 50)
	}
	assert.LessOrEqual(t, a.Pending(), 2)

	require.NoError(t, a.SetWireframeAll(true))
	a.PointerMoved(1, 1)
	assert.Equal(t, 3, a.Pending())

	a.Advance(0)
	assert.Zero(t, a.Pending())
	assert.Equal(t, Vec3{X: 1, Y: 1}, a.pointer)
	assert.InDelta(t, float64(100+99999%7)/50, a.Camera().Aspect, 1e-12)
}

func TestRenderPanicDoesNotEscape(t *testing.T) {
	a, surface := newTestAnimator(t)
	surface.panics = true
	assert.NotPanics(t, func() {
		for n := 0; n < 3; n++ {
			a.Advance(float64(n))
		}
	})
	assert.Equal(t, 3, surface.count())
}

func TestAdvanceSkipsMissingShapes(t *testing.T) {
	a, _ := newTestAnimator(t)
	a.mu.Lock()
	a.shapes.Shapes[2] = nil
	a.mu.Unlock()

	frame := a.Advance(1)
	assert.Len(t, frame.Shapes, 7)
}

func TestDispose(t *testing.T) {
	a, _ := newTestAnimator(t)
	field := a.Field()
	require.NoError(t, a.SetParticleCount(10))

	a.Dispose()
	a.Dispose()

	assert.Equal(t, Disposed, a.State())
	assert.Nil(t, a.Field())
	assert.Nil(t, a.Shapes())
	assert.Nil(t, field.Positions)
	assert.Zero(t, a.Pending())

	assert.ErrorIs(t, a.SetParticleCount(10), ErrDisposed)
	assert.ErrorIs(t, a.SetWireframeAll(true), ErrDisposed)
	assert.ErrorIs(t, a.SwitchToSimpleShapes(), ErrDisposed)
	assert.ErrorIs(t, a.SetPalette(DefaultPalette()), ErrDisposed)
	assert.ErrorIs(t, a.Init(), ErrDisposed)

	f := a.Advance(3)
	assert.Equal(t, Disposed, f.State)
	assert.Nil(t, f.Field)
}
