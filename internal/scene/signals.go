package scene

import (
	"go.uber.org/zap"
)

// PerformanceSignal is a quality request from a performance monitor. A zero
// ParticleCount leaves the field alone.
type PerformanceSignal struct {
	ParticleCount          int
	ReduceQuality          bool
	DisableAdvancedEffects bool
	Reason                 string
}

func (s PerformanceSignal) Empty() bool {
	return s.ParticleCount == 0 && !s.ReduceQuality && !s.DisableAdvancedEffects
}

// ApplyTheme switches palette and background to the named theme.
func (a *Animator) ApplyTheme(t Theme) error {
	colors, err := t.Colors()
	if err != nil {
		return &CommandError{Command: "apply theme", Wrapped: err}
	}
	return a.submit("apply theme", func(a *Animator) {
		a.applyPalette(colors.Palette)
		a.background = colors.Background
		a.logger.Info("theme applied", zap.String("theme", string(t)))
	})
}

// ApplyPerformance translates a performance signal into reconfiguration
// commands: count first, then wireframe, then the simple set.
func (a *Animator) ApplyPerformance(sig PerformanceSignal) error {
	if sig.ParticleCount < 0 {
		return &CommandError{Command: "apply performance", Wrapped: ErrInvalidCount}
	}
	if a.disposed.Load() {
		return &CommandError{Command: "apply performance", Wrapped: ErrDisposed}
	}
	a.logger.Info("performance signal",
		zap.Int("particles", sig.ParticleCount),
		zap.Bool("reduce_quality", sig.ReduceQuality),
		zap.Bool("disable_effects", sig.DisableAdvancedEffects),
		zap.String("reason", sig.Reason))

	if sig.ParticleCount > 0 {
		if err := a.SetParticleCount(sig.ParticleCount); err != nil {
			return err
		}
	}
	if sig.DisableAdvancedEffects {
		if err := a.SetWireframeAll(true); err != nil {
			return err
		}
	}
	if sig.ReduceQuality {
		return a.SwitchToSimpleShapes()
	}
	return nil
}

// PointerMoved records the pointer in normalized device coordinates, each
// axis in [-1, 1] with y pointing up. The camera eases toward it.
func (a *Animator) PointerMoved(x, y float64) {
	_ = a.submitLatest("pointer moved", func(a *Animator) {
		a.pointer = Vec3{X: clampUnit(x), Y: clampUnit(y)}
	})
}

// Resize updates the camera aspect ratio. Non-positive sizes are ignored.
func (a *Animator) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	_ = a.submitLatest("resize", func(a *Animator) {
		a.camera.Aspect = float64(w) / float64(h)
	})
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
