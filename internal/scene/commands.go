package scene

import (
	"sync"

	"go.uber.org/zap"
)

type command struct {
	name  string
	apply func(a *Animator)
	// latest marks a command where only the newest pending request matters.
	latest bool
}

// commandQueue collects reconfiguration requests from any goroutine. The
// frame loop drains it at the start of the next advance so a frame never
// observes a half-applied change.
type commandQueue struct {
	mu      sync.Mutex
	pending []command
}

func (q *commandQueue) push(c command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if c.latest {
		for i, p := range q.pending {
			if p.latest && p.name == c.name {
				q.pending[i] = c
				return
			}
		}
	}
	q.pending = append(q.pending, c)
}

func (q *commandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

func (q *commandQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (a *Animator) submit(name string, fn func(a *Animator)) error {
	return a.enqueue(command{name: name, apply: fn})
}

// submitLatest replaces a pending command of the same name instead of
// queueing behind it.
func (a *Animator) submitLatest(name string, fn func(a *Animator)) error {
	return a.enqueue(command{name: name, apply: fn, latest: true})
}

func (a *Animator) enqueue(c command) error {
	if a.disposed.Load() {
		return &CommandError{Command: c.name, Wrapped: ErrDisposed}
	}
	a.queue.push(c)
	return nil
}

// SetParticleCount regenerates the field with n particles at the next frame.
// The old field is released once the new one is in place.
func (a *Animator) SetParticleCount(n int) error {
	if n < 0 {
		return &CommandError{Command: "set particle count", Wrapped: ErrInvalidCount}
	}
	return a.submit("set particle count", func(a *Animator) { a.applyParticleCount(n) })
}

// SetWireframeAll forces the wireframe flag of every live shape.
func (a *Animator) SetWireframeAll(on bool) error {
	return a.submit("set wireframe", func(a *Animator) {
		if a.shapes == nil {
			return
		}
		for _, s := range a.shapes.Shapes {
			if s != nil {
				s.Wireframe = on
			}
		}
	})
}

// SwitchToSimpleShapes replaces the shape set with the reduced one. It is
// idempotent.
func (a *Animator) SwitchToSimpleShapes() error {
	return a.submit("switch to simple shapes", (*Animator).applySimpleShapes)
}

// SetPalette recolors the field and every shape. New geometry created later
// also uses p.
func (a *Animator) SetPalette(p Palette) error {
	return a.submit("set palette", func(a *Animator) { a.applyPalette(p) })
}

func (a *Animator) applyParticleCount(n int) {
	if n == a.count && a.field != nil {
		return
	}
	next, err := GenerateField(n, a.rng, a.gradient)
	if err != nil {
		a.logger.Warn("particle regeneration failed", zap.Int("count", n), zap.Error(err))
		return
	}
	next.Palette = a.palette
	old := a.field
	a.field = next
	a.count = n
	if old != nil {
		old.Release()
	}
	if n < a.configured {
		a.markReduced()
	}
	a.logger.Info("particle field regenerated", zap.Int("count", n))
}

func (a *Animator) applySimpleShapes() {
	if a.shapes != nil && a.shapes.Detail == Simple {
		return
	}
	next := GenerateShapes(Simple, a.palette, a.kinetics, a.rng)
	old := a.shapes
	a.shapes = next
	if old != nil {
		old.Release()
	}
	a.markReduced()
	a.logger.Info("switched to simple shapes", zap.Int("shapes", len(next.Shapes)))
}

func (a *Animator) applyPalette(p Palette) {
	a.palette = p
	if a.field != nil {
		a.field.Palette = p
	}
	if a.shapes != nil {
		for _, s := range a.shapes.Shapes {
			if s != nil {
				s.applyPalette(p)
			}
		}
	}
}

func (a *Animator) markReduced() {
	if a.state == Initialized {
		a.state = Reduced
	}
}
