// Package scene generates and animates the portfolio background scene.
//
// A scene is made of two structural parts, both derived from an injected
// random source:
//
//   - [Field]: a spiral particle disk with a radial color gradient
//   - [ShapeSet]: a small set of floating solids with per-shape kinetics
//
// The [Animator] owns both, advances them once per frame and renders the
// result into a caller-provided [Surface]. External requests (particle
// count, wireframe, simple shapes, palette, pointer, viewport) are queued
// and applied at the next frame boundary, never in the middle of a frame.
//
// # Example
//
//	anim, _ := scene.New(surface, scene.WithSeed(42))
//	_ = anim.Init()
//	_ = anim.SetParticleCount(500)
//	frame := anim.Advance(clock.Now())
//
// # Thread Safety
//
// Reconfiguration methods are safe to call from any goroutine. Advance,
// Init and Dispose serialize on the animator's frame lock, so a frame never
// observes a half-applied change.
package scene
