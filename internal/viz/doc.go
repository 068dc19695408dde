// Package viz renders the particle scene in the terminal.
//
// The package implements the terminal front end using the Bubble Tea framework:
//
//   - [CanvasSurface]: a scene surface that draws frames into a braille [Canvas]
//   - [Model]: the live view, ticking the animator and showing stats beside it
//   - [NewInteractiveApp]: the portfolio browser with the live scene one key away
//   - Dark and light themes matching the scene palettes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	T     - Toggle theme
//	W     - Toggle wireframe
//	S     - Switch to simple shapes
//	+/-   - Double or halve the particle count
//	1-3   - Optimize low/medium/high
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// Mouse motion over the canvas steers the camera.
//
// # Recording
//
// The live view can record sessions as GIF animations using the G key.
// Recordings are saved to the current directory.
package viz
