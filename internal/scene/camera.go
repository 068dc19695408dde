package scene

import "math"

const (
	DefaultSmoothing    = 0.02
	DefaultPointerScale = 1.2
	CameraRollFactor    = 0.05
	CameraDistance      = 5.0
)

// Camera looks at Target from Position. Aspect follows the viewport.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	Roll     float64
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

func NewCamera(aspect float64) Camera {
	return Camera{
		Position: Vec3{0, 0, CameraDistance},
		Up:       Vec3{0, 1, 0},
		FOV:      75 * math.Pi / 180,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

// follow eases the camera toward the pointer target. With smoothing in
// (0, 1) this is a first-order filter and never overshoots.
func (c *Camera) follow(pointer Vec3, scale, smoothing float64) {
	target := Vec3{X: pointer.X * scale, Y: -pointer.Y * scale}
	c.Position.X += (target.X - c.Position.X) * smoothing
	c.Position.Y += (target.Y - c.Position.Y) * smoothing
	c.Roll = -c.Position.X * CameraRollFactor
}
