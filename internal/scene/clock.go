package scene

import "time"

// TimeScale converts wall-clock seconds to animation time.
const TimeScale = 0.5

type Clock interface {
	Now() float64
}

// WallClock reports scaled seconds since it was created.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() float64 {
	return time.Since(c.start).Seconds() * TimeScale
}

// StepClock advances by a fixed step on every read. Used for headless runs.
type StepClock struct {
	T    float64
	Step float64
}

func (c *StepClock) Now() float64 {
	t := c.T
	c.T += c.Step
	return t
}
