package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface indicates a missing or zero-sized render surface.
	ErrNoSurface = errors.New("scene: missing or invalid render surface")

	// ErrInvalidCount indicates a negative particle count.
	ErrInvalidCount = errors.New("scene: invalid particle count")

	// ErrDisposed indicates a request against a disposed scene.
	ErrDisposed = errors.New("scene: scene disposed")

	// ErrUnknownTheme indicates a theme identifier outside the closed set.
	ErrUnknownTheme = errors.New("scene: unknown theme")

	// ErrAlreadyRunning indicates Start on an animator whose loop is live.
	ErrAlreadyRunning = errors.New("scene: frame loop already running")
)

// CommandError wraps a rejected reconfiguration request.
type CommandError struct {
	Command string
	Wrapped error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Wrapped)
}

func (e *CommandError) Unwrap() error {
	return e.Wrapped
}
