package content

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	ErrUnavailable = errors.New("content: source unavailable")
	ErrStatus      = errors.New("content: unexpected response status")
)

// Source fetches a content bundle.
type Source interface {
	Fetch(ctx context.Context) (*Bundle, error)
}

// DefaultLoadTimeout bounds how long the live view waits for content.
const DefaultLoadTimeout = 3 * time.Second

// Load fetches from src within timeout and falls back to the static bundle
// on any failure. It never returns nil.
func Load(ctx context.Context, src Source, timeout time.Duration, logger *zap.Logger) *Bundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if src == nil {
		logger.Debug("no content source configured, using fallback")
		return Fallback()
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("content fetch failed, using fallback", zap.Error(err))
		return Fallback()
	}
	if b == nil {
		return Fallback()
	}
	return b.normalize()
}
