package scene

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	surface := &recordingSurface{w: 80, h: 24}
	a, err := New(surface, WithSeed(3), WithParticleCount(50), WithClock(&StepClock{Step: 0.01}))
	require.NoError(t, err)
	require.NoError(t, a.Init())

	require.NoError(t, a.Start(context.Background(), 200))
	assert.ErrorIs(t, a.Start(context.Background(), 200), ErrAlreadyRunning)

	assert.Eventually(t, func() bool { return surface.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	a.Stop()
	a.Stop()

	n := surface.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, surface.count(), "no frames after Stop")
}

func TestStartRestartsAfterContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	surface := &recordingSurface{w: 80, h: 24}
	a, err := New(surface, WithSeed(3), WithParticleCount(10))
	require.NoError(t, err)
	require.NoError(t, a.Init())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.Start(ctx, 100))
	cancel()

	assert.Eventually(t, func() bool {
		err := a.Start(context.Background(), 100)
		return err == nil
	}, time.Second, 5*time.Millisecond)
	a.Dispose()
}

func TestDisposeStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	surface := &recordingSurface{w: 80, h: 24}
	a, err := New(surface, WithSeed(8), WithParticleCount(10))
	require.NoError(t, err)
	require.NoError(t, a.Init())
	require.NoError(t, a.Start(context.Background(), 120))

	a.Dispose()
	assert.ErrorIs(t, a.Start(context.Background(), 60), ErrDisposed)
	assert.Equal(t, Disposed, a.State())
}
