package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/folio3d/internal/scene"
)

const scripted = `
name: degrade
seed: 7
particle_count: 400
frames: 30
steps:
  - frame: 5
    action: set_particle_count
    count: 100
  - frame: 10
    action: optimize
    level: high
  - frame: 12
    action: pointer
    x: 0.5
    y: -0.5
  - frame: 20
    action: toggle_theme
`

func TestParseScenarioDefaults(t *testing.T) {
	sc, err := ParseScenario([]byte("name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFrames, sc.Frames)
	assert.Equal(t, DefaultFPS, sc.FPS)
	assert.Equal(t, "dark", sc.Theme)
}

func TestParseScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown action", "frames: 5\nsteps:\n  - frame: 1\n    action: explode\n"},
		{"frame out of range", "frames: 5\nsteps:\n  - frame: 5\n    action: init\n"},
		{"theme", "theme: sepia\n"},
		{"count", "particle_count: -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			assert.True(t, errors.Is(err, ErrInvalidScenario), "got %v", err)
		})
	}
}

func TestRunScriptedScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scripted))
	require.NoError(t, err)

	res, err := Run(context.Background(), sc, nil)
	require.NoError(t, err)
	require.Len(t, res.Samples, 30)

	assert.Equal(t, 400, res.Samples[0].Particles)
	assert.Equal(t, scene.Initialized, res.Samples[0].State)
	assert.Equal(t, 100, res.Samples[5].Particles)
	assert.Equal(t, scene.Reduced, res.Samples[5].State)
	assert.Equal(t, 200, res.Samples[10].Particles)
	assert.Equal(t, scene.Reduced, res.Final)
	assert.Equal(t, 200, res.Particles)
	assert.NotNil(t, res.Canvas)

	for i := 1; i < len(res.Samples); i++ {
		assert.Equal(t, res.Samples[i-1].Frame+1, res.Samples[i].Frame)
	}
	assert.Contains(t, res.Metrics, "frame_time_ms")

	meta := res.Metadata(sc)
	assert.Equal(t, "degrade", meta.Name)
	assert.Equal(t, int64(7), meta.Seed)
	assert.Equal(t, "reduced", meta.FinalState)
}

func TestRunStopsOnCommandError(t *testing.T) {
	sc := &Scenario{Frames: 10, Steps: []Step{
		{Frame: 2, Action: ActionDispose},
		{Frame: 3, Action: ActionParticles, Count: 10},
	}}
	sc.applyDefaults()
	sc.Frames = 10
	require.NoError(t, sc.Validate())

	_, err := Run(context.Background(), sc, nil)
	assert.ErrorIs(t, err, scene.ErrDisposed)
}

func TestRunHonorsContext(t *testing.T) {
	sc := &Scenario{}
	sc.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, sc, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scripted), 0644))
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 4)
}

func TestRunSweep(t *testing.T) {
	res, err := RunSweep(context.Background(), &Sweep{Counts: []int{0, 50}, Frames: 5, Seed: 3}, nil)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Visible)
	assert.Equal(t, 50, res[1].Count)

	_, err = RunSweep(context.Background(), &Sweep{}, nil)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestRunEnsemble(t *testing.T) {
	sc, err := ParseScenario([]byte(scripted))
	require.NoError(t, err)

	results, err := RunEnsemble(context.Background(), sc, 3, 100, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, int64(100+i), r.Seed)
		assert.Len(t, r.Result.Samples, sc.Frames)
		assert.Equal(t, 200, r.Result.Particles)
	}
	assert.Equal(t, int64(7), sc.Seed, "the base scenario is not modified")

	_, err = RunEnsemble(context.Background(), sc, 0, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}
