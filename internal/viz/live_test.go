package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/content"
	"github.com/san-kum/folio3d/internal/scene"
)

func newLiveModel(t *testing.T) Model {
	t.Helper()
	surface := NewCanvasSurface(40, 12)
	anim, err := scene.New(surface, scene.WithSeed(5), scene.WithParticleCount(400))
	require.NoError(t, err)
	require.NoError(t, anim.Init())
	t.Cleanup(anim.Dispose)
	return NewModel(LiveOptions{
		Animator: anim,
		Surface:  surface,
		Clock:    &scene.StepClock{Step: 0.01},
		Bundle:   content.Sample(),
		GIFPath:  t.TempDir() + "/rec.gif",
	})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestLiveTickAdvancesScene(t *testing.T) {
	m := newLiveModel(t)
	next, cmd := m.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd, "ticks reschedule themselves")
	m = next.(Model)
	assert.Equal(t, uint64(1), m.surface.Stats().Frame)

	m = press(m, " ")
	assert.False(t, m.running)
	m = tick(m)
	assert.Equal(t, uint64(1), m.surface.Stats().Frame, "paused view does not advance")
}

func TestLiveParticleKeys(t *testing.T) {
	m := newLiveModel(t)
	m = press(m, "-")
	assert.Equal(t, 200, m.count)
	m = tick(m)
	assert.Equal(t, 200, m.anim.ParticleCount())
	assert.Equal(t, scene.Reduced, m.anim.State())

	m = press(m, "+")
	m = tick(m)
	assert.Equal(t, 400, m.anim.ParticleCount())
}

func TestLiveOptimizeAndShapes(t *testing.T) {
	m := newLiveModel(t)
	m = press(m, "3")
	m = press(m, "s")
	m = tick(m)
	assert.Equal(t, 200, m.anim.ParticleCount())
	assert.Equal(t, scene.Simple, m.anim.Detail())
	for _, s := range m.anim.Shapes() {
		assert.True(t, s.Wireframe)
	}
}

func TestLiveThemeToggle(t *testing.T) {
	m := newLiveModel(t)
	m = press(m, "t")
	m = tick(m)
	assert.Equal(t, scene.ThemeLight, m.theme)
	light, _ := scene.ThemeLight.Colors()
	assert.Equal(t, light.Palette, m.anim.Palette())
	assert.Equal(t, ThemeLight.Name, m.ui.Name)
}

func TestLiveResizeAndPointer(t *testing.T) {
	m := newLiveModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 150, Height: 40})
	m = next.(Model)
	cw, ch := canvasCells(150, 40)
	w, h := m.surface.Size()
	assert.Equal(t, cw*2, w)
	assert.Equal(t, ch*4, h)

	next, _ = m.Update(tea.MouseMsg{X: 2 + cw - 1, Y: 1, Action: tea.MouseActionMotion})
	m = next.(Model)
	for i := 0; i < 200; i++ {
		m = tick(m)
	}
	cam := m.anim.Camera()
	assert.Greater(t, cam.Position.X, 0.5)
	assert.Less(t, cam.Position.Y, -0.5)
	assert.InDelta(t, float64(w)/float64(h), cam.Aspect, 1e-9)
}

func TestLiveConfigReload(t *testing.T) {
	m := newLiveModel(t)
	cfg := m.cfg.Clone()
	cfg.Theme = "light"
	cfg.Field.ParticleCount = 100
	cfg.FPS = 30
	next, _ := m.Update(ConfigMsg{Config: cfg})
	m = next.(Model)
	m = tick(m)

	assert.Equal(t, 100, m.anim.ParticleCount())
	assert.Equal(t, scene.ThemeLight, m.theme)
	assert.Equal(t, time.Second/30, m.interval)
	assert.Equal(t, "config reloaded", m.status)
}

func TestLiveRecording(t *testing.T) {
	m := newLiveModel(t)
	m = press(m, "g")
	require.NotNil(t, m.recorder)
	m = tick(m)
	m = tick(m)
	assert.Equal(t, 2, m.recorder.Len())
	m = press(m, "g")
	assert.Nil(t, m.recorder)
	assert.True(t, strings.HasPrefix(m.status, "saved 2 frames"))
}

func TestLiveViewShowsContent(t *testing.T) {
	m := tick(newLiveModel(t))
	view := m.View()
	assert.Contains(t, view, "RUNNING")
	assert.Contains(t, view, "Particles")
	assert.Contains(t, view, "Frame ms")
	assert.Contains(t, view, "Heap")

	m = press(m, "?")
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}

func TestLiveCommandErrorShownInStatus(t *testing.T) {
	m := newLiveModel(t)
	m.anim.Dispose()
	m = press(m, "w")
	assert.True(t, strings.HasPrefix(m.status, "wireframe:"))
	assert.True(t, errors.Is(m.anim.SetWireframeAll(true), scene.ErrDisposed))
}

func TestLiveDefaultsConfig(t *testing.T) {
	m := newLiveModel(t)
	assert.Equal(t, config.DefaultFPS, int(time.Second/m.interval))
}
