package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/folio3d/internal/config"
	"github.com/san-kum/folio3d/internal/content"
	"github.com/san-kum/folio3d/internal/metrics"
	"github.com/san-kum/folio3d/internal/scene"
)

const (
	width      = 80
	height     = 24
	statsWidth = 50
	maxCount   = 20000
	gifPath    = "folio3d.gif"
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

type TickMsg time.Time

// ConfigMsg carries a reloaded config into the live view.
type ConfigMsg struct{ Config *config.Config }

// ContentMsg replaces the portfolio content shown beside the scene.
type ContentMsg struct{ Bundle *content.Bundle }

// LiveOptions wires a live view. Animator and Surface are required and the
// animator must already be initialized.
type LiveOptions struct {
	Animator *scene.Animator
	Surface  *CanvasSurface
	Monitor  *metrics.Monitor
	Clock    scene.Clock
	Config   *config.Config
	Bundle   *content.Bundle
	Logger   *zap.Logger
	GIFPath  string
}

// Model is the Bubble Tea model driving an animator from tea ticks.
type Model struct {
	anim     *scene.Animator
	surface  *CanvasSurface
	monitor  *metrics.Monitor
	clock    scene.Clock
	cfg      *config.Config
	bundle   *content.Bundle
	logger   *zap.Logger
	theme    scene.Theme
	ui       Theme
	styles   Styles
	interval time.Duration

	width, height int
	count         int
	wireframe     bool
	running       bool
	showHelp      bool
	recorder      *Recorder
	gifPath       string
	status        string
	lastSignal    string
}

// NewModel builds the live view around an initialized animator.
func NewModel(opts LiveOptions) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = metrics.NewMonitor(logger)
	}
	clock := opts.Clock
	if clock == nil {
		clock = scene.NewWallClock()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = content.Fallback()
	}
	path := opts.GIFPath
	if path == "" {
		path = gifPath
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	theme := scene.Theme(cfg.Theme)
	ui := ForScene(theme)
	return Model{
		anim:      opts.Animator,
		surface:   opts.Surface,
		monitor:   monitor,
		clock:     clock,
		cfg:       cfg,
		bundle:    bundle,
		logger:    logger,
		theme:     theme,
		ui:        ui,
		styles:    NewStyles(ui),
		interval:  time.Second / time.Duration(fps),
		width:     width,
		height:    height,
		count:     opts.Animator.ParticleCount(),
		wireframe: cfg.Shapes.Wireframe,
		running:   true,
		gifPath:   path,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.pointer(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case ConfigMsg:
		m.reload(msg.Config)
	case ContentMsg:
		if msg.Bundle != nil {
			m.bundle = msg.Bundle
		}
	case TickMsg:
		if m.running {
			m.frame(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.running = !m.running
	case "t":
		m.setTheme(m.theme.Toggle())
	case "w":
		m.wireframe = !m.wireframe
		m.command("wireframe", m.anim.SetWireframeAll(m.wireframe))
	case "s":
		m.command("simple shapes", m.anim.SwitchToSimpleShapes())
	case "+", "=":
		m.setCount(min(maxCount, max(1, m.count*2)))
	case "-", "_":
		m.setCount(m.count / 2)
	case "1", "2", "3":
		level := map[string]string{"1": "low", "2": "medium", "3": "high"}[msg.String()]
		sig, err := metrics.Optimize(level)
		if err == nil {
			err = m.anim.ApplyPerformance(sig)
			m.count = sig.ParticleCount
			m.wireframe = m.wireframe || sig.DisableAdvancedEffects
		}
		m.command("optimize "+level, err)
	case "r":
		m.command("rebuild", m.anim.Init())
		m.count, m.wireframe = m.anim.ParticleCount(), false
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// command records the outcome of a user action in the status line.
func (m *Model) command(name string, err error) {
	if err != nil {
		m.status = name + ": " + err.Error()
		m.logger.Warn("command rejected", zap.String("command", name), zap.Error(err))
		return
	}
	m.status = name
}

func (m *Model) setTheme(t scene.Theme) {
	if err := m.anim.ApplyTheme(t); err != nil {
		m.command("theme", err)
		return
	}
	m.theme = t
	m.ui = ForScene(t)
	m.styles = NewStyles(m.ui)
	m.status = "theme " + string(t)
}

func (m *Model) setCount(n int) {
	if err := m.anim.SetParticleCount(n); err != nil {
		m.command("particles", err)
		return
	}
	m.count = n
	m.status = fmt.Sprintf("particles %d", n)
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(int(time.Second / m.interval))
		m.status = "recording"
		return
	}
	n := m.recorder.Len()
	err := m.recorder.Save(m.gifPath)
	m.recorder = nil
	if err != nil {
		m.command("save gif", err)
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", n, m.gifPath)
	m.logger.Info("gif saved", zap.String("path", m.gifPath), zap.Int("frames", n))
}

// canvasCells is the canvas size in cells for a terminal of w by h.
func canvasCells(w, h int) (int, int) {
	return max(20, w-statsWidth-6), max(8, h-3)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw, ch := canvasCells(w, h)
	m.surface.Resize(cw, ch)
	m.anim.Resize(m.surface.Size())
}

// pointer maps a terminal cell to normalized device coordinates over the
// canvas, y up.
func (m *Model) pointer(x, y int) {
	cw, ch := canvasCells(m.width, m.height)
	cx, cy := x-2, y-1
	if cx < 0 || cy < 0 || cx >= cw || cy >= ch {
		return
	}
	nx := float64(cx)/float64(max(1, cw-1))*2 - 1
	ny := 1 - float64(cy)/float64(max(1, ch-1))*2
	m.anim.PointerMoved(nx, ny)
}

func (m *Model) frame(now time.Time) {
	f := m.anim.Advance(m.clock.Now())
	if sig := m.monitor.Observe(now); sig != nil && m.cfg.Performance.Monitor {
		if err := m.anim.ApplyPerformance(*sig); err != nil {
			m.logger.Warn("performance signal rejected", zap.Error(err))
		}
		m.lastSignal = sig.Reason
	}
	if m.recorder != nil {
		m.recorder.Capture(m.surface.Snapshot(), f.Background)
	}
}

func (m *Model) reload(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if err := cfg.ApplyChanges(m.anim, m.cfg); err != nil {
		m.command("reload", err)
		return
	}
	if cfg.Theme != m.cfg.Theme {
		m.theme = scene.Theme(cfg.Theme)
		m.ui = ForScene(m.theme)
		m.styles = NewStyles(m.ui)
	}
	if cfg.Field.ParticleCount != m.cfg.Field.ParticleCount {
		m.count = cfg.Field.ParticleCount
	}
	m.wireframe = cfg.Shapes.Wireframe
	if cfg.FPS > 0 {
		m.interval = time.Second / time.Duration(cfg.FPS)
	}
	m.cfg = cfg
	m.status = "config reloaded"
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.surface.View())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.Panel.Render(m.statsView()))
	if m.showHelp {
		help := helpView
		for _, rec := range m.monitor.Recommendations(metrics.DetectDevice()) {
			help += "\n" + m.styles.Subtle.Render("• "+rec)
		}
		return help + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statsView() string {
	s, st := m.styles, m.surface.Stats()
	var b strings.Builder

	about := m.bundle.About
	title := about.Title
	if title == "" {
		title = "folio3d"
	}
	b.WriteString(GradientText(title, m.ui.Primary, m.ui.Secondary) + "\n")
	if about.Subtitle != "" {
		b.WriteString(s.Subtle.Render(about.Subtitle) + "\n")
	}
	b.WriteString(s.Separator(statsWidth-6) + "\n")

	switch {
	case m.recorder != nil:
		b.WriteString(s.Record.Render(fmt.Sprintf("● REC %d", m.recorder.Len())) + "\n\n")
	case m.running:
		b.WriteString(s.Running.Render("RUNNING") + "\n\n")
	default:
		b.WriteString(s.Paused.Render("PAUSED") + "\n\n")
	}

	if hist := m.monitor.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("FPS"))
		b.WriteString(s.Graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		b.WriteString(s.Label.Render(label) + s.Value.Render(value) + "\n")
	}
	row("State", st.State.String())
	row("Frame", fmt.Sprintf("%d", st.Frame))
	row("Particles", fmt.Sprintf("%d / %d", st.Visible, st.Particles))
	row("Shapes", fmt.Sprintf("%d %s", st.Shapes, m.anim.Detail()))
	row("Theme", string(m.theme))
	row("FPS", fmt.Sprintf("%.0f", m.monitor.FPS()))
	for _, metric := range m.monitor.Metrics() {
		switch metric.Name() {
		case "frame_time_ms":
			row("Frame ms", fmt.Sprintf("%.1f", metric.Value()))
		case "heap_mb":
			row("Heap", fmt.Sprintf("%.1f MB", metric.Value()))
		}
	}
	if m.lastSignal != "" {
		row("Signal", m.lastSignal)
	}

	if cats := content.Categories(m.bundle.Skills); len(cats) > 0 {
		levels := content.SkillLevels(m.bundle)[cats[0]]
		b.WriteString("\n" + s.Title.Render(strings.ToUpper(content.CategoryTitle(cats[0]))) + "\n")
		for i, l := range levels {
			if i == 4 {
				break
			}
			b.WriteString(fmt.Sprintf("%-14.14s %s\n", l.Name, s.ProgressBar(float64(l.Level)/100, 14)))
		}
	}
	if cards := content.ProjectCards(m.bundle); len(cards) > 0 {
		c := cards[0]
		b.WriteString("\n" + s.Active.Render("★ "+c.Title) + s.Subtle.Render(fmt.Sprintf(" %d", c.Year)) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + s.Subtle.Render(m.status) + "\n")
	}
	b.WriteString(s.KeyHint.Render("\nSP:Pause T:Theme W:Wire S:Simple\n+/-:Particles 1-3:Optimize G:GIF ?:Help"))
	return b.String()
}

const helpView = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space/P  - Pause/Resume animation   ║
║  T        - Toggle dark/light theme  ║
║  W        - Toggle wireframe         ║
║  S        - Switch to simple shapes  ║
║  +/-      - Double/halve particles   ║
║  1/2/3    - Optimize low/medium/high ║
║  R        - Rebuild the scene        ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunOptions are the background feeds of a running program.
type RunOptions struct {
	// ConfigPath, when set, is watched and reloads are sent as ConfigMsg.
	ConfigPath string
	// Content, when set, is fetched once and delivered as ContentMsg.
	Content        content.Source
	ContentTimeout time.Duration
	Logger         *zap.Logger
}

// Run starts the program and feeds it config reloads and content until it
// exits.
func Run(ctx context.Context, root tea.Model, ro RunOptions, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(root, opts...)

	eg, egCtx := errgroup.WithContext(ctx)
	if ro.ConfigPath != "" {
		eg.Go(func() error {
			return config.Watch(egCtx, ro.ConfigPath, func(c *config.Config) { p.Send(ConfigMsg{Config: c}) }, ro.Logger)
		})
	}
	if ro.Content != nil {
		eg.Go(func() error {
			p.Send(ContentMsg{Bundle: content.Load(egCtx, ro.Content, ro.ContentTimeout, ro.Logger)})
			return nil
		})
	}
	eg.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return eg.Wait()
}
