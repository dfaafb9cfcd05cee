package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orrery/internal/clock"
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/observability"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	panelWidth  = 34
	headerLines = 1
	footerLines = 1
	minCanvasW  = 20
	minCanvasH  = 8
)

type Options struct {
	Config     control.Config
	Light      bool
	FPS        int
	HideOrbits bool
	Logger     logging.Logger
	Metrics    *observability.FrameCollector
}

type tickMsg time.Time

type model struct {
	sim   *control.Simulation
	scene *viz.Scene
	panel *panel
	clock *clock.Clock
	log   logging.Logger
	err   error

	interval time.Duration
	selected int
	fps      float64
	width    int
	height   int
}

// New builds the model. An initialization failure is kept and shown instead
// of the scene.
func New(opts Options) tea.Model {
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	m := model{
		clock:    clock.New(),
		log:      opts.Logger,
		interval: time.Second / time.Duration(fps),
		width:    80,
		height:   24,
	}
	cw, ch := m.canvasSize()
	m.scene = viz.NewScene(cw, ch, viz.ThemeDark, opts.Config.Seed)
	m.scene.SetShowOrbits(!opts.HideOrbits)
	m.panel = newPanel(m.scene)

	s, err := control.New(opts.Config, m.scene, m.panel,
		control.WithLogger(opts.Logger),
		control.WithMetrics(opts.Metrics))
	if err != nil {
		opts.Logger.Error(context.Background(), "initialization failed", logging.Err(err))
		m.err = err
		return m
	}
	m.sim = s
	if opts.Light {
		s.ToggleTheme()
	}
	m.resize(m.width, m.height)
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.err == nil {
			m.handleMouse(msg)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.err == nil {
			m.resize(msg.Width, msg.Height)
		}
		return m, nil
	case tickMsg:
		if m.err != nil {
			return m, nil
		}
		dt := m.clock.Delta()
		if dt > 0 {
			m.fps = 1.0 / dt
		}
		m.sim.Tick(dt)
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" || key == "esc" {
		return m, tea.Quit
	}
	if m.err != nil {
		return m, nil
	}

	switch key {
	case "j", "tab":
		if n := len(m.panel.controls); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "k", "shift+tab":
		if n := len(m.panel.controls); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case "+", "=":
		m.adjustSpeed(1)
	case "-", "_":
		m.adjustSpeed(-1)
	case "o":
		m.scene.SetShowOrbits(!m.scene.ShowOrbits())
	default:
		if !m.sim.KeyPress(key) {
			return m, nil
		}
		if key == control.KeyPanel || key == "C" {
			m.resize(m.width, m.height)
		}
	}
	return m, nil
}

func (m *model) adjustSpeed(dir float64) {
	if m.selected >= len(m.panel.controls) {
		return
	}
	c := m.panel.controls[m.selected]
	if err := m.sim.SetSpeed(c.ID, c.Value+dir*c.Step); err != nil {
		m.log.Warn(context.Background(), "speed change rejected", logging.Err(err))
		return
	}
	m.panel.RenderSpeedControls(m.sim.SpeedControls())
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	cw, ch := m.canvasSize()
	col, row := msg.X, msg.Y-headerLines
	if col < 0 || row < 0 || col >= cw || row >= ch {
		m.sim.PointerLeave()
		return
	}

	x, y := m.scene.CellToNDC(col, row)
	m.sim.PointerMove(x, y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.sim.Click()
	}
}

func (m model) canvasSize() (int, int) {
	w := m.width
	if m.panel == nil || !m.panel.collapsed {
		w -= panelWidth
	}
	return max(w, minCanvasW), max(m.height-headerLines-footerLines, minCanvasH)
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	pw, ph := m.scene.Resize(m.canvasSize())
	m.sim.Resize(pw, ph)
}

func (m model) View() string {
	if m.err != nil {
		return m.viewError()
	}

	st := m.panel.styles
	var b strings.Builder
	b.WriteString(m.viewHeader(st) + "\n")

	canvas := strings.TrimSuffix(m.scene.View(), "\n")
	if m.panel.collapsed {
		b.WriteString(canvas)
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.viewPanel(st)))
	}
	b.WriteString("\n" + st.KeyHint.Render("space pause  r reset  t theme  c panel  ←↑↓→ move  j/k select  +/- speed  o orbits  q quit"))
	return b.String()
}

func (m model) viewHeader(st viz.Styles) string {
	status := st.Running.Render(viz.AnimatedSpinner(m.sim.Frames()) + " running")
	if m.panel.paused {
		status = st.Paused.Render("⏸ paused")
	}
	title := viz.GradientText("o r r e r y", st.Theme.Secondary, st.Theme.Accent)
	meta := st.Subtle.Render(fmt.Sprintf("t=%.1fs  %.0ffps  camera %s", m.sim.Elapsed(), m.fps, m.sim.CameraMode()))
	return fmt.Sprintf(" %s  %s  %s", title, status, meta)
}

func (m model) viewPanel(st viz.Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Planet speeds") + "\n")
	for i, c := range m.panel.controls {
		name := fmt.Sprintf("%-8s", c.Name)
		if i == m.selected {
			name = st.Selected.Render("▸ " + name)
		} else {
			name = st.Label.Render("  " + name)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", name, viz.SpeedBar(c.Value, c.Max, 10, c.Color), st.Value.Render(fmt.Sprintf("%.1f", c.Value))))
	}

	if info := m.panel.info; info != nil {
		b.WriteString("\n" + m.viewInfo(st, *info))
	} else {
		b.WriteString("\n" + st.Subtle.Render("hover a planet for details"))
	}
	return st.Panel.Width(panelWidth - 2).Render(b.String())
}

func (m model) viewInfo(st viz.Styles, info orbit.Info) string {
	var b strings.Builder
	b.WriteString(viz.Swatch(info.Color) + " " + st.Title.Render(info.Name) + "\n")
	b.WriteString(st.Label.Render("Distance ") + st.Value.Render(info.RealDistance) + "\n")
	b.WriteString(st.Label.Render("Period   ") + st.Value.Render(info.RealPeriod) + "\n")
	b.WriteString(st.Label.Render("Diameter ") + st.Value.Render(info.RealDiameter) + "\n")
	b.WriteString(st.InfoFact.Width(panelWidth - 8).Render(info.Fact))
	return st.InfoCard.Render(b.String())
}

func (m model) viewError() string {
	st := viz.NewStyles(viz.ThemeDark)
	msg := fmt.Sprintf("Failed to load the solar system.\n\n%v\n\npress q to quit", m.err)
	box := st.ErrorBox.Render(msg)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
