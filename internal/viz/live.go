package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/metrics"
	"github.com/san-kum/tixy/internal/render"
)

const (
	DefaultColumns  = 64
	historyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type TickMsg time.Time

// Model is the Bubble Tea view. It drives the renderer from its own tick
// instead of Renderer.Run so key handling and drawing share one goroutine.
type Model struct {
	renderer  *render.Renderer
	canvas    *Canvas
	name      string
	delay     time.Duration
	metrics   []metrics.Metric
	frameTime *metrics.FrameTime
	running   bool
	pausedAt  float64
	paused    float64 // total seconds spent paused
	t         float64
	showHelp  bool
	err       error
}

// NewModel builds a renderer on a Braille canvas cols columns wide.
func NewModel(name string, fn field.Func, cfg render.Config, cols int, opts ...render.Option) (*Model, error) {
	length := cfg.Grid.Length()
	canvas := NewCanvas(length, length, cols)

	m := &Model{
		canvas:  canvas,
		name:    name,
		delay:   cfg.Delay,
		metrics: metrics.Defaults(historyCapacity),
		running: true,
	}
	r, err := render.New(fn, cfg, canvas, opts...)
	if err != nil {
		return nil, err
	}
	for _, mt := range m.metrics {
		r.AddObserver(mt)
		if ft, ok := mt.(*metrics.FrameTime); ok {
			m.frameTime = ft
		}
	}
	m.renderer = r
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	d := m.delay
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.renderer.Reset()
	return m.tick()
}

// Update handles keys and renders a frame on every tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.t = m.renderer.Elapsed() - m.paused
			if err := m.renderer.Frame(m.t); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if limit := m.renderer.Config().Frames; limit > 0 && m.renderer.Frames() >= limit {
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) togglePause() {
	now := m.renderer.Elapsed()
	if m.running {
		m.pausedAt = now
	} else {
		m.paused += now - m.pausedAt
	}
	m.running = !m.running
}

func (m *Model) reset() {
	m.renderer.Reset()
	m.paused = 0
	m.pausedAt = 0
	m.t = 0
	for _, mt := range m.metrics {
		mt.Reset()
	}
}

// Err returns the field error that stopped the view, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Time() float64 { return m.t }

func (m *Model) Running() bool { return m.running }

func (m *Model) Canvas() *Canvas { return m.canvas }

// View renders the canvas beside a stats panel.
func (m *Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if hist := m.frameTime.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Frame ms"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	g := m.renderer.Config().Grid
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.renderer.Frames())) + "\n")
	for _, mt := range m.metrics {
		s.WriteString(labelStyle.Render(mt.Name()) + valueStyle.Render(metrics.Format(mt.Name(), mt.Value())) + "\n")
	}
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d r=%.0f gap=%.0f", g.Dim, g.Dim, g.MaxRadius, g.Gap)) + "\n")

	if m.err != nil {
		s.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  R        - Restart from t=0         ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run shows the live view until the user quits or the field fails.
func Run(name string, fn field.Func, cfg render.Config, cols int) error {
	m, err := NewModel(name, fn, cfg, cols)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.Err()
}
