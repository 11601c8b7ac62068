package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 300
	trailCapacity   = 400
	maxStepsPerTick = 64
	radiusStep      = 0.1
)

type TickMsg time.Time

type pixel struct{ x, y int }

// Model animates one particle on the table.
type Model struct {
	table        *physics.Lorentz
	params       sim.Configurable
	integrator   sim.Integrator
	state        sim.State
	initialState sim.State
	t, dt        float64
	fps          int
	stepsPerTick int
	canvas       *Canvas
	view         Viewport
	trail        []pixel
	showTrail    bool
	running      bool
	baseBounces  int
	baseRadius   float64
	notice       string
	xHistory     []float64
	yHistory     []float64
	err          error
	theme        Theme
	styles       styles
}

func NewModel(table *physics.Lorentz, integ sim.Integrator, initState sim.State, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	canvas := NewCanvas(width, height)
	return Model{
		table:        table,
		params:       table,
		integrator:   integ,
		state:        initState.Clone(),
		initialState: initState.Clone(),
		dt:           dt,
		fps:          fps,
		stepsPerTick: 1,
		canvas:       canvas,
		view:         NewViewport(canvas, table.Geometry()),
		trail:        make([]pixel, 0, trailCapacity),
		showTrail:    true,
		running:      true,
		baseBounces:  table.Bounces(),
		baseRadius:   table.Geometry().Radius,
		xHistory:     make([]float64, 0, historyCapacity),
		yHistory:     make([]float64, 0, historyCapacity),
		theme:        ThemeTerminal,
		styles:       newStyles(ThemeTerminal),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "n":
			if !m.running && m.err == nil {
				m.step()
			}
		case "+", "=":
			if m.stepsPerTick < maxStepsPerTick {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "c":
			m.showTrail = !m.showTrail
			m.trail = m.trail[:0]
		case "[":
			m.adjustRadius(-radiusStep)
		case "]":
			m.adjustRadius(radiusStep)
		case "t":
			m.theme = m.theme.next()
			m.styles = newStyles(m.theme)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick && m.err == nil; i++ {
				m.step()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances free flight by one dt and resolves collisions. A failed
// collision freezes the view on the last good state.
func (m *Model) step() {
	next := m.integrator.Step(m.table, m.state, m.t, m.dt)
	next, err := m.table.Constrain(next, m.t+m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = next
	m.t += m.dt

	m.xHistory = appendCapped(m.xHistory, m.state[0], historyCapacity)
	m.yHistory = appendCapped(m.yHistory, m.state[1], historyCapacity)

	if m.showTrail {
		px, py := m.view.Project(m.state[0], m.state[1])
		m.trail = append(m.trail, pixel{px, py})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
}

func appendCapped(xs []float64, v float64, limit int) []float64 {
	xs = append(xs, v)
	if len(xs) > limit {
		xs = xs[1:]
	}
	return xs
}

// adjustRadius resizes the scatterer. Sizes that do not fit the table are
// rejected and reported in the status panel.
func (m *Model) adjustRadius(delta float64) {
	r := m.params.GetParams()["radius"] + delta
	if err := m.params.SetParam("radius", r); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""
	m.trail = m.trail[:0]
	m.view = NewViewport(m.canvas, m.table.Geometry())
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.trail = m.trail[:0]
	m.xHistory = m.xHistory[:0]
	m.yHistory = m.yHistory[:0]
	m.baseBounces = m.table.Bounces()
	m.notice = ""
	if m.table.Geometry().Radius != m.baseRadius {
		if err := m.params.SetParam("radius", m.baseRadius); err != nil {
			m.notice = err.Error()
		}
	}
	m.view = NewViewport(m.canvas, m.table.Geometry())
	m.err = nil
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawTable(m.view)
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
	px, py := m.view.Project(m.state[0], m.state[1])
	m.canvas.DrawDot(px, py)
}

func (m Model) View() string {
	m.draw()
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render("LORENTZ GAS") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(st.failed.Render("STOPPED") + "\n")
		s.WriteString(st.failed.Render(wrap(m.err.Error(), 38)) + "\n\n")
	case m.running:
		s.WriteString(st.running.Render(fmt.Sprintf("RUNNING x%d", m.stepsPerTick)) + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.xHistory) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.xHistory, m.yHistory},
			asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("x, y"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	speed := math.Hypot(m.state[2], m.state[3])
	rows := []struct {
		label, value string
	}{
		{"Time", fmt.Sprintf("%.2f", m.t)},
		{"Position", fmt.Sprintf("(%.3f, %.3f)", m.state[0], m.state[1])},
		{"Velocity", fmt.Sprintf("(%.3f, %.3f)", m.state[2], m.state[3])},
		{"Speed", fmt.Sprintf("%.6f", speed)},
		{"Bounces", fmt.Sprintf("%d", m.table.Bounces()-m.baseBounces)},
		{"Radius", fmt.Sprintf("%.2f", m.params.GetParams()["radius"])},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(st.label.Render(r.label) + st.value.Render(r.value) + "\n")
	}

	if m.notice != "" {
		s.WriteString(st.paused.Render(wrap(m.notice, 38)) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause N:Step R:Reset Q:Quit\n+/-:Speed [/]:Radius C:Trail T:Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

func wrap(s string, n int) string {
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+len(word)+1 > n {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
