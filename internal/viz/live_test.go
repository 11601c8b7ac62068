package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/integrators"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

func newTestModel(state sim.State) Model {
	table := physics.NewLorentz(billiard.DefaultGeometry())
	return NewModel(table, integrators.NewRK4(), state, 0.01, 30)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTick(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	for i := 0; i < 200; i++ {
		m = update(m, TickMsg{})
	}

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.t < 1.99 {
		t.Errorf("expected t ~ 2, got %f", m.t)
	}
	if m.table.Bounces() == 0 {
		t.Error("expected at least one bounce")
	}
	if !m.table.Geometry().Contains(m.state[0], m.state[1], 1e-9) {
		t.Errorf("particle left the table: %v", m.state)
	}
	if len(m.xHistory) != 200 {
		t.Errorf("expected 200 history points, got %d", len(m.xHistory))
	}
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.running {
		t.Fatal("expected paused")
	}

	m = update(m, TickMsg{})
	if m.t != 0 {
		t.Errorf("paused model advanced to t=%f", m.t)
	}

	m = update(m, key("n"))
	if m.t != 0.01 {
		t.Errorf("expected single step to t=0.01, got %f", m.t)
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	for i := 0; i < 150; i++ {
		m = update(m, TickMsg{})
	}
	m = update(m, key("r"))

	if m.t != 0 || m.state[0] != 2 || m.state[1] != 0.5 {
		t.Errorf("expected initial state after reset, got t=%f %v", m.t, m.state)
	}
	if len(m.trail) != 0 || len(m.xHistory) != 0 {
		t.Error("expected cleared trail and history")
	}
	if m.table.Bounces()-m.baseBounces != 0 {
		t.Error("expected bounce counter rebased")
	}
}

func TestModelSpeedKeys(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	m = update(m, key("+"))
	m = update(m, key("+"))
	if m.stepsPerTick != 4 {
		t.Errorf("expected 4 steps per tick, got %d", m.stepsPerTick)
	}
	m = update(m, key("-"))
	if m.stepsPerTick != 2 {
		t.Errorf("expected 2 steps per tick, got %d", m.stepsPerTick)
	}
}

func TestModelRadiusKeys(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	m = update(m, key("]"))
	if r := m.table.Geometry().Radius; r < 1.09 || r > 1.11 {
		t.Errorf("expected radius 1.1, got %f", r)
	}

	for i := 0; i < 30; i++ {
		m = update(m, key("]"))
	}
	if r := m.table.Geometry().Radius; r >= 3 {
		t.Errorf("radius grew past the table: %f", r)
	}
	if m.notice == "" {
		t.Error("expected a notice for the rejected radius")
	}

	m = update(m, key("r"))
	if r := m.table.Geometry().Radius; r != 1 {
		t.Errorf("expected reset radius 1, got %f", r)
	}
	if m.notice != "" {
		t.Error("expected notice cleared on reset")
	}
}

func TestModelRadiusRedraw(t *testing.T) {
	m := newTestModel(sim.State{2.5, 0.5, 1, 0.3})
	for i := 0; i < 5; i++ {
		m = update(m, key("]"))
	}
	r := m.table.Geometry().Radius
	m.draw()

	nx, ny := m.view.Project(r, 0)
	if !m.canvas.IsSet(nx, ny) {
		t.Errorf("expected resized obstacle edge (%d,%d) drawn", nx, ny)
	}
	ox, oy := m.view.Project(1, 0)
	if m.canvas.IsSet(ox, oy) {
		t.Errorf("stale obstacle edge (%d,%d) still drawn", ox, oy)
	}
}

func TestModelResetReportsRejectedRadius(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	for i := 0; i < 5; i++ {
		m = update(m, key("["))
	}
	// The original radius no longer fits once the right wall moves in.
	if err := m.table.SetParam("maxx", 0.8); err != nil {
		t.Fatalf("shrinking table: %v", err)
	}
	m = update(m, key("r"))

	if m.notice == "" {
		t.Error("expected a notice when the radius cannot be restored")
	}
	if r := m.table.Geometry().Radius; r >= 0.8 {
		t.Errorf("expected shrunken radius kept, got %f", r)
	}
}

func TestModelStopsOnError(t *testing.T) {
	// Outside the right wall moving parallel to it.
	m := newTestModel(sim.State{3.5, 0, 0, 1})
	m = update(m, TickMsg{})

	if m.err == nil {
		t.Fatal("expected a collision error")
	}
	if m.running {
		t.Error("expected the model to stop")
	}
	if !strings.Contains(m.View(), "STOPPED") {
		t.Error("expected the view to report the failure")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(sim.State{2, 0.5, 1, 0.3})
	for range Themes {
		m = update(m, key("t"))
	}
	if m.theme.Name != ThemeTerminal.Name {
		t.Errorf("expected cycle back to %s, got %s", ThemeTerminal.Name, m.theme.Name)
	}
	if GetTheme("missing").Name != ThemeTerminal.Name {
		t.Error("expected fallback theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
