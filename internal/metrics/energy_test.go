package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/sim"
)

type kinetic struct{}

func (kinetic) Energy(x sim.State) float64 { return 0.5 * (x[2]*x[2] + x[3]*x[3]) }

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(kinetic{})

	m.Observe(sim.State{0, 0, 1, 0}, 0)
	m.Observe(sim.State{0, 0, 0, 1}, 1)
	if m.Value() != 0 {
		t.Errorf("expected no drift for a rotated velocity, got %f", m.Value())
	}

	m.Observe(sim.State{0, 0, 2, 0}, 2)
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected drift 3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestSpeedDrift(t *testing.T) {
	m := NewSpeedDrift()

	m.Observe(sim.State{0, 0, 3, 4}, 0)
	m.Observe(sim.State{0, 0, -4, 3}, 1)
	if m.Value() > 1e-15 {
		t.Errorf("expected no drift, got %e", m.Value())
	}

	m.Observe(sim.State{0, 0, 6, 8}, 2)
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %f", m.Value())
	}
}

func TestContainment(t *testing.T) {
	m := NewContainment(billiard.DefaultGeometry(), 1e-9)

	if m.Value() != 1 {
		t.Error("expected full containment with no samples")
	}

	m.Observe(sim.State{2, 2, 0, 0}, 0)
	m.Observe(sim.State{0.1, 0.1, 0, 0}, 0)
	m.Observe(sim.State{3.5, 0, 0, 0}, 0)
	m.Observe(sim.State{-3, 3, 0, 0}, 0)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected containment 0.5, got %f", m.Value())
	}
}

func TestBounces(t *testing.T) {
	m := NewBounces()

	states := []sim.State{
		{0, 0, 1, 0},
		{0.1, 0, 1, 0},
		{0.2, 0, -1, 0},
		{0.1, 0, -1, 0},
		{0.0, 0, -1, 0.5},
	}
	for i, s := range states {
		m.Observe(s, float64(i))
	}

	if m.Value() != 2 {
		t.Errorf("expected 2 bounces, got %f", m.Value())
	}

	m.Reset()
	m.Observe(sim.State{0, 0, 5, 5}, 0)
	if m.Value() != 0 {
		t.Error("first observation after reset should not count")
	}
}
