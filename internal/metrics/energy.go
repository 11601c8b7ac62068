package metrics

import (
	"math"

	"github.com/san-kum/lorentz/internal/sim"
)

// EnergyDrift tracks the largest relative deviation of the system energy
// from its first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           sim.Hamiltonian
}

func NewEnergyDrift(dyn sim.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x sim.State, t float64) {
	energy := e.dyn.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// SpeedDrift is EnergyDrift for the particle speed |v| of [x, y, vx, vy].
type SpeedDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewSpeedDrift() *SpeedDrift { return &SpeedDrift{} }

func (s *SpeedDrift) Name() string { return "speed_drift" }

func (s *SpeedDrift) Observe(x sim.State, t float64) {
	if len(x) < 4 {
		return
	}
	speed := math.Hypot(x[2], x[3])
	if s.samples == 0 {
		s.initial = speed
	}
	s.samples++
	if s.initial != 0 {
		s.maxDrift = math.Max(s.maxDrift, math.Abs(speed-s.initial)/s.initial)
	}
}

func (s *SpeedDrift) Value() float64 { return s.maxDrift }

func (s *SpeedDrift) Reset() {
	s.initial = 0
	s.maxDrift = 0
	s.samples = 0
}
