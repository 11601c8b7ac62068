package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/lorentz/internal/sim"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Derive(x sim.State, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (h *harmonicOscillator) StateDim() int { return 2 }

// freeFlight is a particle in the plane with no forces: [x, y, vx, vy].
type freeFlight struct{}

func (f *freeFlight) Derive(x sim.State, t float64) sim.State {
	return sim.State{x[2], x[3], 0, 0}
}

func (f *freeFlight) StateDim() int { return 4 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := sim.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestFreeFlightExact(t *testing.T) {
	tests := []struct {
		name  string
		integ sim.Integrator
	}{
		{"euler", NewEuler()},
		{"rk4", NewRK4()},
		{"verlet", NewVerlet()},
		{"leapfrog", NewLeapfrog()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := sim.State{0.5, -1.0, 0.3, 0.4}
			dt := 0.01
			for i := 0; i < 100; i++ {
				x = tt.integ.Step(&freeFlight{}, x, float64(i)*dt, dt)
			}

			if math.Abs(x[0]-0.8) > 1e-9 || math.Abs(x[1]+0.6) > 1e-9 {
				t.Errorf("position drifted: got (%.12f, %.12f)", x[0], x[1])
			}
			if x[2] != 0.3 || x[3] != 0.4 {
				t.Errorf("velocity changed: got (%v, %v)", x[2], x[3])
			}
		})
	}
}

func TestVerletEnergy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewVerlet()

	x := sim.State{1.0, 0.0}
	dt := 0.01
	for i := 0; i < 10000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if math.Abs(energy-0.5) > 1e-3 {
		t.Errorf("verlet energy drift too high: %f", energy)
	}
}
