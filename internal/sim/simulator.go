package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
	logger     *log.Logger
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     log.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)           { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)       { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(logger *log.Logger) { s.logger = logger }

// Run integrates x0 for cfg.Duration. States are recorded after the
// constraint pass, so every stored state is a resolved one. A constraint
// failure stops the run and is returned as a *SimulationError together
// with the states recorded so far.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)
	s.logger.Debug("simulation started", "steps", steps, "dt", dt, "energy", initialEnergy)

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result, initialEnergy, x)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		newX, err := s.step(x, t, dt)
		if err != nil {
			runErr = &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			result.Errors = append(result.Errors, runErr)
			s.logger.Warn("step failed", "step", i, "t", t, "err", err)
			break
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			s.logger.Warn("invalid state", "step", i, "t", t)
			break
		}

		x = newX
		t += dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	s.collect(result, initialEnergy, x)
	s.logger.Debug("simulation finished", "steps", result.StepsTaken, "energy_drift", result.EnergyDrift)
	return result, runErr
}

func (s *Simulator) step(x State, t, dt float64) (State, error) {
	newX := s.integrator.Step(s.dyn, x, t, dt)
	if c, ok := s.dyn.(Constrained); ok {
		resolved, err := c.Constrain(newX, t+dt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstraint, err)
		}
		newX = resolved
	}
	return newX, nil
}

func (s *Simulator) collect(result *Result, initialEnergy float64, x State) {
	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if dim := s.dyn.StateDim(); dim > 0 && len(x0) != dim {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dim, len(x0))
	}
	if !x0.IsValid() {
		return ErrInvalidState
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if h, ok := s.dyn.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// RunWithCallback steps until the duration elapses or callback returns
// false. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		newX, err := s.step(x, t, dt)
		if err != nil {
			return &SimulationError{Step: int(t / dt), Time: t, State: x.Clone(), Wrapped: err}
		}
		x = newX
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
	}

	return nil
}
