package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/sim"
)

type Config struct {
	Model      string
	Integrator string
	Geometry   billiard.Geometry
	InitState  []float64
	Dt         float64
	Duration   float64
	Seed       int64
	// Random replaces InitState with a seeded random state of the given speed.
	Random bool
	Speed  float64
}

// RandomStater is implemented by models that can draw initial states.
type RandomStater interface {
	RandomState(rng *rand.Rand, speed float64) sim.State
}

type Experiment struct {
	cfg        Config
	simulator  *sim.Simulator
	dyn        sim.System
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) Setup(dyn sim.System, integrator sim.Integrator, metrics []sim.Metric, logger *log.Logger) error {
	e.dyn = dyn
	e.simulator = sim.New(dyn, integrator)
	if logger != nil {
		e.simulator.SetLogger(logger)
	}
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// InitialState is the state the run starts from.
func (e *Experiment) InitialState() (sim.State, error) {
	if e.cfg.Random {
		rs, ok := e.dyn.(RandomStater)
		if !ok {
			return nil, fmt.Errorf("model %s cannot draw random states", e.cfg.Model)
		}
		speed := e.cfg.Speed
		if speed == 0 {
			speed = 1
		}
		return rs.RandomState(e.randSource, speed), nil
	}

	x0 := make(sim.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)
	return x0, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0, err := e.InitialState()
	if err != nil {
		return nil, err
	}

	simCfg := sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Seed:          e.cfg.Seed,
		ValidateState: true,
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
