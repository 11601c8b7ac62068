package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Ensemble runs one simulation per initial state concurrently. Each run
// gets fresh system, integrator and metric instances from the factories,
// so systems that keep per-run bookkeeping stay isolated.
type Ensemble struct {
	newSystem     func() System
	newIntegrator func() Integrator
	newMetrics    func() []Metric
	logger        *log.Logger
}

func NewEnsemble(newSystem func() System, newIntegrator func() Integrator, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{
		newSystem:     newSystem,
		newIntegrator: newIntegrator,
		newMetrics:    newMetrics,
		logger:        log.Default(),
	}
}

func (e *Ensemble) SetLogger(logger *log.Logger) { e.logger = logger }

// Run returns results in the order of x0s. Failed runs keep their partial
// result; the first error by index is returned.
func (e *Ensemble) Run(ctx context.Context, x0s []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(x0s))
	errs := make([]error, len(x0s))

	var wg sync.WaitGroup
	for i := range x0s {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = cfg.Seed + int64(idx)

			s := New(e.newSystem(), e.newIntegrator())
			s.SetLogger(e.logger.With("run", idx))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, x0s[idx], cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
