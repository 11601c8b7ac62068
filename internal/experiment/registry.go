package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/integrators"
	"github.com/san-kum/lorentz/internal/metrics"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

type Registry struct {
	models      map[string]func(billiard.Geometry) sim.System
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(billiard.Geometry) sim.System),
		integrators: make(map[string]func() sim.Integrator),
	}

	r.models["lorentz"] = func(g billiard.Geometry) sim.System { return physics.NewLorentz(g) }

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() sim.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() sim.Integrator { return integrators.NewLeapfrog() }

	return r
}

// GetModel builds the named model on g. The geometry is validated first.
func (r *Registry) GetModel(name string, g billiard.Geometry) (sim.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return fn(g), nil
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string { return sortedKeys(r.models) }

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }

func (r *Registry) DefaultMetrics(dyn sim.System, g billiard.Geometry) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewBounces(),
		metrics.NewSpeedDrift(),
		metrics.NewContainment(g, 1e-9),
	}
	if h, ok := dyn.(sim.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergyDrift(h))
	}
	return ms
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
