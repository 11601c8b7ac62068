// Package physics provides dynamical system models for simulation.
//
// [Lorentz] implements [sim.System] as free flight of a point particle and
// [sim.Constrained] by delegating each step to [billiard.ResolveStep]:
//
//	dyn := physics.NewLorentz(billiard.DefaultGeometry())
//	s := sim.New(dyn, integrators.NewRK4())
//	result, err := s.Run(ctx, sim.State{2, 0.5, 1, 0.3}, cfg)
//
// It also implements [sim.Hamiltonian] (kinetic energy, conserved by
// specular reflection) and [sim.Configurable] for the table dimensions.
package physics
