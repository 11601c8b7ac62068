// Package analysis provides chaos and dynamics analysis tools.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [GeneratePhasePortrait]: 2D projections of a trajectory
//   - [GenerateCollisionMap]: Birkhoff coordinates of obstacle collisions
//
// Constrained systems ([sim.Constrained]) are corrected after every step,
// so billiard flows can be analyzed directly.
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(dyn, integ, x0, dt, duration, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
