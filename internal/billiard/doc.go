// Package billiard resolves collisions of a point particle on a Lorentz-gas
// table: an axis-aligned rectangle with one circular scatterer at the origin.
//
// The engine does not move the particle. Callers advance it by free flight
// and then call [ResolveStep], which:
//
//   - backtracks at most one crossing of a vertical wall (x = MinX or MaxX)
//   - backtracks at most one crossing of a horizontal wall, using the point
//     already corrected by the previous stage
//   - resolves at most one penetration of the obstacle
//
// Each correction snaps the particle onto the boundary and reflects its
// velocity specularly. A trajectory that would cross two boundaries within
// one raw step needs more than one call.
//
// # Example
//
//	g := billiard.DefaultGeometry()
//	p := billiard.Particle{X: 3.2, Y: 0, VX: 1, VY: 0}
//	ev, err := billiard.ResolveStep(&p, g)
//	// p == {3, 0, -1, 0}, ev.X == billiard.SideMax
//
// # Thread Safety
//
// [Geometry] is a value type and can be shared. A [Particle] must not be
// resolved from two goroutines at once.
package billiard
