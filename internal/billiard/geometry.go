package billiard

import (
	"fmt"
	"math"
)

const (
	DefaultMinX   = -3.0
	DefaultMaxX   = 3.0
	DefaultMinY   = -3.0
	DefaultMaxY   = 3.0
	DefaultRadius = 1.0

	// BracketMargin widens the root-finding interval past each wall so a
	// particle that slightly overshot a corner still brackets a root.
	BracketMargin = 0.1
)

// Geometry is a rectangle [MinX,MaxX]×[MinY,MaxY] with a circular obstacle
// of the given radius centered at the origin.
type Geometry struct {
	MinX   float64 `json:"minx" yaml:"minx"`
	MaxX   float64 `json:"maxx" yaml:"maxx"`
	MinY   float64 `json:"miny" yaml:"miny"`
	MaxY   float64 `json:"maxy" yaml:"maxy"`
	Radius float64 `json:"radius" yaml:"radius"`
}

func DefaultGeometry() Geometry {
	return Geometry{
		MinX:   DefaultMinX,
		MaxX:   DefaultMaxX,
		MinY:   DefaultMinY,
		MaxY:   DefaultMaxY,
		Radius: DefaultRadius,
	}
}

func (g Geometry) Length() float64 { return math.Abs(g.MaxX - g.MinX) }
func (g Geometry) Height() float64 { return math.Abs(g.MaxY - g.MinY) }

// Validate reports whether the table is well formed. ResolveStep does not
// call it; results on an invalid table are unspecified.
func (g Geometry) Validate() error {
	switch {
	case !(g.MinX < g.MaxX):
		return fmt.Errorf("%w: minx %.4g must be below maxx %.4g", ErrInvalidGeometry, g.MinX, g.MaxX)
	case !(g.MinY < g.MaxY):
		return fmt.Errorf("%w: miny %.4g must be below maxy %.4g", ErrInvalidGeometry, g.MinY, g.MaxY)
	case !(g.Radius > 0):
		return fmt.Errorf("%w: radius %.4g must be positive", ErrInvalidGeometry, g.Radius)
	case g.Radius >= math.Min(g.Length(), g.Height())/2:
		return fmt.Errorf("%w: radius %.4g does not fit a %.4gx%.4g table", ErrInvalidGeometry, g.Radius, g.Length(), g.Height())
	case g.MinX >= -g.Radius || g.MaxX <= g.Radius || g.MinY >= -g.Radius || g.MaxY <= g.Radius:
		return fmt.Errorf("%w: obstacle at origin crosses the table boundary", ErrInvalidGeometry)
	}
	return nil
}

// Contains reports whether (x, y) lies in the closed rectangle and outside
// the open disk, within tol.
func (g Geometry) Contains(x, y, tol float64) bool {
	if x < g.MinX-tol || x > g.MaxX+tol || y < g.MinY-tol || y > g.MaxY+tol {
		return false
	}
	return math.Hypot(x, y) >= g.Radius-tol
}

// Inside reports whether (x, y) penetrates the obstacle.
func (g Geometry) Inside(x, y float64) bool {
	return math.Hypot(x, y) < g.Radius
}
