package metrics

import (
	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/sim"
)

// Containment is the fraction of observed states that lie on the table:
// inside the rectangle and outside the obstacle, within tol.
type Containment struct {
	name       string
	geom       billiard.Geometry
	tol        float64
	violations int
	samples    int
}

func NewContainment(g billiard.Geometry, tol float64) *Containment {
	return &Containment{
		name: "containment",
		geom: g,
		tol:  tol,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(x sim.State, t float64) {
	if len(x) < 2 {
		return
	}
	c.samples++
	if !c.geom.Contains(x[0], x[1], c.tol) {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
