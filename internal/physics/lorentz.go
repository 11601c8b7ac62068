package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/sim"
)

// Lorentz is a free particle on a billiard table with a circular scatterer.
// State layout: [x, y, vx, vy].
type Lorentz struct {
	geom        billiard.Geometry
	onCollision func(ev billiard.Event, t float64)
	bounces     int
	masked      int
}

func NewLorentz(g billiard.Geometry) *Lorentz { return &Lorentz{geom: g} }

func (l *Lorentz) StateDim() int               { return 4 }
func (l *Lorentz) Geometry() billiard.Geometry { return l.geom }

// Derive is free flight between collisions.
func (l *Lorentz) Derive(s sim.State, _ float64) sim.State {
	return sim.State{s[2], s[3], 0, 0}
}

func (l *Lorentz) Energy(s sim.State) float64 {
	return 0.5 * (s[2]*s[2] + s[3]*s[3])
}

// Constrain resolves wall and obstacle collisions of an advanced state.
func (l *Lorentz) Constrain(s sim.State, t float64) (sim.State, error) {
	p := ParticleOf(s)
	ev, err := billiard.ResolveStep(&p, l.geom)
	if err != nil {
		return nil, err
	}
	if ev.Collided() {
		l.bounces += ev.Bounces()
		if ev.Masked {
			l.masked++
		}
		if l.onCollision != nil {
			l.onCollision(ev, t)
		}
	}
	return StateOf(p), nil
}

// Copy returns a table with the same geometry, no collision callback and
// zeroed counters.
func (l *Lorentz) Copy() sim.System { return NewLorentz(l.geom) }

// OnCollision registers fn to be called after every resolved collision.
func (l *Lorentz) OnCollision(fn func(ev billiard.Event, t float64)) { l.onCollision = fn }

// Bounces is the number of reflections resolved so far.
func (l *Lorentz) Bounces() int { return l.bounces }

// MaskedHits counts obstacle hits that relied on a masked discriminant.
func (l *Lorentz) MaskedHits() int { return l.masked }

// RandomState draws a position uniformly on the free part of the table and
// a uniformly distributed direction with the given speed.
func (l *Lorentz) RandomState(rng *rand.Rand, speed float64) sim.State {
	g := l.geom
	for {
		x := g.MinX + rng.Float64()*g.Length()
		y := g.MinY + rng.Float64()*g.Height()
		if g.Inside(x, y) {
			continue
		}
		angle := rng.Float64() * 2 * math.Pi
		return sim.State{x, y, speed * math.Cos(angle), speed * math.Sin(angle)}
	}
}

func (l *Lorentz) GetParams() map[string]float64 {
	return map[string]float64{
		"minx":   l.geom.MinX,
		"maxx":   l.geom.MaxX,
		"miny":   l.geom.MinY,
		"maxy":   l.geom.MaxY,
		"radius": l.geom.Radius,
	}
}

// SetParam changes one table dimension. The change is rejected if the
// resulting table is invalid.
func (l *Lorentz) SetParam(name string, value float64) error {
	g := l.geom
	switch name {
	case "minx":
		g.MinX = value
	case "maxx":
		g.MaxX = value
	case "miny":
		g.MinY = value
	case "maxy":
		g.MaxY = value
	case "radius":
		g.Radius = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	l.geom = g
	return nil
}

func ParticleOf(s sim.State) billiard.Particle {
	return billiard.Particle{X: s[0], Y: s[1], VX: s[2], VY: s[3]}
}

func StateOf(p billiard.Particle) sim.State {
	return sim.State{p.X, p.Y, p.VX, p.VY}
}
