package analysis

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lorentz/internal/billiard"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

// Hit is one obstacle collision in Birkhoff coordinates: the polar angle
// of the contact point and the sine of the outgoing angle to the normal.
type Hit struct {
	T        float64
	Phi      float64
	SinAlpha float64
}

type CollisionMap struct {
	Hits       []Hit
	WallHits   int
	MaskedHits int
}

// GenerateCollisionMap runs l from x0 and records every obstacle collision.
// The hits recorded before a failing step are returned with the error.
func GenerateCollisionMap(
	ctx context.Context,
	l *physics.Lorentz,
	integ sim.Integrator,
	x0 sim.State,
	dt, duration float64,
	logger *log.Logger,
) (*CollisionMap, error) {
	cm := &CollisionMap{Hits: make([]Hit, 0)}

	l.OnCollision(func(ev billiard.Event, t float64) {
		if ev.X != billiard.SideNone {
			cm.WallHits++
		}
		if ev.Y != billiard.SideNone {
			cm.WallHits++
		}
		if !ev.Obstacle {
			return
		}
		if ev.Masked {
			cm.MaskedHits++
		}
		cm.Hits = append(cm.Hits, birkhoff(ev, t))
	})
	defer l.OnCollision(nil)

	s := sim.New(l, integ)
	if logger != nil {
		s.SetLogger(logger)
	}
	err := s.RunWithCallback(ctx, x0, sim.Config{Dt: dt, Duration: duration, ValidateState: true},
		func(sim.State, float64) bool { return true })
	return cm, err
}

func birkhoff(ev billiard.Event, t float64) Hit {
	r := math.Hypot(ev.ContactX, ev.ContactY)
	speed := math.Hypot(ev.VX, ev.VY)
	h := Hit{T: t, Phi: math.Atan2(ev.ContactY, ev.ContactX)}
	if r > 0 && speed > 0 {
		nx, ny := ev.ContactX/r, ev.ContactY/r
		h.SinAlpha = (nx*ev.VY - ny*ev.VX) / speed
	}
	return h
}

// ToASCII plots the hits with φ on the horizontal axis.
func (cm *CollisionMap) ToASCII(width, height int) string {
	if len(cm.Hits) == 0 {
		return "no obstacle collisions"
	}
	points := make([]Point, len(cm.Hits))
	for i, h := range cm.Hits {
		points[i] = Point{h.Phi, h.SinAlpha}
	}
	return PointsToASCII(points, width, height)
}
