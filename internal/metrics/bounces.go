package metrics

import "github.com/san-kum/lorentz/internal/sim"

// Bounces counts observations whose velocity differs from the previous
// one. Free flight keeps the velocity constant, so every change is a
// resolved collision step.
type Bounces struct {
	prevVX, prevVY float64
	seen           bool
	count          int
}

func NewBounces() *Bounces { return &Bounces{} }

func (b *Bounces) Name() string { return "bounces" }

func (b *Bounces) Observe(x sim.State, t float64) {
	if len(x) < 4 {
		return
	}
	vx, vy := x[2], x[3]
	if b.seen && (vx != b.prevVX || vy != b.prevVY) {
		b.count++
	}
	b.prevVX, b.prevVY = vx, vy
	b.seen = true
}

func (b *Bounces) Value() float64 { return float64(b.count) }

func (b *Bounces) Reset() {
	b.seen = false
	b.count = 0
}
