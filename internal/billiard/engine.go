package billiard

import "math"

// Particle is the mutable state resolved in place by ResolveStep.
type Particle struct {
	X, Y   float64
	VX, VY float64
}

func (p Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

// Side identifies which wall of an axis was crossed.
type Side int

const (
	SideNone Side = iota
	SideMin
	SideMax
)

func (s Side) String() string {
	switch s {
	case SideMin:
		return "min"
	case SideMax:
		return "max"
	default:
		return "none"
	}
}

// Event describes the corrections applied by one ResolveStep call.
type Event struct {
	X, Y     Side
	Obstacle bool
	// Contact is the point on the obstacle, set when Obstacle is true.
	ContactX, ContactY float64
	// Masked reports that the obstacle intersection used a negative
	// discriminant's absolute value.
	Masked bool
	// VX, VY is the velocity after all corrections.
	VX, VY float64
}

// Collided reports whether any boundary was hit.
func (e Event) Collided() bool {
	return e.X != SideNone || e.Y != SideNone || e.Obstacle
}

// Bounces returns the number of reflections applied.
func (e Event) Bounces() int {
	n := 0
	if e.X != SideNone {
		n++
	}
	if e.Y != SideNone {
		n++
	}
	if e.Obstacle {
		n++
	}
	return n
}

// ResolveStep corrects a particle that has overshot the table boundary or
// entered the obstacle. On error p is left unchanged.
func ResolveStep(p *Particle, g Geometry) (Event, error) {
	q := *p
	var ev Event

	switch {
	case q.X < g.MinX:
		if err := reflectVertical(&q, g, g.MinX, "minx"); err != nil {
			return Event{}, err
		}
		ev.X = SideMin
	case q.X > g.MaxX:
		if err := reflectVertical(&q, g, g.MaxX, "maxx"); err != nil {
			return Event{}, err
		}
		ev.X = SideMax
	}

	switch {
	case q.Y < g.MinY:
		if err := reflectHorizontal(&q, g, g.MinY, "miny"); err != nil {
			return Event{}, err
		}
		ev.Y = SideMin
	case q.Y > g.MaxY:
		if err := reflectHorizontal(&q, g, g.MaxY, "maxy"); err != nil {
			return Event{}, err
		}
		ev.Y = SideMax
	}

	if g.Inside(q.X, q.Y) {
		masked, err := reflectObstacle(&q, g.Radius)
		if err != nil {
			return Event{}, err
		}
		ev.Obstacle = true
		ev.Masked = masked
		ev.ContactX, ev.ContactY = q.X, q.Y
	}

	ev.VX, ev.VY = q.VX, q.VY
	*p = q
	return ev, nil
}

// reflectVertical backtracks to the wall x = wall along the line through
// the current point with direction (vx, vy).
func reflectVertical(p *Particle, g Geometry, wall float64, name string) error {
	y := p.Y
	switch {
	case p.VX == 0:
		return &DirectionError{Boundary: name, VX: p.VX, VY: p.VY}
	case p.VY != 0:
		x0, y0, slope := p.X, p.Y, p.VX/p.VY
		f := func(y float64) float64 { return slope*(y-y0) + x0 - wall }
		root, err := bracketRoot(f, g.MinY-BracketMargin, g.MaxY+BracketMargin, name)
		if err != nil {
			return err
		}
		y = root
	}

	p.X = wall
	p.Y = y
	p.VX = -p.VX
	return nil
}

// reflectHorizontal is reflectVertical with the axes swapped.
func reflectHorizontal(p *Particle, g Geometry, wall float64, name string) error {
	x := p.X
	switch {
	case p.VY == 0:
		return &DirectionError{Boundary: name, VX: p.VX, VY: p.VY}
	case p.VX != 0:
		x0, y0, slope := p.X, p.Y, p.VY/p.VX
		f := func(x float64) float64 { return slope*(x-x0) + y0 - wall }
		root, err := bracketRoot(f, g.MinX-BracketMargin, g.MaxX+BracketMargin, name)
		if err != nil {
			return err
		}
		x = root
	}

	p.X = x
	p.Y = wall
	p.VY = -p.VY
	return nil
}

func bracketRoot(f func(float64) float64, lo, hi float64, name string) (float64, error) {
	root, err := brent(f, lo, hi)
	if err != nil {
		return 0, &BracketError{Boundary: name, Lo: lo, Hi: hi, FLo: f(lo), FHi: f(hi)}
	}
	return root, nil
}

// reflectObstacle moves p onto the circle along its line of motion and
// mirrors the velocity about the contact normal.
func reflectObstacle(p *Particle, radius float64) (bool, error) {
	if p.VX == 0 && p.VY == 0 {
		return false, &DirectionError{Boundary: "obstacle", VX: p.VX, VY: p.VY}
	}

	var masked bool
	if math.Abs(p.VY) <= math.Abs(p.VX) {
		// y = m·x + b0, solve for x
		m := p.VY / p.VX
		b0 := m*-p.X + p.Y
		a, b, c := m*m+1, 2*m*b0, b0*b0-radius*radius

		center, half, mk := quadraticRoots(a, b, c)
		x := nearerRoot(p.X, center, half)
		p.X = x
		p.Y = m*x + b0
		masked = mk
	} else {
		// x = m·y + b0, solve for y
		m := p.VX / p.VY
		b0 := m*-p.Y + p.X
		a, b, c := m*m+1, 2*m*b0, b0*b0-radius*radius

		center, half, mk := quadraticRoots(a, b, c)
		y := nearerRoot(p.Y, center, half)
		p.X = m*y + b0
		p.Y = y
		masked = mk
	}

	n := math.Hypot(p.X, p.Y)
	dot := (p.VX*p.X + p.VY*p.Y) / (n * n)
	p.VX -= 2 * dot * p.X
	p.VY -= 2 * dot * p.Y
	return masked, nil
}
