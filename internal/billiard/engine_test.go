package billiard

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const tol = 1e-9

func speed2(p Particle) float64 { return p.VX*p.VX + p.VY*p.VY }

var _ = Describe("ResolveStep", func() {
	var g Geometry

	BeforeEach(func() {
		g = DefaultGeometry()
	})

	Context("rectangle walls", func() {
		It("snaps a particle past maxx moving along the axis", func() {
			p := Particle{X: 3.2, Y: 0, VX: 1, VY: 0}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(Particle{X: 3, Y: 0, VX: -1, VY: 0}))
			Expect(ev.X).To(Equal(SideMax))
			Expect(ev.Y).To(Equal(SideNone))
			Expect(ev.Obstacle).To(BeFalse())
		})

		It("backtracks along the incoming line at minx", func() {
			p := Particle{X: -3.2, Y: 0.5, VX: -1, VY: 0.5}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.X).To(Equal(SideMin))
			Expect(p.X).To(Equal(-3.0))
			Expect(p.Y).To(BeNumerically("~", 0.4, tol))
			Expect(p.VX).To(BeNumerically(">", 0))
			Expect(p.VY).To(Equal(0.5))
		})

		It("backtracks along the incoming line at maxy", func() {
			p := Particle{X: 1, Y: 3.3, VX: 0.5, VY: 1}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Y).To(Equal(SideMax))
			Expect(p.X).To(BeNumerically("~", 0.85, tol))
			Expect(p.Y).To(Equal(3.0))
			Expect(p.VX).To(Equal(0.5))
			Expect(p.VY).To(Equal(-1.0))
		})

		It("snaps a particle below miny moving vertically", func() {
			p := Particle{X: -1.5, Y: -3.01, VX: 0, VY: -2}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Y).To(Equal(SideMin))
			Expect(p).To(Equal(Particle{X: -1.5, Y: -3, VX: 0, VY: 2}))
		})

		It("corrects y using the point already corrected in x", func() {
			p := Particle{X: 3.1, Y: 3.3, VX: 1, VY: 2}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.X).To(Equal(SideMax))
			Expect(ev.Y).To(Equal(SideMax))
			Expect(ev.Bounces()).To(Equal(2))
			Expect(p.X).To(BeNumerically("~", 3.05, tol))
			Expect(p.Y).To(Equal(3.0))
			Expect(p.VX).To(Equal(-1.0))
			Expect(p.VY).To(Equal(-2.0))
		})

		It("preserves speed across a wall reflection", func() {
			p := Particle{X: -3.05, Y: -1, VX: -0.8, VY: 0.6}
			before := speed2(p)
			_, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(speed2(p)).To(BeNumerically("~", before, tol))
		})
	})

	Context("obstacle", func() {
		It("moves a shallow-slope particle onto the circle", func() {
			p := Particle{X: 0.5, Y: 0.5, VX: 1, VY: 1}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Obstacle).To(BeTrue())
			Expect(ev.Masked).To(BeFalse())
			Expect(p.X).To(BeNumerically("~", math.Sqrt2/2, tol))
			Expect(p.Y).To(BeNumerically("~", math.Sqrt2/2, tol))
			Expect(math.Hypot(p.X, p.Y)).To(BeNumerically("~", 1, tol))
			Expect(speed2(p)).To(BeNumerically("~", 2, tol))
			Expect(p.VX).To(BeNumerically("~", -1, tol))
			Expect(p.VY).To(BeNumerically("~", -1, tol))
			Expect(ev.ContactX).To(Equal(p.X))
			Expect(ev.ContactY).To(Equal(p.Y))
		})

		It("uses the y parametrization for steep motion", func() {
			start := Particle{X: 0.1, Y: 0.5, VX: 0.5, VY: 2}
			p := start
			_, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(math.Hypot(p.X, p.Y)).To(BeNumerically("~", 1, tol))
			Expect(p.Y).To(BeNumerically(">", 0))
			// contact point stays on the incoming line
			Expect((p.X - start.X) * start.VY).To(BeNumerically("~", (p.Y-start.Y)*start.VX, tol))
			Expect(speed2(p)).To(BeNumerically("~", speed2(start), tol))
		})

		It("handles motion along the y axis", func() {
			p := Particle{X: 0, Y: 0.5, VX: 0, VY: 1}
			_, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 0, tol))
			Expect(p.Y).To(BeNumerically("~", 1, tol))
			Expect(p.VX).To(BeNumerically("~", 0, tol))
			Expect(p.VY).To(BeNumerically("~", -1, tol))
		})

		It("honors a non-default radius", func() {
			g.Radius = 1.5
			p := Particle{X: -1.4, Y: 0, VX: 1, VY: 0}
			_, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", -1.5, tol))
			Expect(p.VX).To(BeNumerically("~", -1, tol))
		})

		It("leaves particles outside the obstacle alone", func() {
			p := Particle{X: 2, Y: 2, VX: 1, VY: 1}
			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Collided()).To(BeFalse())
			Expect(p).To(Equal(Particle{X: 2, Y: 2, VX: 1, VY: 1}))
		})

		It("masks the discriminant when underflow rounds it negative", func() {
			// At this scale the squared terms are a few subnormal units and
			// b²-4ac comes out at -2 units.
			s := math.Ldexp(1, -537)
			b0 := math.Sqrt(1.6) * s
			g.Radius = math.Sqrt(0.9) * s
			p := Particle{X: -b0 / 2, Y: b0 / 2, VX: 1, VY: 1}
			Expect(g.Inside(p.X, p.Y)).To(BeTrue())

			ev, err := ResolveStep(&p, g)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Obstacle).To(BeTrue())
			Expect(ev.Masked).To(BeTrue())
			Expect(math.IsNaN(p.VX) || math.IsInf(p.VX, 0)).To(BeFalse())
			Expect(math.IsNaN(p.VY) || math.IsInf(p.VY, 0)).To(BeFalse())
		})
	})

	Context("failures", func() {
		It("rejects motion parallel to the crossed wall", func() {
			p := Particle{X: -3.5, Y: 0, VX: 0, VY: 1}
			_, err := ResolveStep(&p, g)

			Expect(err).To(MatchError(ErrDegenerateDirection))
			var de *DirectionError
			Expect(err).To(BeAssignableToTypeOf(de))
			Expect(p).To(Equal(Particle{X: -3.5, Y: 0, VX: 0, VY: 1}))
		})

		It("reports a missing root in the bracket", func() {
			p := Particle{X: 3.5, Y: 0, VX: 1, VY: 10}
			_, err := ResolveStep(&p, g)

			Expect(err).To(MatchError(ErrNoRootInBracket))
			be, ok := err.(*BracketError)
			Expect(ok).To(BeTrue())
			Expect(be.Boundary).To(Equal("maxx"))
			Expect(be.Lo).To(BeNumerically("~", -3.1, tol))
			Expect(be.Hi).To(BeNumerically("~", 3.1, tol))
			Expect(p).To(Equal(Particle{X: 3.5, Y: 0, VX: 1, VY: 10}))
		})

		It("does not commit the x correction when y fails", func() {
			p := Particle{X: 3.05, Y: 3.5, VX: 1, VY: 0}
			_, err := ResolveStep(&p, g)

			Expect(err).To(MatchError(ErrDegenerateDirection))
			Expect(p).To(Equal(Particle{X: 3.05, Y: 3.5, VX: 1, VY: 0}))
		})

		It("rejects a resting particle inside the obstacle", func() {
			p := Particle{X: 0.2, Y: 0.2}
			_, err := ResolveStep(&p, g)

			Expect(err).To(MatchError(ErrDegenerateDirection))
		})
	})

	Context("random free flight", func() {
		It("keeps particles on the table and preserves speed", func() {
			rng := rand.New(rand.NewSource(7))
			const dt = 0.05

			for i := 0; i < 2000; i++ {
				x := g.MinX + rng.Float64()*g.Length()
				y := g.MinY + rng.Float64()*g.Height()
				if g.Inside(x, y) {
					continue
				}
				// two walls within one step need two calls
				if math.Abs(x) > 2.95 && math.Abs(y) > 2.95 {
					continue
				}
				angle := rng.Float64() * 2 * math.Pi
				vx, vy := math.Cos(angle), math.Sin(angle)
				if vx == 0 || vy == 0 {
					continue
				}

				p := Particle{X: x + vx*dt, Y: y + vy*dt, VX: vx, VY: vy}
				_, err := ResolveStep(&p, g)

				Expect(err).NotTo(HaveOccurred())
				Expect(g.Contains(p.X, p.Y, tol)).To(BeTrue(), "particle %+v left the table", p)
				Expect(speed2(p)).To(BeNumerically("~", 1, tol))
			}
		})
	})
})

var _ = Describe("root selection", func() {
	DescribeTable("nearerRoot",
		func(cur, center, half, want float64) {
			Expect(nearerRoot(cur, center, half)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("above center", 0.9, 0.0, 1.0, 1.0),
		Entry("below center", -0.9, 0.0, 1.0, -1.0),
		Entry("straddled, nearer upper", 0.3, 0.2, 0.5, 0.7),
		Entry("straddled, nearer lower", 0.1, 0.2, 0.5, -0.3),
		Entry("tie goes to lower", 0.0, 0.0, 1.0, -1.0),
	)

	It("masks a negative discriminant", func() {
		sq, masked := maskedDiscriminantSqrt(1, 0, 1)
		Expect(sq).To(Equal(2.0))
		Expect(masked).To(BeTrue())

		sq, masked = maskedDiscriminantSqrt(1, 0, -1)
		Expect(sq).To(Equal(2.0))
		Expect(masked).To(BeFalse())
	})
})
