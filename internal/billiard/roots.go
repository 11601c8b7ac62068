package billiard

import (
	"errors"
	"math"
)

const (
	brentXTol    = 2e-12
	brentRTol    = 4 * 2.220446049250313e-16
	brentMaxIter = 100
)

var errNoSignChange = errors.New("no sign change")

// brent finds a zero of f in [a, b] using Brent's method. f(a) and f(b)
// must differ in sign (or one of them be zero).
func brent(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || math.Signbit(fa) == math.Signbit(fb) {
		return 0, errNoSignChange
	}

	c, fc := a, fa
	d := b - a
	e := d

	for i := 0; i < brentMaxIter; i++ {
		if math.Signbit(fb) == math.Signbit(fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*brentRTol*math.Abs(b) + 0.5*brentXTol
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// inverse quadratic interpolation, or secant when a == c
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * m * s
				q = 1 - s
			} else {
				qa := fa / fc
				r := fb / fc
				p = s * (2*m*qa*(qa-r) - (b-a)*(r-1))
				q = (qa - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = d
			}
		} else {
			d = m
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, m)
		}
		fb = f(b)
	}

	return b, nil
}

// maskedDiscriminantSqrt returns sqrt(|b²-4ac|). A negative discriminant
// means the line misses the circle, which can only happen through rounding
// after an inside test has passed; taking the absolute value keeps the
// nearest point instead of failing. The second result reports whether the
// mask was applied.
func maskedDiscriminantSqrt(a, b, c float64) (float64, bool) {
	disc := b*b - 4*a*c
	return math.Sqrt(math.Abs(disc)), disc < 0
}

// quadraticRoots returns the two candidate roots of a·t² + b·t + c = 0 using
// the masked discriminant: center ± half-width.
func quadraticRoots(a, b, c float64) (center, half float64, masked bool) {
	center = -b / (2 * a)
	sq, masked := maskedDiscriminantSqrt(a, b, c)
	half = sq / (2 * a)
	return center, half, masked
}

// nearerRoot picks center+half or center-half, whichever is closer to cur.
// Ties go to center-half.
func nearerRoot(cur, center, half float64) float64 {
	if math.Abs(cur-center-half) < math.Abs(cur-center+half) {
		return center + half
	}
	return center - half
}
