package billiard

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateDirection indicates a velocity component needed to
	// backtrack the particle is zero.
	ErrDegenerateDirection = errors.New("billiard: degenerate direction")

	// ErrNoRootInBracket indicates the backtracked line does not cross the
	// wall inside the widened bracket.
	ErrNoRootInBracket = errors.New("billiard: no root in bracket")

	// ErrInvalidGeometry indicates table bounds or radius out of range.
	ErrInvalidGeometry = errors.New("billiard: invalid geometry")
)

// DirectionError reports which boundary could not be resolved because the
// particle moves parallel to it.
type DirectionError struct {
	Boundary string
	VX, VY   float64
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("%s at %s (v=(%g, %g))", ErrDegenerateDirection, e.Boundary, e.VX, e.VY)
}

func (e *DirectionError) Unwrap() error { return ErrDegenerateDirection }

// BracketError reports the interval that failed to bracket a sign change.
type BracketError struct {
	Boundary string
	Lo, Hi   float64
	FLo, FHi float64
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%s at %s: f(%g)=%g, f(%g)=%g", ErrNoRootInBracket, e.Boundary, e.Lo, e.FLo, e.Hi, e.FHi)
}

func (e *BracketError) Unwrap() error { return ErrNoRootInBracket }
