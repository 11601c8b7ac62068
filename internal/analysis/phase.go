package analysis

import (
	"strings"

	"github.com/san-kum/lorentz/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// GeneratePhasePortrait runs a simulation and records the projection of the
// trajectory onto state variables xIdx and yIdx.
func GeneratePhasePortrait(
	dyn sim.System,
	integ sim.Integrator,
	x0 sim.State,
	xIdx, yIdx int,
	dt, duration float64,
) (*PhasePortrait2D, error) {
	if xIdx >= len(x0) || yIdx >= len(x0) {
		return nil, nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, int(duration/dt)+1),
	}

	x := x0.Clone()
	t := 0.0
	portrait.Points = append(portrait.Points, Point{x[xIdx], x[yIdx]})

	var err error
	for t < duration {
		if x, err = advance(dyn, integ, x, t, dt); err != nil {
			return portrait, err
		}
		t += dt
		portrait.Points = append(portrait.Points, Point{x[xIdx], x[yIdx]})
	}

	return portrait, nil
}

// PointsToASCII scatters points on a width×height character grid, drawing
// the axes where they cross the visible area.
func PointsToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil {
		return ""
	}
	return PointsToASCII(portrait.Points, width, height)
}
