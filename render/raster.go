package render

import (
	"github.com/adammck/critter"
)

// Rasterize calls plot for every cell of the viewport which any of the lines
// pass through. Cells outside of the viewport are skipped. A cell may be
// plotted more than once.
func Rasterize(lines []critter.Line, v *Viewport, plot func(x, y int)) {
	m := v.ToCell()

	for _, l := range lines {
		a := l.From.MultiplyByMatrix33(m)
		b := l.To.MultiplyByMatrix33(m)

		// Both ends off the same side of the grid; nothing to draw.
		if (a.X < 0 && b.X < 0) || (a.Y < 0 && b.Y < 0) ||
			(a.X >= float64(v.Width) && b.X >= float64(v.Width)) ||
			(a.Y >= float64(v.Height) && b.Y >= float64(v.Height)) {
			continue
		}

		x0, y0 := v.Cell(l.From)
		x1, y1 := v.Cell(l.To)
		bresenham(x0, y0, x1, y1, func(x, y int) {
			if v.Contains(x, y) {
				plot(x, y)
			}
		})
	}
}

// bresenham calls plot for each cell on the line from (x0, y0) to (x1, y1),
// inclusive of both ends.
func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}

	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
