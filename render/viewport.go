// Package render turns the state of a creature into something which can be
// drawn: lines of cells for a terminal, or a JSON frame for a browser.
package render

import (
	"fmt"
	"math"

	"github.com/adammck/critter/math2d"
)

const (

	// Terminal cells are roughly twice as tall as they are wide.
	DefaultAspect = 2.0
)

// Viewport maps the world space (Y up) onto a grid of cells (Y down), centered
// on a point in the world.
type Viewport struct {
	Width  int
	Height int

	// The world position at the middle of the grid.
	Center math2d.Vector2

	// World units per cell, horizontally.
	Scale float64

	// Height of a cell divided by its width.
	Aspect float64
}

func NewViewport(w, h int, scale float64) *Viewport {
	return &Viewport{
		Width:  w,
		Height: h,
		Scale:  scale,
		Aspect: DefaultAspect,
	}
}

func (v *Viewport) String() string {
	return fmt.Sprintf("&Viewport{%dx%d at %s, scale=%.2f}", v.Width, v.Height, v.Center, v.Scale)
}

// ToCell returns a matrix to transform a vector in the world space into the
// cell space. The (fractional) cell coordinates should be floored.
func (v *Viewport) ToCell() math2d.Matrix33 {
	origin := math2d.MakeMatrix33(v.Center.MultiplyByScalar(-1), 0)
	scale := math2d.MakeScaleMatrix33(1/v.Scale, -1/(v.Scale*v.Aspect))
	offset := math2d.MakeMatrix33(math2d.Vector2{X: float64(v.Width) / 2, Y: float64(v.Height) / 2}, 0)
	return *math2d.MultiplyMatrices(*math2d.MultiplyMatrices(*origin, *scale), *offset)
}

// ToWorld returns a matrix to transform a vector in the cell space back into
// the world space.
func (v *Viewport) ToWorld() math2d.Matrix33 {
	return v.ToCell().Inverse()
}

// Cell returns the cell containing the given world position. It may be
// outside of the grid.
func (v *Viewport) Cell(p math2d.Vector2) (int, int) {
	c := p.MultiplyByMatrix33(v.ToCell())
	return int(math.Floor(c.X)), int(math.Floor(c.Y))
}

// World returns the world position at the middle of the given cell.
func (v *Viewport) World(x, y int) math2d.Vector2 {
	c := math2d.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	return c.MultiplyByMatrix33(v.ToWorld())
}

// Contains returns true if the given cell is within the grid.
func (v *Viewport) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width && y < v.Height
}

// Follow recenters the viewport on p, if it has drifted further than margin
// (as a fraction of the half-width or half-height) from the center.
func (v *Viewport) Follow(p math2d.Vector2, margin float64) {
	hw := float64(v.Width) / 2 * v.Scale * margin
	hh := float64(v.Height) / 2 * v.Scale * v.Aspect * margin

	d := p.Subtract(v.Center)
	if math.Abs(d.X) > hw {
		v.Center.X = p.X - math.Copysign(hw, d.X)
	}

	if math.Abs(d.Y) > hh {
		v.Center.Y = p.Y - math.Copysign(hh, d.Y)
	}
}
