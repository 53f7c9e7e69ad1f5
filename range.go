package critter

import (
	"fmt"

	"github.com/adammck/critter/math2d"
)

// Range is the window of relative angles which a segment may take, centered
// on its rest angle. A span of 2π (or more) is unconstrained.
type Range struct {
	Center float64
	Span   float64
}

func (r Range) String() string {
	return fmt.Sprintf("&Range{%+.2f° ±%.2f°}", math2d.Deg(r.Center), math2d.Deg(r.Span/2))
}

func (r Range) Min() float64 {
	return r.Center - r.Span/2
}

func (r Range) Max() float64 {
	return r.Center + r.Span/2
}

// Clamp returns the angle nearest to a which is within the range. The angle is
// not wrapped first; callers are expected to have done that.
func (r Range) Clamp(a float64) float64 {
	return math2d.Clamp(a, r.Min(), r.Max())
}

func (r Range) Contains(a float64) bool {
	return a >= r.Min() && a <= r.Max()
}
