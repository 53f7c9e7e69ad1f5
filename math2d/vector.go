package math2d

import (
	"fmt"
	"math"
)

type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	ZeroVector2 = Vector2{}
)

// MakeVector2 returns a new Vector2.
func MakeVector2(x float64, y float64) Vector2 {
	return Vector2{x, y}
}

// Polar returns the vector of the given length pointing along angle (in
// radians, counter-clockwise from the X axis).
func Polar(angle float64, length float64) Vector2 {
	return Vector2{
		math.Cos(angle) * length,
		math.Sin(angle) * length,
	}
}

func (v Vector2) String() string {
	return fmt.Sprintf("&Vec2{x=%0.2f y=%0.2f}", v.X, v.Y)
}

// Zero returns true if the vector is at 0,0.
func (v Vector2) Zero() bool {
	return (v.X == 0) && (v.Y == 0)
}

// Add adds two vectors, and returns the result.
func (v Vector2) Add(vv Vector2) Vector2 {
	return Vector2{
		(v.X + vv.X),
		(v.Y + vv.Y),
	}
}

// Subtract returns the vector from vv to v.
func (v Vector2) Subtract(vv Vector2) Vector2 {
	return Vector2{
		(v.X - vv.X),
		(v.Y - vv.Y),
	}
}

func (v Vector2) MultiplyByScalar(s float64) Vector2 {
	return Vector2{
		(v.X * s),
		(v.Y * s),
	}
}

func (v Vector2) Dot(vv Vector2) float64 {
	return (v.X * vv.X) + (v.Y * vv.Y)
}

// Magnitude returns the length of the vector.
func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector2) Distance(vv Vector2) float64 {
	return v.Subtract(vv).Magnitude()
}

// Unit returns the vector scaled to a length of one. The zero vector has no
// direction, so is returned unchanged.
func (v Vector2) Unit() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return ZeroVector2
	}

	return v.MultiplyByScalar(1 / m)
}

// Angle returns the direction of the vector, in radians. The second value is
// false for the zero vector, which has no direction; callers should keep
// whatever angle they had before.
func (v Vector2) Angle() (float64, bool) {
	if v.Zero() {
		return 0, false
	}

	return math.Atan2(v.Y, v.X), true
}

// MultiplyByMatrix33 returns a new Vector2, by multiplying this vector (as a
// row vector with an implicit third component of one) by a 3x3 matrix.
func (v Vector2) MultiplyByMatrix33(m Matrix33) Vector2 {
	return Vector2{
		(v.X * m.m11) + (v.Y * m.m21) + m.m31,
		(v.X * m.m12) + (v.Y * m.m22) + m.m32,
	}
}
