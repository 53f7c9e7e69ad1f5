package math2d

import (
	"fmt"
	"math"
)

// Matrix33 is a 2D affine transform, applied to row vectors. The rotation and
// scale live in the upper-left 2x2, and the translation in the third row.
type Matrix33 struct {
	m11 float64 // 0
	m12 float64 // 1
	m13 float64 // 2
	m21 float64 // 3
	m22 float64 // 4
	m23 float64 // 5
	m31 float64 // 6
	m32 float64 // 7
	m33 float64 // 8
}

var (
	IdentityMatrix33 = Matrix33{m11: 1, m22: 1, m33: 1}
)

// MakeMatrix33 returns a matrix which rotates by heading (in radians) and then
// translates by v.
func MakeMatrix33(v Vector2, heading float64) *Matrix33 {
	m := &Matrix33{}
	m.SetRotation(heading)
	m.SetTranslation(v)
	return m
}

// MakeScaleMatrix33 returns a matrix which scales each axis independently.
func MakeScaleMatrix33(sx float64, sy float64) *Matrix33 {
	return &Matrix33{
		m11: sx,
		m22: sy,
		m33: 1,
	}
}

func (m Matrix33) String() string {
	return fmt.Sprintf(
		"&M33{%+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f}",
		m.m11, m.m12, m.m13,
		m.m21, m.m22, m.m23,
		m.m31, m.m32, m.m33)
}

// Elements returns the matrix as a 3x3 array of float64s. This is pretty much
// only useful for dumping its contents.
func (m Matrix33) Elements() [3][3]float64 {
	return [3][3]float64{
		{m.m11, m.m12, m.m13},
		{m.m21, m.m22, m.m23},
		{m.m31, m.m32, m.m33},
	}
}

func (m Matrix33) Determinant() float64 {
	return m.m11*(m.m22*m.m33-m.m23*m.m32) -
		m.m12*(m.m21*m.m33-m.m23*m.m31) +
		m.m13*(m.m21*m.m32-m.m22*m.m31)
}

// Inverse returns the inverse of the matrix, via the adjugate. A singular
// matrix (e.g. a zero scale) has no inverse, so the identity is returned.
func (m Matrix33) Inverse() Matrix33 {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return IdentityMatrix33
	}

	d := 1 / det
	return Matrix33{
		(m.m22*m.m33 - m.m23*m.m32) * d,
		(m.m13*m.m32 - m.m12*m.m33) * d,
		(m.m12*m.m23 - m.m13*m.m22) * d,
		(m.m23*m.m31 - m.m21*m.m33) * d,
		(m.m11*m.m33 - m.m13*m.m31) * d,
		(m.m13*m.m21 - m.m11*m.m23) * d,
		(m.m21*m.m32 - m.m22*m.m31) * d,
		(m.m12*m.m31 - m.m11*m.m32) * d,
		(m.m11*m.m22 - m.m12*m.m21) * d,
	}
}

// MultiplyMatrices multiplies two 3x3 matrices together. Since vectors are
// rows, the result applies a first and then b.
func MultiplyMatrices(a Matrix33, b Matrix33) *Matrix33 {
	return &Matrix33{
		(a.m11 * b.m11) + (a.m12 * b.m21) + (a.m13 * b.m31),
		(a.m11 * b.m12) + (a.m12 * b.m22) + (a.m13 * b.m32),
		(a.m11 * b.m13) + (a.m12 * b.m23) + (a.m13 * b.m33),
		(a.m21 * b.m11) + (a.m22 * b.m21) + (a.m23 * b.m31),
		(a.m21 * b.m12) + (a.m22 * b.m22) + (a.m23 * b.m32),
		(a.m21 * b.m13) + (a.m22 * b.m23) + (a.m23 * b.m33),
		(a.m31 * b.m11) + (a.m32 * b.m21) + (a.m33 * b.m31),
		(a.m31 * b.m12) + (a.m32 * b.m22) + (a.m33 * b.m32),
		(a.m31 * b.m13) + (a.m32 * b.m23) + (a.m33 * b.m33),
	}
}

// SetRotation overwrites the upper-left 2x2 with a counter-clockwise rotation
// of heading radians, and resets the rest to the identity.
func (m *Matrix33) SetRotation(heading float64) {
	c := math.Cos(heading)
	s := math.Sin(heading)

	m.m11 = c
	m.m12 = s
	m.m13 = 0
	m.m21 = -s
	m.m22 = c
	m.m23 = 0
	m.m31 = 0
	m.m32 = 0
	m.m33 = 1
}

// SetTranslation sets the translation of a matrix by overwriting the third
// row. Other cells are left alone.
func (m *Matrix33) SetTranslation(v Vector2) {
	m.m31 = v.X
	m.m32 = v.Y
}
