package math2d

import (
	"math"

	"golang.org/x/exp/constraints"
)

const twoPi = 2 * math.Pi

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// Wrap returns the angle equivalent to a in the half-open interval (-π, π].
func Wrap(a float64) float64 {
	return WrapAround(a, 0)
}

// WrapAround returns the angle equivalent to a which lies within π of center,
// in the half-open interval (center-π, center+π]. This is the branch nearest
// to center, with ties going to the positive side.
func WrapAround(a, center float64) float64 {
	return a - twoPi*math.Ceil((a-center)/twoPi-0.5)
}

// Clamp returns x limited to the closed interval [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

// Sign returns +1 if the condition is true, otherwise -1. This is useful for
// turning comparisons into directions.
func Sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}
