package math2d

import (
	"fmt"
)

// Pose is a position and heading in the world space. The heading is in
// radians, counter-clockwise from the X axis.
type Pose struct {
	Position Vector2 `json:"position"`
	Heading  float64 `json:"heading"`
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+07.2f y=%+07.2f, r=%+05.2f}", p.Position.X, p.Position.Y, p.Heading)
}

// Add returns the pose pp (which is relative to p) in the world space.
func (p Pose) Add(pp Pose) Pose {
	return Pose{
		Position: pp.Position.MultiplyByMatrix33(p.ToWorld()),
		Heading:  p.Heading + pp.Heading,
	}
}

// Out returns the world pose pp, relative to p. This is the inverse of Add.
func (p Pose) Out(pp Pose) Pose {
	return Pose{
		Position: pp.Position.MultiplyByMatrix33(p.ToLocal()),
		Heading:  pp.Heading - p.Heading,
	}
}

// Forward returns the unit vector which the pose is facing.
func (p Pose) Forward() Vector2 {
	return Polar(p.Heading, 1)
}

// ToWorld returns a matrix to transform a vector in the pose's space into the
// world space.
func (p Pose) ToWorld() Matrix33 {
	return *MakeMatrix33(p.Position, p.Heading)
}

// ToLocal returns a matrix to transform a vector in the world space into the
// pose's space.
func (p Pose) ToLocal() Matrix33 {
	return p.ToWorld().Inverse()
}
