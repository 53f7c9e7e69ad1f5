package render

import (
	"github.com/adammck/critter"
	"github.com/adammck/critter/math2d"
)

// Frame is a snapshot of a creature, which is everything a viewer needs to
// draw it.
type Frame struct {
	Tick     uint64         `json:"tick"`
	Pose     math2d.Pose    `json:"pose"`
	Target   math2d.Vector2 `json:"target"`
	Standing float64        `json:"standing"`
	Lines    []critter.Line `json:"lines"`
}

// Snapshot captures the current state of a creature. The frame shares nothing
// with the creature, so can be handed to another goroutine.
func Snapshot(c *critter.Creature, target math2d.Vector2) Frame {
	return Frame{
		Tick:     c.Frames(),
		Pose:     c.Pose(),
		Target:   target,
		Standing: c.Standing(),
		Lines:    c.Lines(),
	}
}
