// Package control provides the targets which creatures follow.
package control

import (
	"github.com/adammck/critter/math2d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "control",
})

// Provider is anything which can say where a creature should go next. It's
// read once per frame, by the goroutine which advances the creature.
type Provider interface {
	Target() math2d.Vector2
}

// Fixed is a target which never moves.
type Fixed math2d.Vector2

func (f Fixed) Target() math2d.Vector2 {
	return math2d.Vector2(f)
}
