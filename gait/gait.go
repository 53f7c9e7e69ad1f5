// Package gait records what a creature's legs do over time: how long each
// spends planted, how many steps it takes, and a short history of both, for
// tuning and for display.
package gait

import (
	"fmt"
	"strings"

	"github.com/adammck/critter"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

const (
	// Number of frames of history kept per leg.
	historyLength = 60
)

// LegStats is the record of a single leg.
type LegStats struct {
	// Frames spent in each state.
	Standing int `json:"standing"`
	Stepping int `json:"stepping"`

	// Completed steps, i.e. transitions from stepping back to standing.
	Steps int `json:"steps"`

	// The most consecutive frames spent stepping.
	Longest int `json:"longest"`

	streak int
	last   critter.Step
}

// DutyFactor returns the fraction of observed frames which the leg spent
// standing. A leg which has not been observed is considered to be standing.
func (s LegStats) DutyFactor() float64 {
	n := s.Standing + s.Stepping
	if n == 0 {
		return 1
	}

	return float64(s.Standing) / float64(n)
}

// Recorder watches the legs of a single creature. Legs are numbered in the
// order they were attached, ignoring any systems which don't walk.
type Recorder struct {
	legs    []LegStats
	history [][historyLength]critter.Step
	frames  int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records the current state of every leg. Call it once per frame,
// after the creature has advanced.
func (r *Recorder) Observe(c *critter.Creature) {
	steps := []critter.Step{}
	for _, s := range c.Systems() {
		if l, ok := s.(*critter.LegSystem); ok {
			steps = append(steps, l.Step())
		}
	}

	r.observe(steps)
}

func (r *Recorder) observe(steps []critter.Step) {
	for len(r.legs) < len(steps) {
		r.legs = append(r.legs, LegStats{last: critter.Standing})
		r.history = append(r.history, [historyLength]critter.Step{})
	}

	for i, step := range steps {
		s := &r.legs[i]

		switch step {
		case critter.Stepping:
			s.Stepping++
			s.streak++
			if s.streak > s.Longest {
				s.Longest = s.streak
			}

		default:
			s.Standing++
			if s.last == critter.Stepping {
				s.Steps++
				log.WithField("leg", i).Debugf("step %d took %d frames", s.Steps, s.streak)
			}
			s.streak = 0
		}

		s.last = step
		r.history[i][r.frames%historyLength] = step
	}

	r.frames++
}

// Frames returns the number of times Observe has been called.
func (r *Recorder) Frames() int {
	return r.frames
}

// Legs returns the number of legs seen so far.
func (r *Recorder) Legs() int {
	return len(r.legs)
}

// DutyFactor returns the fraction of frames which leg i spent standing.
func (r *Recorder) DutyFactor(i int) float64 {
	if i < 0 || i >= len(r.legs) {
		return 1
	}

	return r.legs[i].DutyFactor()
}

// Steps returns the number of steps which leg i has completed.
func (r *Recorder) Steps(i int) int {
	if i < 0 || i >= len(r.legs) {
		return 0
	}

	return r.legs[i].Steps
}

// Report returns a copy of the stats of every leg.
func (r *Recorder) Report() []LegStats {
	out := make([]LegStats, len(r.legs))
	copy(out, r.legs)
	return out
}

// Pattern returns the recent history of leg i as a string, oldest first, with
// one character per frame: '_' for standing and '^' for stepping. This is the
// familiar gait diagram, and makes it easy to see which legs move together.
//
//	leg 0: ____^^^^______^^^^__
//	leg 1: ^^^^______^^^^______
func (r *Recorder) Pattern(i int) string {
	if i < 0 || i >= len(r.history) {
		return ""
	}

	n := r.frames
	if n > historyLength {
		n = historyLength
	}

	var sb strings.Builder
	for f := r.frames - n; f < r.frames; f++ {
		if r.history[i][f%historyLength] == critter.Stepping {
			sb.WriteByte('^')
		} else {
			sb.WriteByte('_')
		}
	}

	return sb.String()
}

func (r *Recorder) String() string {
	var sb strings.Builder
	for i, s := range r.legs {
		fmt.Fprintf(&sb, "leg %d: duty=%.2f steps=%d longest=%d\n", i, s.DutyFactor(), s.Steps, s.Longest)
	}

	return sb.String()
}
