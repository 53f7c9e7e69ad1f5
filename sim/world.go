// Package sim runs creatures (and anything else which needs regular updates)
// at a fixed frame rate.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "sim",
})

type Component interface {
	Boot() error
	Tick(time.Time) error
}

type World struct {
	Components []Component

	// Components can set this to true to indicate that the loop should stop
	// after the current tick.
	Shutdown bool

	ticks uint64
}

func NewWorld() *World {
	return &World{
		Components: []Component{},
	}
}

// Add registers a component to receive ticks every frame. Components are
// ticked in the order they were added, so anything which reads a creature
// should be added after whatever advances it.
func (w *World) Add(c Component) {
	w.Components = append(w.Components, c)
}

// Boot calls Boot on each component, stopping at the first error.
func (w *World) Boot() error {
	for i, c := range w.Components {
		err := c.Boot()
		if err != nil {
			return fmt.Errorf("error booting component #%d (%T): %w", i, c, err)
		}
	}

	return nil
}

// Tick calls Tick on each component. Every component is ticked even if an
// earlier one fails; the first error is returned.
func (w *World) Tick(now time.Time) error {
	var first error

	for i, c := range w.Components {
		err := c.Tick(now)
		if err != nil {
			log.Warnf("error ticking component #%d (%T): %s", i, c, err)
			if first == nil {
				first = fmt.Errorf("error ticking component #%d (%T): %w", i, c, err)
			}
		}
	}

	w.ticks++
	return first
}

// Ticks returns the number of times Tick has been called.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Run ticks the world fps times per second until the context is canceled or
// a component requests a shutdown. Errors from ticks are logged, not returned.
func (w *World) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate: %d", fps)
	}

	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()

	log.Infof("running at %d fps", fps)

	for {
		select {
		case <-ctx.Done():
			log.Infof("stopping after %d ticks: %s", w.ticks, ctx.Err())
			return nil

		case now := <-t.C:
			_ = w.Tick(now)

			if w.Shutdown {
				log.Infof("shutdown requested after %d ticks", w.ticks)
				return nil
			}
		}
	}
}
