package sim

import (
	"time"

	"github.com/adammck/critter"
	"github.com/adammck/critter/control"
	"github.com/adammck/critter/gait"
	"github.com/adammck/critter/math2d"
)

// Driver advances a single creature toward wherever its provider says, once
// per tick, and records what its legs did.
type Driver struct {
	Creature *critter.Creature
	Provider control.Provider
	Gait     *gait.Recorder

	target math2d.Vector2
}

func NewDriver(c *critter.Creature, p control.Provider) *Driver {
	return &Driver{
		Creature: c,
		Provider: p,
		Gait:     gait.NewRecorder(),
	}
}

func (d *Driver) Boot() error {
	log.Infof("driving creature with %d segments and %d systems from %s",
		len(d.Creature.Segments()), len(d.Creature.Systems()), d.Creature.Pose())
	return nil
}

func (d *Driver) Tick(now time.Time) error {
	d.target = d.Provider.Target()
	d.Creature.Advance(d.target.X, d.target.Y)
	d.Gait.Observe(d.Creature)
	return nil
}

// Target returns the target which the creature was advanced toward during the
// last tick.
func (d *Driver) Target() math2d.Vector2 {
	return d.target
}
