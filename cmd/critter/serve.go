package main

import (
	"time"

	"github.com/adammck/critter/render"
	"github.com/adammck/critter/sim"
	"github.com/adammck/critter/stream"
)

// publisher sends a snapshot of the creature to the stream every tick. It
// must be added to the world after the driver.
type publisher struct {
	server *stream.Server
	driver *sim.Driver
}

func (p *publisher) Boot() error {
	return nil
}

func (p *publisher) Tick(now time.Time) error {
	return p.server.Publish(render.Snapshot(p.driver.Creature, p.driver.Target()))
}
