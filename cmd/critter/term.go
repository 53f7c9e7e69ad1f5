package main

import (
	"fmt"
	"time"

	"github.com/adammck/critter/control"
	"github.com/adammck/critter/render"
	"github.com/adammck/critter/sim"
	"github.com/gdamore/tcell/v2"
)

const (

	// How far (as a fraction of the half-width or height) the creature can
	// wander from the middle of the screen before the view follows it.
	followMargin = 0.6

	// Number of legs to draw the gait pattern of.
	maxPatterns = 8
)

var (
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// viewer draws the creature in the terminal, and moves the target with the
// mouse (or the arrow keys). Clicking pins the target where it is.
type viewer struct {
	screen  tcell.Screen
	events  chan tcell.Event
	world   *sim.World
	driver  *sim.Driver
	pointer *control.Pointer
	view    *render.Viewport
	name    string

	click  control.Latch
	booted bool
}

func newViewer(w *sim.World, d *sim.Driver, p *control.Pointer, name string, scale float64) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	return &viewer{
		screen:  screen,
		events:  make(chan tcell.Event, 100),
		world:   w,
		driver:  d,
		pointer: p,
		view:    render.NewViewport(0, 0, scale),
		name:    name,
	}, nil
}

func (v *viewer) Boot() error {
	err := v.screen.Init()
	if err != nil {
		return err
	}

	v.booted = true
	v.screen.EnableMouse()
	v.screen.HideCursor()
	v.view.Width, v.view.Height = v.screen.Size()

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			v.events <- ev
		}
	}()

	return nil
}

func (v *viewer) Close() {
	if v.booted {
		v.screen.Fini()
	}
}

func (v *viewer) Tick(now time.Time) error {
drain:
	for {
		select {
		case ev := <-v.events:
			v.handle(ev)
		default:
			break drain
		}
	}

	c := v.driver.Creature
	v.view.Follow(c.Position(), followMargin)

	v.screen.Clear()

	render.Rasterize(c.Lines(), v.view, func(x, y int) {
		v.screen.SetContent(x, y, '*', nil, bodyStyle)
	})

	tx, ty := v.view.Cell(v.driver.Target())
	if v.view.Contains(tx, ty) {
		v.screen.SetContent(tx, ty, 'x', nil, targetStyle)
	}

	v.hud()
	v.screen.Show()
	return nil
}

func (v *viewer) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			v.world.Shutdown = true
		case tcell.KeyUp:
			v.pointer.Nudge(0, 1)
		case tcell.KeyDown:
			v.pointer.Nudge(0, -1)
		case tcell.KeyLeft:
			v.pointer.Nudge(-1, 0)
		case tcell.KeyRight:
			v.pointer.Nudge(1, 0)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				v.world.Shutdown = true
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if v.click.Run(ev.Buttons()&tcell.Button1 != 0) {
			v.pointer.Pin(!v.pointer.Pinned())
		}

		w := v.view.World(x, y)
		v.pointer.Set(w.X, w.Y)

	case *tcell.EventResize:
		v.view.Width, v.view.Height = v.screen.Size()
		v.screen.Sync()
	}
}

func (v *viewer) hud() {
	c := v.driver.Creature
	g := v.driver.Gait

	pin := ""
	if v.pointer.Pinned() {
		pin = " [pinned]"
	}

	lines := []string{
		fmt.Sprintf("%s  frame %d  %s  standing %.2f%s", v.name, c.Frames(), c.Pose(), c.Standing(), pin),
	}

	for i := 0; i < g.Legs() && i < maxPatterns; i++ {
		lines = append(lines, fmt.Sprintf("leg %d %s", i, g.Pattern(i)))
	}

	for y, s := range lines {
		for x, r := range []rune(s) {
			v.screen.SetContent(x, y, r, nil, hudStyle)
		}
	}
}
