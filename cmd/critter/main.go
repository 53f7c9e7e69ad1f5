package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adammck/critter/config"
	"github.com/adammck/critter/control"
	"github.com/adammck/critter/math2d"
	"github.com/adammck/critter/recipe"
	"github.com/adammck/critter/sim"
	"github.com/adammck/critter/stream"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "path to a config file (YAML or JSON)")
	recipeName = flag.String("recipe", "", "name of a built-in recipe, or path to a recipe file")
	mode       = flag.String("mode", "", "where to draw the creature: term or serve")
	debug      = flag.Bool("debug", false, "log at debug level")
	list       = flag.Bool("list", false, "list the built-in recipes and exit")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

func main() {
	flag.Parse()

	if *list {
		for _, name := range recipe.Names() {
			r, err := recipe.Builtin(name)
			if err != nil {
				fmt.Printf("%-10s (error: %s)\n", name, err)
				continue
			}
			fmt.Printf("%-10s %s\n", name, r.Description)
		}
		return
	}

	err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("error loading config: %s\n", err)
		os.Exit(1)
	}

	if *recipeName != "" {
		config.Set("recipe", *recipeName)
	}
	if *mode != "" {
		config.Set("mode", *mode)
	}
	if *debug {
		config.Set("logLevel", "debug")
	}

	cfg, err := config.Get()
	if err != nil {
		fmt.Printf("error in config: %s\n", err)
		os.Exit(1)
	}

	logrus.SetLevel(cfg.Level())

	// The terminal viewer owns stdout, so logs go to a file instead.
	if cfg.Mode == config.ModeTerm {
		logrus.SetOutput(io.Discard)
		if *debug {
			f, err := os.Create("critter.log")
			if err != nil {
				fmt.Printf("error opening log file: %s\n", err)
				os.Exit(1)
			}
			defer f.Close()
			logrus.SetOutput(f)
		}
	}

	r, err := recipe.Find(cfg.Recipe)
	if err != nil {
		fmt.Printf("error loading recipe: %s\n", err)
		os.Exit(1)
	}

	c, err := r.Build(0, 0)
	if err != nil {
		fmt.Printf("error building creature: %s\n", err)
		os.Exit(1)
	}

	w := sim.NewWorld()
	pointer := control.NewPointer(0, 0)

	var provider control.Provider = pointer
	if cfg.Target == config.TargetWander {
		wander := control.NewWander(math2d.ZeroVector2, 300, 200, 0.01)
		w.Add(wander)
		provider = wander
	}

	driver := sim.NewDriver(c, provider)
	w.Add(driver)

	// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeTerm:
		v, err := newViewer(w, driver, pointer, r.Name, cfg.Scale)
		if err != nil {
			fmt.Printf("error opening terminal: %s\n", err)
			os.Exit(1)
		}
		defer v.Close()
		w.Add(v)

	case config.ModeServe:
		s := stream.NewServer(pointer)
		w.Add(&publisher{server: s, driver: driver})

		hs := &http.Server{
			Addr:              cfg.Addr,
			Handler:           s.Mux(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			log.Infof("listening on http://%s", cfg.Addr)
			err := hs.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("error serving: %s", err)
				stop()
			}
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = hs.Shutdown(ctx)
		}()
	}

	err = w.Boot()
	if err != nil {
		log.Errorf("error while booting: %s", err)
		return
	}

	err = w.Run(ctx, cfg.FPS)
	if err != nil {
		log.Errorf("error while running: %s", err)
	}

	log.Infof("gait after %d frames:\n%s", c.Frames(), driver.Gait)
}
