// Package config reads the runtime settings of the critter command.
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ModeTerm  = "term"
	ModeServe = "serve"

	TargetPointer = "pointer"
	TargetWander  = "wander"
)

type Config struct {
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	FPS      int    `json:"fps" mapstructure:"fps"`

	// Name of a built-in recipe, or the path to a recipe file.
	Recipe string `json:"recipe" mapstructure:"recipe"`

	Mode   string `json:"mode" mapstructure:"mode"`
	Addr   string `json:"addr" mapstructure:"addr"`
	Target string `json:"target" mapstructure:"target"`

	// World units per terminal cell.
	Scale float64 `json:"scale" mapstructure:"scale"`
}

// Load sets default values, and then reads the given config file (YAML or
// JSON, by extension) over them. An empty path just sets the defaults.
func Load(path string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("fps", 60)
	viper.SetDefault("recipe", "lizard")
	viper.SetDefault("mode", ModeTerm)
	viper.SetDefault("addr", "127.0.0.1:8080")
	viper.SetDefault("target", TargetPointer)
	viper.SetDefault("scale", 4.0)

	viper.SetEnvPrefix("critter")
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Set overrides a single value, e.g. from a command line flag.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// Get returns the current settings, or an error if any are invalid.
func Get() (Config, error) {
	var c Config
	err := viper.Unmarshal(&c)
	if err != nil {
		return c, fmt.Errorf("error decoding config: %w", err)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return c, fmt.Errorf("invalid logLevel: %w", err)
	}

	if c.FPS <= 0 {
		return c, fmt.Errorf("invalid fps: %d", c.FPS)
	}

	if c.Mode != ModeTerm && c.Mode != ModeServe {
		return c, fmt.Errorf("invalid mode: %q", c.Mode)
	}

	if c.Target != TargetPointer && c.Target != TargetWander {
		return c, fmt.Errorf("invalid target: %q", c.Target)
	}

	if c.Scale <= 0 {
		return c, fmt.Errorf("invalid scale: %v", c.Scale)
	}

	return c, nil
}

// Level returns the configured log level, or info if it's invalid.
func (c Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
