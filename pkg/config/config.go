// Package config loads and saves the quasiwalk configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gwillem/quasiwalk/pkg/gait"
	"github.com/gwillem/quasiwalk/pkg/sim"
	"github.com/gwillem/quasiwalk/pkg/viewer"
)

const DefaultConfigFile = "quasiwalk.yaml"

// Config holds the whole program configuration.
type Config struct {
	Gait   GaitConfig   `koanf:"gait" yaml:"gait"`
	Sim    SimConfig    `koanf:"sim" yaml:"sim"`
	Walk   WalkConfig   `koanf:"walk" yaml:"walk"`
	Viewer ViewerConfig `koanf:"viewer" yaml:"viewer"`
	Log    LogConfig    `koanf:"log" yaml:"log"`
}

// GaitConfig holds the sequencer parameters.
type GaitConfig struct {
	Timing       gait.Timing `koanf:"timing" yaml:"timing"`
	FootAltitude float64     `koanf:"foot_altitude" yaml:"foot_altitude"`
	AnkleGain    float64     `koanf:"ankle_gain" yaml:"ankle_gain"`
}

// SimConfig describes the simulated robot.
type SimConfig struct {
	Robot     string  `koanf:"robot" yaml:"robot"`
	ComHeight float64 `koanf:"com_height" yaml:"com_height"`
	ComGain   float64 `koanf:"com_gain" yaml:"com_gain"`
}

// WalkConfig holds the parameters of the driving loop.
type WalkConfig struct {
	TimeStep float64 `koanf:"time_step" yaml:"time_step"`
	Steps    int     `koanf:"steps" yaml:"steps"`
	Hz       int     `koanf:"hz" yaml:"hz"` // 0 runs as fast as possible
}

// ViewerConfig holds the optional visualization outputs.
type ViewerConfig struct {
	URL       string `koanf:"url" yaml:"url"`
	Namespace string `koanf:"namespace" yaml:"namespace"`
	Element   string `koanf:"element" yaml:"element"`
	Width     int    `koanf:"width" yaml:"width"`
	Record    string `koanf:"record" yaml:"record"`
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// Default returns the built-in configuration: three steps at 50 Hz of
// simulated time, no viewer.
func Default() *Config {
	g := gait.DefaultOptions()
	h := sim.DefaultOptions()
	return &Config{
		Gait: GaitConfig{
			Timing:       g.Timing,
			FootAltitude: g.FootAltitude,
			AnkleGain:    g.AnkleGain,
		},
		Sim: SimConfig{
			Robot:     h.Name,
			ComHeight: h.ComHeight,
			ComGain:   h.ComGain,
		},
		Walk: WalkConfig{
			TimeStep: 0.02,
			Steps:    3,
			Hz:       0,
		},
		Viewer: ViewerConfig{
			Element: viewer.DefaultElement,
			Width:   sim.StateDim + 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values which would stop the loop from terminating. The
// gait parameters themselves are not checked.
func (c *Config) Validate() error {
	if c.Walk.TimeStep <= 0 {
		return fmt.Errorf("walk.time_step must be positive, got %v", c.Walk.TimeStep)
	}
	if c.Walk.Steps < 0 {
		return fmt.Errorf("walk.steps must not be negative, got %d", c.Walk.Steps)
	}
	if c.Walk.Hz < 0 {
		return fmt.Errorf("walk.hz must not be negative, got %d", c.Walk.Hz)
	}
	for _, p := range gait.Phases() {
		if c.Gait.Timing.Of(p) < 0 {
			return fmt.Errorf("gait.timing: duration of %s must not be negative", p)
		}
	}
	if c.Viewer.Width < 0 {
		return fmt.Errorf("viewer.width must not be negative, got %d", c.Viewer.Width)
	}
	return nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Exists returns true if a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
