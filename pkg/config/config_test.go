package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/quasiwalk/pkg/gait"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quasiwalk.yaml")
	content := `
gait:
  foot_altitude: 0.05
  timing:
    lift: 2.5
walk:
  steps: 0
viewer:
  url: http://localhost:4444/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Gait.FootAltitude)
	assert.Equal(t, 2.5, cfg.Gait.Timing.Lift)
	assert.Equal(t, 5.0, cfg.Gait.Timing.Land, "unset fields keep their default")
	assert.Equal(t, 0, cfg.Walk.Steps, "zero is a valid override")
	assert.Equal(t, 0.02, cfg.Walk.TimeStep)
	assert.Equal(t, "http://localhost:4444/", cfg.Viewer.URL)
}

func TestLoad_ExplicitZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quasiwalk.yaml")
	content := `
gait:
  foot_altitude: 0
  ankle_gain: 0
sim:
  com_gain: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Gait.FootAltitude)
	assert.Equal(t, 0.0, cfg.Gait.AnkleGain)
	assert.Equal(t, 0.0, cfg.Sim.ComGain)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("QUASIWALK_WALK_TIME_STEP", "0.01")
	t.Setenv("QUASIWALK_GAIT_TIMING_SHIFT_TO_DOUBLE", "2")
	t.Setenv("QUASIWALK_VIEWER_ELEMENT", "robot")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Walk.TimeStep)
	assert.Equal(t, 2.0, cfg.Gait.Timing.ShiftToDouble)
	assert.Equal(t, "robot", cfg.Viewer.Element)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("QUASIWALK_WALK_TIME_STEP", "0")

	_, err := Load("")
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	assert.False(t, Exists(path))

	cfg := Default()
	cfg.Walk.Steps = 7
	cfg.Gait.Timing = gait.Timing{ShiftToSingle: 0.5, Lift: 1, Land: 1, ShiftToDouble: 0.5}
	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative steps", func(c *Config) { c.Walk.Steps = -1 }},
		{"negative hz", func(c *Config) { c.Walk.Hz = -1 }},
		{"negative duration", func(c *Config) { c.Gait.Timing.Land = -1 }},
		{"negative width", func(c *Config) { c.Viewer.Width = -1 }},
	}

	assert.NoError(t, Default().Validate())
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		assert.Error(t, cfg.Validate(), tt.name)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"QUASIWALK_WALK_TIME_STEP", "walk.time_step"},
		{"QUASIWALK_VIEWER_URL", "viewer.url"},
		{"QUASIWALK_GAIT_FOOT_ALTITUDE", "gait.foot_altitude"},
		{"QUASIWALK_GAIT_TIMING_LIFT", "gait.timing.lift"},
		{"QUASIWALK_GAIT_TIMING_SHIFT_TO_SINGLE", "gait.timing.shift_to_single"},
		{"QUASIWALK_DEBUG", "debug"},
	}

	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
