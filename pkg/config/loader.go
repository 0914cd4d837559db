package config

import (
	"fmt"
	"os"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "QUASIWALK_"

// Load builds the configuration from, lowest precedence first: the built-in
// defaults, the YAML file at path (skipped if it does not exist), and
// QUASIWALK_* environment variables.
//
// Environment variables name a section, then a field:
//
//	QUASIWALK_WALK_TIME_STEP    -> walk.time_step
//	QUASIWALK_VIEWER_URL        -> viewer.url
//	QUASIWALK_GAIT_TIMING_LIFT  -> gait.timing.lift
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(defaults), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), kyaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults and environment only.
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// envKey maps QUASIWALK_SECTION_FIELD_NAME to section.field_name. The gait
// timing table is the only nested section.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}

	section, field := parts[0], parts[1]
	if section == "gait" && strings.HasPrefix(field, "timing_") {
		field = "timing." + strings.TrimPrefix(field, "timing_")
	}
	return section + "." + field
}
