// Package config loads run settings from built-in defaults, an optional YAML
// file and GPX_OVERLAY_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"gpx_overlay_image/internal/errs"
)

const (
	EnvPrefix = "GPX_OVERLAY_"
	// ConfigPathEnvVar names a YAML file to load when --config is not given.
	ConfigPathEnvVar = EnvPrefix + "CONFIG"
)

type Config struct {
	Output      string           `koanf:"output"`
	Athlete     string           `koanf:"athlete"`
	JPEGQuality int              `koanf:"jpeg_quality"`
	Background  BackgroundConfig `koanf:"background"`
	Log         LogConfig        `koanf:"log"`
}

// BackgroundConfig tones the photo before anything is drawn on it.
// Brightness 0 and contrast 1 leave it untouched.
type BackgroundConfig struct {
	Brightness float64 `koanf:"brightness"`
	Contrast   float64 `koanf:"contrast"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() Config {
	return Config{
		Output:      "out.jpg",
		JPEGQuality: 90,
		Background:  BackgroundConfig{Brightness: 0, Contrast: 1},
		Log:         LogConfig{Level: "info", Format: "console"},
	}
}

// Load layers defaults, the YAML file at path (or $GPX_OVERLAY_CONFIG when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, errs.FileNotFound("config file %s: %v", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errs.Malformed("failed to load config file %s: %v", path, err)
		}
	}

	// GPX_OVERLAY_JPEG_QUALITY -> jpeg_quality, GPX_OVERLAY_LOG__LEVEL -> log.level
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errs.Malformed("failed to unmarshal configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	if s == ConfigPathEnvVar {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate rejects settings the renderer cannot honor.
func (c Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errs.InvalidArgument("jpeg_quality must be within 1..100, got %d", c.JPEGQuality)
	}
	if c.Background.Contrast <= 0 {
		return errs.InvalidArgument("background.contrast must be positive, got %v", c.Background.Contrast)
	}
	if c.Background.Brightness < -1 || c.Background.Brightness > 1 {
		return errs.InvalidArgument("background.brightness must be within -1..1, got %v", c.Background.Brightness)
	}
	return nil
}
