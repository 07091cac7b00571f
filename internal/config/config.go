// Package config loads sprout settings from config.yaml, SPROUT_*
// environment variables and command line flags.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides, e.g. SPROUT_HISTORY_LIMIT.
const EnvPrefix = "SPROUT"

type Settings struct {
	Debug   bool            `mapstructure:"debug"`
	Store   StoreSettings   `mapstructure:"store"`
	Logging LoggingSettings `mapstructure:"logging"`
	Weather WeatherSettings `mapstructure:"weather"`
	Random  RandomSettings  `mapstructure:"random"`
	Delays  DelaySettings   `mapstructure:"delays"`
	Upload  UploadSettings  `mapstructure:"upload"`
	History HistorySettings `mapstructure:"history"`
}

type StoreSettings struct {
	Path string `mapstructure:"path"`
}

type LoggingSettings struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

type WeatherSettings struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RandomSettings struct {
	Seed uint64 `mapstructure:"seed"`
}

type DelaySettings struct {
	WeatherLookup   time.Duration `mapstructure:"weather_lookup"`
	CityEntry       time.Duration `mapstructure:"city_entry"`
	ImageAnalysis   time.Duration `mapstructure:"image_analysis"`
	Recommendations time.Duration `mapstructure:"recommendations"`
	Measurement     time.Duration `mapstructure:"measurement"`
}

type UploadSettings struct {
	MaxBytes            int64 `mapstructure:"max_bytes"`
	MeasurementMaxBytes int64 `mapstructure:"measurement_max_bytes"`
}

type HistorySettings struct {
	Limit int `mapstructure:"limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("store.path", "")

	v.SetDefault("logging.file", "")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.level", "info")

	v.SetDefault("weather.cache_ttl", 10*time.Minute)

	v.SetDefault("random.seed", 0)

	v.SetDefault("delays.weather_lookup", 800*time.Millisecond)
	v.SetDefault("delays.city_entry", time.Second)
	v.SetDefault("delays.image_analysis", 2*time.Second)
	v.SetDefault("delays.recommendations", 1500*time.Millisecond)
	v.SetDefault("delays.measurement", 3*time.Second)

	v.SetDefault("upload.max_bytes", 10*1024*1024)
	v.SetDefault("upload.measurement_max_bytes", 15*1024*1024)

	v.SetDefault("history.limit", 10)
}

// NewViper returns a viper instance with defaults and environment
// overrides registered.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfigPaths lists the directories searched for config.yaml. The
// first one receives a default file when none is found.
func DefaultConfigPaths() ([]string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("get user config dir: %w", err)
	}
	return []string{filepath.Join(cfg, "sprout"), "."}, nil
}

// Load reads settings into v. When the "config" key names a file it must
// exist. Otherwise config.yaml is searched in paths (DefaultConfigPaths
// when empty) and a default one is written if missing.
func Load(v *viper.Viper, paths ...string) (*Settings, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		return decode(v)
	}

	if len(paths) == 0 {
		var err error
		if paths, err = DefaultConfigPaths(); err != nil {
			return nil, err
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := createDefaultConfig(v, paths[0]); err != nil {
			return nil, err
		}
	}
	return decode(v)
}

func createDefaultConfig(v *viper.Viper, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return v.ReadInConfig()
}

func decode(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks value ranges.
func Validate(s *Settings) error {
	var errs []error
	switch strings.ToLower(s.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", s.Logging.Format))
	}
	delays := map[string]time.Duration{
		"delays.weather_lookup":  s.Delays.WeatherLookup,
		"delays.city_entry":      s.Delays.CityEntry,
		"delays.image_analysis":  s.Delays.ImageAnalysis,
		"delays.recommendations": s.Delays.Recommendations,
		"delays.measurement":     s.Delays.Measurement,
	}
	for _, k := range slices.Sorted(maps.Keys(delays)) {
		if delays[k] < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", k))
		}
	}
	if s.Weather.CacheTTL < 0 {
		errs = append(errs, errors.New("weather.cache_ttl must not be negative"))
	}
	if s.Upload.MaxBytes <= 0 || s.Upload.MeasurementMaxBytes <= 0 {
		errs = append(errs, errors.New("upload limits must be positive"))
	}
	if s.History.Limit < 1 {
		errs = append(errs, fmt.Errorf("history.limit must be at least 1, got %d", s.History.Limit))
	}
	return errors.Join(errs...)
}

// YAML renders s in the config file layout with durations as strings.
func (s *Settings) YAML() ([]byte, error) {
	doc := map[string]any{
		"debug": s.Debug,
		"store": map[string]any{"path": s.Store.Path},
		"logging": map[string]any{
			"file":   s.Logging.File,
			"format": s.Logging.Format,
			"level":  s.Logging.Level,
		},
		"weather": map[string]any{"cache_ttl": s.Weather.CacheTTL.String()},
		"random":  map[string]any{"seed": s.Random.Seed},
		"delays": map[string]any{
			"weather_lookup":  s.Delays.WeatherLookup.String(),
			"city_entry":      s.Delays.CityEntry.String(),
			"image_analysis":  s.Delays.ImageAnalysis.String(),
			"recommendations": s.Delays.Recommendations.String(),
			"measurement":     s.Delays.Measurement.String(),
		},
		"upload": map[string]any{
			"max_bytes":             s.Upload.MaxBytes,
			"measurement_max_bytes": s.Upload.MeasurementMaxBytes,
		},
		"history": map[string]any{"limit": s.History.Limit},
	}
	return yaml.Marshal(doc)
}

// DefaultFile returns the embedded default config.yaml.
func DefaultFile() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}
