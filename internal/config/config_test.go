package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sprout")

	s, err := Load(NewViper(), dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.False(t, s.Debug)
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, 10*time.Minute, s.Weather.CacheTTL)
	assert.Equal(t, 800*time.Millisecond, s.Delays.WeatherLookup)
	assert.Equal(t, time.Second, s.Delays.CityEntry)
	assert.Equal(t, 2*time.Second, s.Delays.ImageAnalysis)
	assert.Equal(t, 1500*time.Millisecond, s.Delays.Recommendations)
	assert.Equal(t, 3*time.Second, s.Delays.Measurement)
	assert.Equal(t, int64(10*1024*1024), s.Upload.MaxBytes)
	assert.Equal(t, int64(15*1024*1024), s.Upload.MeasurementMaxBytes)
	assert.Equal(t, 10, s.History.Limit)
	assert.Zero(t, s.Random.Seed)
}

func TestLoadReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
delays:
  image_analysis: 250ms
history:
  limit: 3
random:
  seed: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	s, err := Load(NewViper(), dir)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, s.Delays.ImageAnalysis)
	assert.Equal(t, 800*time.Millisecond, s.Delays.WeatherLookup)
	assert.Equal(t, 3, s.History.Limit)
	assert.Equal(t, uint64(7), s.Random.Seed)
}

func TestExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0o644))

	v := NewViper()
	v.Set("config", path)
	s, err := Load(v)
	require.NoError(t, err)
	assert.True(t, s.Debug)

	v = NewViper()
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load(v)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SPROUT_HISTORY_LIMIT", "4")
	t.Setenv("SPROUT_DELAYS_MEASUREMENT", "10ms")

	s, err := Load(NewViper(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, s.History.Limit)
	assert.Equal(t, 10*time.Millisecond, s.Delays.Measurement)
}

func TestFlagOverride(t *testing.T) {
	v := NewViper()
	v.Set("store.path", "/tmp/x.db")
	s, err := Load(v, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", s.Store.Path)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
logging:
  format: xml
delays:
  city_entry: -1s
history:
  limit: 0
`), 0o644))

	_, err := Load(NewViper(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "delays.city_entry")
	assert.Contains(t, err.Error(), "history.limit")
}

func TestSettingsYAMLRoundTrip(t *testing.T) {
	s, err := Load(NewViper(), t.TempDir())
	require.NoError(t, err)

	data, err := s.YAML()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	delays := doc["delays"].(map[string]any)
	assert.Equal(t, "800ms", delays["weather_lookup"])
	assert.Equal(t, "1.5s", delays["recommendations"])

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644))
	again, err := Load(NewViper(), dir)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestDefaultFileIsValidYAML(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(DefaultFile(), &doc))
	assert.Contains(t, doc, "delays")
}
