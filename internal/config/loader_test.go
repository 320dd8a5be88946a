package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 9000
  shutdown_timeout: 5s
datasets:
  source: http
  base_url: "https://centralbanktalk.example/data"
  paths:
    geography: "world_map.geojson"
  exclude_iso_a2: ["AQ", "GL"]
  fetch:
    retry_max: 5
cache:
  redis:
    enabled: true
    addr: "redis:6379"
log:
  level: debug
  format: console
render:
  default_indicator: pressure_monetary
  blend_space: lab
`

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), validConfigYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceHTTP, cfg.Datasets.Source)
	assert.Equal(t, "https://centralbanktalk.example/data", cfg.Datasets.BaseURL)
	assert.Equal(t, "world_map.geojson", cfg.Datasets.Paths.Geography)
	assert.Equal(t, DefaultPathCountryNameToCode, cfg.Datasets.Paths.CountryNameToCode)
	assert.Equal(t, []string{"AQ", "GL"}, cfg.Datasets.ExcludeISOA2)
	assert.Equal(t, 5, cfg.Datasets.Fetch.RetryMax)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "pressure_monetary", cfg.Render.DefaultIndicator)
	assert.Equal(t, "lab", cfg.Render.BlendSpace)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  level: loud\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), validConfigYAML)
	t.Setenv("CBTALK_SERVER_PORT", "9100")
	t.Setenv("CBTALK_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CBTALK_DATASETS_SOURCE", "minio")
	t.Setenv("CBTALK_MINIO_BUCKET", "atlas")
	t.Setenv("CBTALK_CACHE_REDIS_ENABLED", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, SourceMinIO, cfg.Datasets.Source)
	assert.Equal(t, "atlas", cfg.MinIO.Bucket)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, DefaultRedisAddr, cfg.Cache.Redis.Addr)
}

func TestLoadOrEnv_EmptyPathUsesEnv(t *testing.T) {
	cfg, err := LoadOrEnv("")
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Datasets.Source)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yaml")) })
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, validConfigYAML)

	changed := make(chan *Config, 4)
	w, err := Watch(path, func(c *Config) { changed <- c }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	updated := validConfigYAML + "\n" + "metrics:\n  namespace: reloaded\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Metrics.Namespace == "reloaded" {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}
}

func TestWatch_InvalidChangeReportsError(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, validConfigYAML)

	errs := make(chan error, 4)
	w, err := Watch(path, nil, func(e error) { errs <- e })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))

	select {
	case e := <-errs:
		assert.Contains(t, e.Error(), "validation failed")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the error")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeConfig(t, t.TempDir(), validConfigYAML)
	w, err := Watch(path, nil, nil)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

//Personal.AI order the ending
