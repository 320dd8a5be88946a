package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/database/redis"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/internal/testutil"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

var datasets = map[string]string{
	config.DefaultPathCountryNameToCode:    `{"Japan":"JPN","Antarctica":"ATA"}`,
	config.DefaultPathCountryToInstitution: `{"JPN":"bank_of_japan"}`,
	config.DefaultPathInstitutionMetadata:  `{
		"bank_of_japan":{"name":"Bank of Japan","number_of_speeches":12},
		"reserve_bank_of_fiji":{"number_of_speeches":4}
	}`,
	config.DefaultPathGeography: `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"Japan","ISO_A2":"JP"},"geometry":null},
		{"type":"Feature","properties":{"name":"Antarctica","ISO_A2":"AQ"},"geometry":null}
	]}`,
}

func writeDatasets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for p, body := range datasets {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	return dir
}

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Datasets.BaseDir = writeDatasets(t)
	cfg.Metrics.Enabled = true
	cfg.CORS.AllowedOrigins = []string{"*"}
	config.ApplyDefaults(cfg)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNew_FileSource(t *testing.T) {
	a, err := New(fileConfig(t), logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Equal(t, "file://"+a.Config.Datasets.BaseDir, a.Repository.SourceName())
	assert.NotNil(t, a.Metrics)
	require.Len(t, a.HealthCheckers(), 1)
	assert.Equal(t, "datasets", a.HealthCheckers()[0].Name())

	res, err := a.Service.Render(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Features, 1, "Antarctica is excluded")
	assert.Equal(t, "Japan", res.Features[0].Name)
	assert.Equal(t, "#0f172a", res.Features[0].Color)
}

func TestNew_UnknownSource(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Datasets.Source = "ftp"

	_, err := New(cfg, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNew_HTTPSource(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Datasets.Source = config.SourceHTTP
	cfg.Datasets.BaseURL = "http://datasets.example/data"

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	assert.Equal(t, "http://datasets.example/data", a.Repository.SourceName())
}

func TestNew_RedisTier(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := fileConfig(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Addr = mr.Addr()

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	checkers := a.HealthCheckers()
	require.Len(t, checkers, 2)
	assert.Equal(t, "redis", checkers[1].Name())

	_, err = a.Service.Render(context.Background(), "speeches")
	require.NoError(t, err)
	assert.True(t, mr.Exists(config.DefaultRedisKeyPrefix+config.DefaultPathGeography))
	assert.NoError(t, a.Ping(context.Background()))
}

func TestNew_RedisUnavailableIsSkipped(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Addr = "127.0.0.1:1"
	cfg.Cache.Redis.DialTimeout = 100 * time.Millisecond

	logger := testutil.NewMockLogger()
	a, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Len(t, a.HealthCheckers(), 1)
	entry, ok := logger.Find("warn", "Redis cache unavailable, continuing without it")
	require.True(t, ok)
	addr, _ := entry.Field("addr")
	assert.Equal(t, "127.0.0.1:1", addr)
}

func TestNew_InjectedRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	a, err := New(fileConfig(t), nil, WithRedisClient(client))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.NoError(t, client.Ping(context.Background()), "injected client is owned by the caller")
}

func TestApp_Router(t *testing.T) {
	a, err := New(fileConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	router := a.Router("test")

	for path, want := range map[string]int{
		"/healthz":                             http.StatusOK,
		"/readyz":                              http.StatusOK,
		"/metrics":                             http.StatusOK,
		"/api/v1/features/Japan/value":         http.StatusOK,
		"/api/v1/choropleth?indicator=unknown": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestApp_PingAfterClose(t *testing.T) {
	a, err := New(fileConfig(t), nil)
	require.NoError(t, err)

	require.NoError(t, a.Ping(context.Background()))
	require.NoError(t, a.Close())

	err = a.Ping(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
	assert.NoError(t, a.Close(), "close is idempotent")
}

//Personal.AI order the ending
