package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
)

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, "test") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_RunReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	cfg := fileConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Error(t, a.Run(context.Background(), "test"))
}

func TestApp_WatchConfigRetunesLogLevel(t *testing.T) {
	logger, err := logging.NewLogger(logging.LogConfig{Level: logging.LevelInfo, OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	lc := logger.(logging.LevelController)

	cfg := fileConfig(t)
	a, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	path := filepath.Join(t.TempDir(), "cbtalk.yaml")
	yaml := func(level string) []byte {
		return []byte(fmt.Sprintf("datasets:\n  base_dir: %q\nlog:\n  level: %s\n", cfg.Datasets.BaseDir, level))
	}
	require.NoError(t, os.WriteFile(path, yaml("info"), 0o600))

	w, err := a.WatchConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(path, yaml("debug"), 0o600))
	assert.Eventually(t, func() bool { return lc.GetLevel() == "debug" }, 5*time.Second, 20*time.Millisecond)
}

func TestApp_ApplyLogLevelIgnoresPlainLoggers(t *testing.T) {
	a := &App{Config: &config.Config{}, Logger: logging.NewNopLogger()}
	assert.NotPanics(t, func() { a.applyLogLevel("debug") })
}

//Personal.AI order the ending
