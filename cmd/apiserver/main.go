// API server entry point for CentralBankTalk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/CentralBankTalk/internal/app"
	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *httpPort); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, httpPort int) error {
	cfg, err := config.LoadOrEnv(configPath)
	if err != nil {
		return err
	}
	if httpPort > 0 {
		cfg.Server.Port = httpPort
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	logger.Info("Starting CentralBankTalk API server",
		logging.String("version", version),
		logging.String("commit", commit),
		logging.String("addr", cfg.Server.Addr()),
		logging.String("datasets", cfg.Datasets.Source),
	)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble service", logging.Err(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to release resources", logging.Err(err))
		}
	}()

	if configPath != "" {
		w, err := a.WatchConfig(configPath)
		if err != nil {
			logger.Warn("Config watch disabled", logging.Err(err))
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx, version); err != nil {
		logger.Error("HTTP server error", logging.Err(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

//Personal.AI order the ending
