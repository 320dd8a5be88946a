package app

import (
	"context"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
)

// Run serves HTTP until ctx is done, then drains in-flight requests. A
// listen failure is returned immediately.
func (a *App) Run(ctx context.Context, version string) error {
	srv := a.Server(version)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("Shutdown signal received")
	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

// WatchConfig follows configPath and retunes the log level on every valid
// change. Other settings take effect on restart.
func (a *App) WatchConfig(configPath string) (*config.Watcher, error) {
	return config.Watch(configPath,
		func(cfg *config.Config) {
			a.applyLogLevel(cfg.Log.Level)
		},
		func(err error) {
			a.Logger.Warn("Ignoring invalid config change", logging.Err(err))
		},
	)
}

func (a *App) applyLogLevel(level string) {
	lc, ok := a.Logger.(logging.LevelController)
	if !ok || lc.GetLevel() == level {
		return
	}
	lc.SetLevel(level)
	a.Logger.Info("Log level changed", logging.String("level", level))
}

//Personal.AI order the ending
