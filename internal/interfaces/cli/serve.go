package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/CentralBankTalk/internal/app"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the atlas HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if host != "" {
				cc.Config.Server.Host = host
			}
			if port > 0 {
				cc.Config.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, cc)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

// Serve runs the API server until ctx is done. When the configuration came
// from a file, the file is watched and log level changes apply live.
func Serve(ctx context.Context, cc *CLIContext) error {
	a, err := app.New(cc.Config, cc.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			cc.Logger.Error("Failed to release resources", logging.Err(cerr))
		}
		_ = cc.Logger.Sync()
	}()

	if cc.ConfigPath != "" {
		w, err := a.WatchConfig(cc.ConfigPath)
		if err != nil {
			cc.Logger.Warn("Config watch disabled", logging.String("path", cc.ConfigPath), logging.Err(err))
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	cc.Logger.Info("Starting CentralBankTalk API server",
		logging.String("version", Version),
		logging.String("addr", cc.Config.Server.Addr()),
		logging.String("source", a.Repository.SourceName()),
	)
	return a.Run(ctx, Version)
}

//Personal.AI order the ending
