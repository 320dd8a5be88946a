// Package cli implements the cbtalk command line. Commands read datasets
// through the same repository the API server uses, so no server is needed.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/CentralBankTalk/internal/app"
	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const (
	OutputTable   = "table"
	OutputText    = "text"
	OutputJSON    = "json"
	OutputGeoJSON = "geojson"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	DataDir      string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	ConfigPath   string
	Logger       logging.Logger
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cbtalk",
		Short: "CentralBankTalk atlas: choropleth colors for central bank indicators",
		Long: "cbtalk joins world boundary features to central bank metadata and colors them\n" +
			"by the selected indicator. It serves the HTTP API and answers the same\n" +
			"questions offline from the configured datasets.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./cbtalk.yaml)")
	pf.StringVar(&opts.DataDir, "data-dir", "", "read datasets from this directory (overrides datasets.*)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputTable, "output format (table, text, json; map also takes geojson)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable color swatches")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")

	cmd.AddCommand(
		newServeCmd(),
		newIndicatorsCmd(),
		newPalettesCmd(),
		newMapCmd(),
		newFeatureCmd(),
		newInstitutionCmd(),
		newColorCmd(),
		newDarkenCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	switch opts.OutputFormat {
	case OutputTable, OutputText, OutputJSON, OutputGeoJSON:
	default:
		return errors.New(errors.ErrCodeValidation, "unknown output format").WithDetail(opts.OutputFormat)
	}

	cfg, path, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts, cmd.Name() == "serve")
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		ConfigPath:   path,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		NoColor:      opts.NoColor,
		Timeout:      opts.Timeout,
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
// It returns the path that was read, or "" when none was.
func initConfig(opts *RootOptions) (*config.Config, string, error) {
	path := opts.ConfigPath
	if path == "" {
		path = findConfig()
	}
	cfg, err := config.LoadOrEnv(path)
	if err != nil {
		return nil, "", err
	}
	if opts.DataDir != "" {
		cfg.Datasets.Source = config.SourceFile
		cfg.Datasets.BaseDir = opts.DataDir
	}
	return cfg, path, nil
}

func findConfig() string {
	searchPaths := []string{"./cbtalk.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".cbtalk", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/cbtalk/config.yaml")

	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger writes to stderr. One-shot commands default to warn so that
// stdout stays machine-readable; serve follows the log section.
func initLogger(cfg *config.Config, opts *RootOptions, serving bool) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	switch level {
	case "":
		level = logging.LevelWarn
		if serving {
			level = cfg.Log.Level
		}
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return nil, errors.New(errors.ErrCodeValidation, "unknown log level").WithDetail(opts.LogLevel)
	}

	logCfg := logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if serving {
		logCfg.Format = cfg.Log.Format
		if len(cfg.Log.OutputPaths) > 0 {
			logCfg.OutputPaths = cfg.Log.OutputPaths
		}
	}
	return logging.NewLogger(logCfg)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// withApp assembles the atlas service for one command and releases it
// afterwards. The command context carries the global timeout.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, cc *CLIContext) error) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cc.Config, cc.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			cc.Logger.Warn("Failed to release resources", logging.Err(cerr))
		}
		_ = cc.Logger.Sync()
	}()

	ctx := cmd.Context()
	if cc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.Timeout)
		defer cancel()
	}
	return fn(ctx, a, cc)
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

//Personal.AI order the ending
