package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/witanlabs/gridmap/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	verbose bool

	// cfg and logger are set up in PersistentPreRunE before any command runs.
	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gridmap",
	Short: "gridmap: typed records in and out of spreadsheets",
	Long: `Read, write and compare Excel workbooks (.xlsx, .xlsm).

Commands:
  diff    List the values of one column that are missing from another.
  xlsx    Inspect and edit workbooks locally.
  config  Show or change the defaults used when flags are omitted.

Defaults (worksheet, first data row, diff output file, log level) are read
from config.yaml in $GRIDMAP_CONFIG_DIR, $XDG_CONFIG_HOME/gridmap or
~/.config/gridmap.`,
	Version:           Version,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	l, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	logger.Debug("config loaded",
		zap.Int("sheet", cfg.Sheet),
		zap.Int("start_row", cfg.StartRow),
		zap.String("output", cfg.Output))
	return nil
}

// newLogger builds the production logger at the configured level; verbose
// forces debug.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func Execute() error {
	return rootCmd.Execute()
}
