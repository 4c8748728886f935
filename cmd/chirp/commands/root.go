package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aviarylab/chirp/cmd/chirp/internal/config"
)

var (
	// Global flags
	verbose bool

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chirp",
	Short: "Cluster bioacoustic snippet detections for triage",
	Long: `chirp - group acoustically similar snippet detections for human review.

Given a batch of pre-computed per-snippet acoustic features (MFCCs,
spectral statistics, chroma, zero-crossing rate, energy), chirp clusters
the snippets with density-based clustering and lays them out in 2-D so a
reviewer can label whole groups at once.

Examples:
  # Cluster a features file, result JSON on stdout
  chirp cluster -f features.json

  # Keep the run for later review
  chirp cluster -f features.json --save
  chirp runs list
  chirp runs show <id>`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// configLoadErr stores the error from config.Load() for deferred
// reporting, so commands that never touch config (like version) still run.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		configLoadErr = err
	} else {
		globalConfig = cfg
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg),
	})))
}

// logLevel resolves the effective log level: --verbose wins, then the
// configured level, then info.
func logLevel(cfg *config.Config) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if cfg == nil {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// GetConfig returns the global configuration, loading it on demand.
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
