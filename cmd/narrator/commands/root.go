// Package commands implements the narrator CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/offbeam/narrator/cmd/narrator/internal/config"
)

var (
	// Global flags
	verbose bool

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "narrator",
	Short: "Perpetual multi-persona commentary on your screen and camera",
	Long: `narrator - a perpetual spoken commentary loop.

A roster of personas takes turns reacting to what your webcam and screen
show right now. Each turn is generated by a vision model, spoken through
ElevenLabs, and captioned, while the next turn is already being prepared.

Configuration is stored in the OS config directory:
  macOS:   ~/Library/Application Support/narrator/config.yaml
  Linux:   ~/.config/narrator/config.yaml
  Windows: %AppData%/narrator/config.yaml

API keys may also come from OPENAI_API_KEY, GEMINI_API_KEY and
ELEVENLABS_API_KEY. Flags override both.

Examples:
  # Run with the default three personas and terminal captions
  narrator run

  # Two personas, captions in a browser overlay at http://127.0.0.1:8787/
  narrator run --disable-adorno --subtitle-sink overlay

  # Gemini backend with a specific vision model
  narrator run --backend gemini --vision-model gemini-2.0-flash`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configLoadErr stores the error from config.Load() for deferred reporting.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		// Store error for deferred reporting — commands that need config
		// will get a clear error via GetConfig(). This avoids failing
		// commands like 'narrator version'.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// GetConfig returns the global configuration.
// Returns an error if the config could not be loaded (e.g., HOME not set).
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
