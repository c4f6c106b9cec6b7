package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/fxjournal/config"
	"github.com/rustyeddy/fxjournal/internal/app"
	"github.com/rustyeddy/fxjournal/internal/logging"
	"github.com/rustyeddy/fxjournal/internal/validation"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxjournal",
	Short: "A personal forex trading journal",
	Long: `fxjournal keeps a journal of your forex trades on this device.

It provides tools for:
  - Recording, editing and deleting trades
  - Profit/loss, win rate and per-session/mood/pair statistics
  - An economic calendar of upcoming releases
  - Exporting the journal to CSV or Org-mode

State lives in a local data directory (or SQLite file) chosen by the
configuration. Settings come from an optional config file, a .env file and
FXJOURNAL_* environment variables, in that order.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	envFile  string
	logLevel string
	dataDir  string
	dbPath   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file with FXJOURNAL_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "use file storage in this directory")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "use SQLite storage at this path")
}

// loadConfig resolves settings: defaults, then the config file, then the
// environment, then command line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	switch {
	case dbPath != "":
		cfg.Storage = config.StorageConfig{Type: "sqlite", DBPath: dbPath}
	case dataDir != "":
		cfg.Storage = config.StorageConfig{Type: "file", Dir: dataDir}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return a, nil
}

// formError turns validation failures into one line per field.
func formError(what string, err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return err
	}
	lines := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		lines = append(lines, fmt.Sprintf("  %s %s", fe.Field, fe.Msg))
	}
	return fmt.Errorf("invalid %s:\n%s", what, strings.Join(lines, "\n"))
}
