// Package cmd implements the ccview command line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ccview/internal/config"
	"ccview/internal/engine"
	"ccview/internal/model"
	"ccview/internal/pipeline"
)

var (
	flagDataDir  string
	flagMaxFiles int
	flagFilter   string
	flagFrom     string
	flagTo       string
	flagVerbose  bool
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "ccview",
	Short: "Browse Claude Code sessions",
	Long:  "Reconstruct, search, and cost Claude Code conversation logs.",
	RunE:  runSessions,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Log directory (default: resolved from cwd)")
	rootCmd.PersistentFlags().IntVar(&flagMaxFiles, "max-files", 0, "Most-recently-modified files to scan (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagFilter, "filter", "f", "", "Date preset: today, yesterday, week, month")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Range start (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Range end (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log parse warnings")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// newLogger builds the process logger. Warnings about malformed lines and
// unknown models only show up under --verbose.
func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadConfig reads the config file and applies pricing overrides once.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  config: %v (using defaults)\n", err)
	}
	config.ApplyPricingOverrides(cfg.Pricing)
	return cfg
}

// buildEngine assembles the engine from flags and config.
func buildEngine(cfg config.Config, log *zap.Logger) (*engine.Engine, error) {
	filter, err := buildFilter()
	if err != nil {
		return nil, err
	}

	maxFiles := flagMaxFiles
	if maxFiles <= 0 {
		maxFiles = cfg.General.MaxFiles
	}

	var resolve engine.PathResolver
	switch {
	case flagDataDir != "":
		resolve = engine.FixedDir(flagDataDir)
	case cfg.General.DataDir != "":
		resolve = engine.FixedDir(cfg.General.DataDir)
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		resolve = engine.WorkspaceDir(cwd)
	}

	return engine.New(resolve, pipeline.Options{
		MaxFiles: maxFiles,
		Filter:   filter,
		Logger:   log,
	}), nil
}

func buildFilter() (*pipeline.DateFilter, error) {
	if flagFilter != "" {
		switch pipeline.DatePreset(flagFilter) {
		case pipeline.PresetToday, pipeline.PresetYesterday, pipeline.PresetWeek, pipeline.PresetMonth:
			return &pipeline.DateFilter{Preset: pipeline.DatePreset(flagFilter)}, nil
		default:
			return nil, fmt.Errorf("unknown date preset %q", flagFilter)
		}
	}

	if flagFrom == "" && flagTo == "" {
		return nil, nil
	}

	f := &pipeline.DateFilter{}
	if flagFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", flagFrom, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing --from: %w", err)
		}
		f.From = &t
	}
	if flagTo != "" {
		t, err := time.ParseInLocation("2006-01-02", flagTo, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing --to: %w", err)
		}
		// End of the named day.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	return f, nil
}

// loadSessions is the shared loading path for the non-interactive commands.
func loadSessions() ([]model.Session, error) {
	cfg := loadConfig()
	log := newLogger()

	eng, err := buildEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	sessions := eng.Sessions()
	if state, msg := eng.State(); state == engine.StateError {
		return nil, fmt.Errorf("%s", msg)
	}
	return sessions, nil
}
