package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file:  %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print(" (not created yet)")
	}
	fmt.Println()

	dataDir := cfg.General.DataDir
	if dataDir == "" {
		dataDir = "(resolved from working directory)"
	}
	fmt.Printf("  Data dir:     %s\n", dataDir)
	fmt.Printf("  Max files:    %d\n", cfg.General.MaxFiles)
	fmt.Printf("  Theme:        %s\n", cfg.General.Theme)

	if len(cfg.Pricing.Overrides) > 0 {
		fmt.Printf("  Pricing overrides: %d model(s)\n", len(cfg.Pricing.Overrides))
	}

	return nil
}
