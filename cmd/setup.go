package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"ccview/internal/config"
	"ccview/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	dataDir := cfg.General.DataDir
	maxFiles := strconv.Itoa(cfg.General.MaxFiles)
	themeName := cfg.General.Theme

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Log directory").
				Description("Leave empty to resolve from the working directory.").
				Value(&dataDir),
			huh.NewInput().
				Title("Max files per load").
				Description("How many recently modified log files to scan (10-10000).").
				Value(&maxFiles).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DataDir = dataDir
	cfg.General.MaxFiles, _ = strconv.Atoi(maxFiles)
	cfg.General.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Saved %s\n", config.ConfigPath())
	return nil
}
