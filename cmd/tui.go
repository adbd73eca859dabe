package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ccview/internal/store"
	"ccview/internal/tui"
	"ccview/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive session browser",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.General.Theme)

	log := newLogger()
	eng, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	queries, err := store.Open(store.Path())
	if err != nil {
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "  history unavailable: %v\n", err)
		}
		queries = nil
	} else {
		defer queries.Close()
	}

	watchDir := flagDataDir
	if watchDir == "" {
		watchDir = cfg.General.DataDir
	}

	app := tui.NewApp(eng, queries, watchDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
