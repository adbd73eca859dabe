package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccview/internal/cli"
	"ccview/internal/pipeline"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List reconstructed sessions, most recent first",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	sessions, err := loadSessions()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("  No sessions found.")
		return nil
	}

	t := cli.Table{
		Title:   fmt.Sprintf("Sessions (%d)", len(sessions)),
		Headers: []string{"Session", "When", "Msgs", "Tokens", "Cost", "Summary"},
	}
	for i := range sessions {
		s := &sessions[i]
		t.Rows = append(t.Rows, []string{
			cli.ShortID(s.ID),
			cli.FormatTimeRange(s.StartTime, s.EndTime),
			cli.FormatNumber(int64(len(s.Messages))),
			cli.FormatTokens(s.TotalTokens),
			cli.FormatCost(s.TotalCost),
			pipeline.Truncate(s.Summary, 48),
		})
	}

	fmt.Print(cli.RenderTable(t))
	return nil
}
