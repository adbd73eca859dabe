package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccview/internal/cli"
	"ccview/internal/pipeline"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show estimated costs by model and token type",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(_ *cobra.Command, _ []string) error {
	sessions, err := loadSessions()
	if err != nil {
		return err
	}

	totals, models := pipeline.CostsByModel(sessions)

	if len(models) == 0 {
		fmt.Println("  No usage data found.")
		return nil
	}

	byModel := cli.Table{
		Title:   "Cost by model",
		Headers: []string{"Model", "Calls", "Input", "Output", "Total"},
	}
	for _, m := range models {
		byModel.Rows = append(byModel.Rows, []string{
			m.Model,
			cli.FormatNumber(int64(m.Calls)),
			cli.FormatTokens(m.InputTok),
			cli.FormatTokens(m.OutputTok),
			cli.FormatCost(m.Total),
		})
	}
	fmt.Print(cli.RenderTable(byModel))

	byType := cli.Table{
		Title:   "Cost by token type",
		Headers: []string{"Type", "Cost"},
		Rows: [][]string{
			{"Input", cli.FormatCost(totals.Input)},
			{"Output", cli.FormatCost(totals.Output)},
			{"Cache write", cli.FormatCost(totals.CacheCreation)},
			{"Cache read", cli.FormatCost(totals.CacheRead)},
			{"Total", cli.FormatCost(totals.Total)},
		},
	}
	fmt.Print(cli.RenderTable(byType))

	return nil
}
