package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ccview/internal/cli"
	"ccview/internal/search"
	"ccview/internal/store"
)

var flagPreviewLen int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search session content",
	Long: "Case-insensitive substring search across message text, tool names,\n" +
		"tool inputs, summaries, and system output.",
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagPreviewLen, "preview", search.DefaultPreviewLen, "Preview length")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := args[0]

	sessions, err := loadSessions()
	if err != nil {
		return err
	}

	results := search.Search(query, sessions, flagPreviewLen)
	if len(results) == 0 {
		fmt.Println("  No matches.")
		return nil
	}

	recordQuery(query)

	t := cli.Table{
		Title:   fmt.Sprintf("Matches for %q (%d)", query, len(results)),
		Headers: []string{"Session", "Type", "Preview"},
	}
	for _, r := range results {
		entryType := r.Entry.Type
		if entryType == "" {
			entryType = "?"
		}
		t.Rows = append(t.Rows, []string{
			cli.ShortID(r.Session.ID),
			entryType,
			r.Preview,
		})
	}

	fmt.Print(cli.RenderTable(t))
	return nil
}

// recordQuery persists the accepted query. History failures never block a
// search.
func recordQuery(query string) {
	qs, err := store.Open(store.Path())
	if err != nil {
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "  history: %v\n", err)
		}
		return
	}
	defer qs.Close()
	_ = qs.Record(query)
}
