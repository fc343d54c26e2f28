package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search sessions by term",
		Long:  "Search session labels and metadata (and query history, when configured) for a case-insensitive substring. An empty term matches everything.",
		Run:   runSearch,
	}

	cmd.Flags().Bool("json", false, "Output JSON instead of a table")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")
	term := joinArgs(args)

	m, arc, _ := openManager()
	defer arc.Close()

	summaries, err := m.Search(term)
	if err != nil {
		exitErr("search", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(summaries, "", "  ")
		fmt.Println(string(b))
		return
	}

	renderSummaries(summaries)
}
