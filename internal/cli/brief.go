package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/archive"
)

func init() {
	cmd := &cobra.Command{
		Use:   "brief <id> [query]",
		Short: "Assemble a session's archived results into a brief",
		Long:  "Pack a session's archived results into a character budget for downstream prompting. With a query, matching payloads are preferred and excerpted around the match.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runBrief,
	}

	cmd.Flags().IntP("budget", "b", 8000, "Max output characters")

	RootCmd.AddCommand(cmd)
}

func runBrief(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")
	id := args[0]
	query := joinArgs(args[1:])

	m, arc, _ := openManager()
	defer arc.Close()

	// Surface not-found before reporting an empty brief
	if _, err := m.Load(id); err != nil {
		exitErr("brief", err)
	}

	brief, err := arc.AssembleBrief(cmd.Context(), archive.BriefParams{
		SessionID: id,
		Query:     query,
		Budget:    budget,
	})
	if err != nil {
		exitErr("brief", err)
	}

	b, _ := json.MarshalIndent(brief, "", "  ")
	fmt.Println(string(b))
}
