package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store and archive statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	m, arc, cfg := openManager()
	defer arc.Close()

	summaries, err := m.List()
	if err != nil {
		exitErr("stats", err)
	}

	archiveStats, err := arc.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	interactions := 0
	for _, s := range summaries {
		interactions += s.Interactions
	}

	out := map[string]any{
		"sessions_dir":       cfg.SessionsDir,
		"sessions":           len(summaries),
		"total_interactions": interactions,
		"archive":            archiveStats,
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
