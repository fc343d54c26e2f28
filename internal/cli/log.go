package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log <id> <query>",
		Short: "Record a research step in a session",
		Args:  cobra.MinimumNArgs(2),
		Run:   runLog,
	}

	cmd.Flags().StringP("kind", "k", "search", "Interaction kind: crawl, search, or chat")
	cmd.Flags().StringP("ref", "r", "", "Result ref of an archived payload")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	ref, _ := cmd.Flags().GetString("ref")
	id := args[0]
	query := joinArgs(args[1:])

	m, arc, _ := openManager()
	defer arc.Close()

	sess, err := m.Append(id, model.Interaction{
		Query:     query,
		ResultRef: ref,
		Kind:      kind,
	})
	if err != nil {
		exitErr("log", err)
	}

	b, _ := json.Marshal(sess.History[len(sess.History)-1])
	fmt.Println(string(b))
}
