package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rename <id> <label>",
		Short: "Rename a session",
		Args:  cobra.MinimumNArgs(2),
		Run:   runRename,
	}

	RootCmd.AddCommand(cmd)
}

func runRename(cmd *cobra.Command, args []string) {
	m, arc, _ := openManager()
	defer arc.Close()

	sess, err := m.Rename(args[0], joinArgs(args[1:]))
	if err != nil {
		exitErr("rename", err)
	}

	b, _ := json.Marshal(map[string]string{"id": sess.ID, "label": sess.Label})
	fmt.Println(string(b))
}
