package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session and its archived results",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	m, arc, _ := openManager()
	defer arc.Close()

	if err := m.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}

	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}
