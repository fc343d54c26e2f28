package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "create [label]",
		Short: "Create a new research session",
		Long:  "Create a new research session. Without a label, a timestamped default is used.",
		Run:   runCreate,
	}

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	label := strings.Join(args, " ")

	m, arc, _ := openManager()
	defer arc.Close()

	sess, err := m.Create(label)
	if err != nil {
		exitErr("create", err)
	}

	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}
