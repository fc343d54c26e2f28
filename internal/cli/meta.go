package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "meta <id> <key=value> [key=value...]",
		Short: "Set session metadata",
		Long:  "Set metadata keys on a session, e.g. jurisdiction=FL entity=\"Acme Corp\".",
		Args:  cobra.MinimumNArgs(2),
		Run:   runMeta,
	}

	RootCmd.AddCommand(cmd)
}

func runMeta(cmd *cobra.Command, args []string) {
	id := args[0]

	m, arc, _ := openManager()
	defer arc.Close()

	var sessMeta map[string]any
	for _, pair := range args[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			exitErr("meta", fmt.Errorf("expected key=value, got %q", pair))
		}
		sess, err := m.SetMeta(id, key, value)
		if err != nil {
			exitErr("meta", err)
		}
		sessMeta = sess.Metadata
	}

	b, _ := json.MarshalIndent(sessMeta, "", "  ")
	fmt.Println(string(b))
}
