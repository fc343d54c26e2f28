package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "result <ref>",
		Short: "Print an archived result payload",
		Args:  cobra.ExactArgs(1),
		Run:   runResult,
	}

	cmd.Flags().Bool("json", false, "Output the full record as JSON")

	RootCmd.AddCommand(cmd)
}

func runResult(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	_, arc, _ := openManager()
	defer arc.Close()

	r, err := arc.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("result", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(r, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Println(r.Content)
}
