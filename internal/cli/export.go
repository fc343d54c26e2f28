package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a session",
		Long:  "Export one session as json, yaml, or markdown.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, or md")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	exp, err := export.New(format)
	if err != nil {
		exitErr("export", err)
	}

	m, arc, _ := openManager()
	defer arc.Close()

	sess, err := m.Load(args[0])
	if err != nil {
		exitErr("export", err)
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		w = f
	}

	if err := exp.Export(sess, w); err != nil {
		exitErr("export", err)
	}
}
