package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session's history",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("json", false, "Output JSON instead of text")
	cmd.Flags().Bool("digest", false, "Show an activity summary instead of full history")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")
	digest, _ := cmd.Flags().GetBool("digest")

	m, arc, _ := openManager()
	defer arc.Close()

	if digest {
		d, err := m.Digest(args[0])
		if err != nil {
			exitErr("show", err)
		}
		b, _ := json.MarshalIndent(d, "", "  ")
		fmt.Println(string(b))
		return
	}

	sess, err := m.Load(args[0])
	if err != nil {
		exitErr("show", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(sess, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Println(headerStyle.Render(sess.Label))
	fmt.Printf("%s\n", idStyle.Render(sess.ID))
	fmt.Printf("Created %s, updated %s\n", dateStyle.Render(sess.CreatedAt.Local().Format(time.RFC3339)), dateStyle.Render(sess.UpdatedAt.Local().Format(time.RFC3339)))

	if len(sess.Metadata) > 0 {
		keys := make([]string, 0, len(sess.Metadata))
		for k := range sess.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, sess.Metadata[k])
		}
	}

	fmt.Println()
	if len(sess.History) == 0 {
		fmt.Println("No interactions recorded yet.")
		return
	}
	for i, it := range sess.History {
		fmt.Printf("%3d. [%s] %s\n", i+1, countStyle.Render(it.Kind), it.Query)
		if it.ResultRef != "" {
			fmt.Printf("     %s\n", idStyle.Render(it.ResultRef))
		}
		fmt.Printf("     %s\n", dateStyle.Render(it.Timestamp.Local().Format(time.RFC3339)))
	}
}
