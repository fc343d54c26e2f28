package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List research sessions",
		Long:  "List all research sessions, most recently updated first.",
		Run:   runList,
	}

	cmd.Flags().Bool("json", false, "Output JSON instead of a table")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	m, arc, _ := openManager()
	defer arc.Close()

	summaries, err := m.List()
	if err != nil {
		exitErr("list", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(summaries, "", "  ")
		fmt.Println(string(b))
		return
	}

	renderSummaries(summaries)
}

func renderSummaries(summaries []model.Summary) {
	if len(summaries) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(summaries))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Label")+"\t"+titleStyle.Render("Steps")+"\t"+titleStyle.Render("Updated")+"\t")

	for _, s := range summaries {
		label := s.Label
		if len(label) > 50 {
			label = label[:47] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			idStyle.Render(s.ID),
			label,
			countStyle.Render(strconv.Itoa(s.Interactions)),
			dateStyle.Render(relativeTime(s.UpdatedAt)))
	}

	_ = w.Flush()
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Local().Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Local().Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Local().Format("Jan 02 15:04")
	default:
		return t.Local().Format("2006-01-02")
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
