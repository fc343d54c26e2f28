package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/archive"
	"github.com/casetrail/casetrail/internal/fetch"
	"github.com/casetrail/casetrail/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fetch <id> <url>",
		Short: "Scrape a URL and record it in a session",
		Long:  "Scrape a URL through the configured backend, archive the payload, and append a crawl interaction referencing it.",
		Args:  cobra.ExactArgs(2),
		Run:   runFetch,
	}

	RootCmd.AddCommand(cmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	id, url := args[0], args[1]

	m, arc, cfg := openManager()
	defer arc.Close()

	// Fail before the network call if the session is gone
	if _, err := m.Load(id); err != nil {
		exitErr("fetch", err)
	}

	client := fetch.NewClient(cfg.Scrape.Endpoint, cfg.Scrape.APIKey, cfg.Scrape.RetryMax)
	page, err := client.Scrape(cmd.Context(), url)
	if err != nil {
		exitErr("fetch", err)
	}

	ref, err := arc.Put(cmd.Context(), archive.Result{
		SessionID: id,
		URL:       url,
		Kind:      "crawl",
		Content:   page.Markdown,
	})
	if err != nil {
		exitErr("fetch", err)
	}

	if _, err := m.Append(id, model.Interaction{
		Query:     url,
		ResultRef: ref,
		Kind:      "crawl",
	}); err != nil {
		exitErr("fetch", err)
	}

	out := map[string]any{
		"ref":   ref,
		"url":   url,
		"title": page.Title,
		"bytes": len(page.Markdown),
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
