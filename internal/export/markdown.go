package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/casetrail/casetrail/internal/model"
)

// MarkdownExporter exports sessions as a readable research log.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(sess *model.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", sess.Label)
	_, _ = fmt.Fprintf(w, "**ID:** %s  \n", sess.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", sess.CreatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", sess.UpdatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Interactions:** %d\n\n", len(sess.History))

	if len(sess.Metadata) > 0 {
		_, _ = fmt.Fprintf(w, "## Metadata\n\n")
		keys := make([]string, 0, len(sess.Metadata))
		for k := range sess.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "- **%s:** %v\n", k, sess.Metadata[k])
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "## History\n\n")
	for i, it := range sess.History {
		_, _ = fmt.Fprintf(w, "%d. **[%s]** %s", i+1, it.Kind, it.Query)
		if it.ResultRef != "" {
			_, _ = fmt.Fprintf(w, " -> `%s`", it.ResultRef)
		}
		_, _ = fmt.Fprintf(w, "  \n   _%s_\n\n", it.Timestamp.Format(time.RFC3339))
	}

	return nil
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
