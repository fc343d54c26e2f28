// Package export renders sessions in interchange formats.
package export

import (
	"fmt"
	"io"

	"github.com/casetrail/casetrail/internal/model"
)

// Exporter renders one session to a writer.
type Exporter interface {
	Export(sess *model.Session, w io.Writer) error
	Extension() string
}

// New returns the exporter for a format name.
func New(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}
