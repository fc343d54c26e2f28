package export

import (
	"encoding/json"
	"io"

	"github.com/casetrail/casetrail/internal/model"
)

// JSONExporter exports sessions as pretty-printed JSON.
type JSONExporter struct{}

func (e *JSONExporter) Export(sess *model.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sess)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
