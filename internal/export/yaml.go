package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/casetrail/casetrail/internal/model"
)

// YAMLExporter exports sessions as YAML.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(sess *model.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	enc.SetIndent(2)
	return enc.Encode(sess)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
