package widget

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rowsDocument mirrors the on-disk layout: a single "rows" key holding the
// cell grid.
type rowsDocument struct {
	Rows [][]Cell `yaml:"rows" json:"rows"`
}

// RowsFromYAML decodes a row grid from a YAML document.
func RowsFromYAML(data []byte) ([][]Cell, error) {
	var doc rowsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("widget: decode rows: %w", err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("widget: document has no rows")
	}
	return doc.Rows, nil
}

// RowsFromJSON decodes a row grid from a JSON document.
func RowsFromJSON(data []byte) ([][]Cell, error) {
	var doc rowsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("widget: decode rows: %w", err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("widget: document has no rows")
	}
	return doc.Rows, nil
}
