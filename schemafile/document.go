package schemafile

import (
	"encoding/json"

	"github.com/nrfta/criteria-go"
)

// Document is a filter backed by a loaded schema instead of a Go struct.
// It marshals as a plain JSON object, so the object mapper treats it like
// any compiled filter.
type Document struct {
	schema *criteria.Schema
	values map[string]any
}

// NewDocument returns an empty document for schema.
func NewDocument(schema *criteria.Schema) *Document {
	return &Document{schema: schema, values: map[string]any{}}
}

// FilterSchema implements criteria.Filter.
func (d *Document) FilterSchema() *criteria.Schema { return d.schema }

// Values returns the decoded field values.
func (d *Document) Values() map[string]any { return d.values }

func (d *Document) MarshalJSON() ([]byte, error) {
	if d.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.values)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	values := map[string]any{}
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	d.values = values
	return nil
}
