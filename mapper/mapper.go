// Package mapper converts typed filter structs to and from field trees.
//
// Filters are ordinary structs with json tags that expose a schema through
// criteria.Filter. The mapper goes through encoding/json, so any field type
// with JSON support works, including the null package's nullable types:
//
//	type UserFilter struct {
//	    Gender   null.String `json:"gender"`
//	    AgeStart null.Int    `json:"ageStart"`
//	}
//
//	func (*UserFilter) FilterSchema() *criteria.Schema { return userSchema }
//
// Field order in the produced tree follows the schema, never struct order.
package mapper

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// Mapper is the JSON based criteria.Mapper.
type Mapper struct{}

// New returns a Mapper.
func New() *Mapper { return &Mapper{} }

// SchemaOf returns the schema of a recognized filter type.
func (*Mapper) SchemaOf(target any) (*criteria.Schema, bool) {
	return criteria.SchemaOf(target)
}

// ToFieldTree returns the field tree of filter in schema order. Null fields,
// empty objects and empty arrays are omitted.
func (m *Mapper) ToFieldTree(filter any) (*criteria.Tree, error) {
	schema, ok := m.SchemaOf(filter)
	if !ok {
		return nil, criteria.Unsupported("", filter)
	}

	data, err := json.Marshal(filter)
	if err != nil {
		return nil, errors.Wrapf(err, "mapper: marshal %T", filter)
	}

	return DecodeJSON(data, schema)
}

// FromFieldTree coerces t against the schema of target and hydrates target,
// which must be a pointer to a filter. Fields absent from t are left as they
// are on target.
func (m *Mapper) FromFieldTree(t *criteria.Tree, target any) error {
	schema, ok := m.SchemaOf(target)
	if !ok {
		return criteria.Unsupported("", target)
	}

	coerced, err := Coerce(t, schema)
	if err != nil {
		return err
	}

	data, err := json.Marshal(nativeTree(coerced))
	if err != nil {
		return errors.Wrap(err, "mapper: marshal field tree")
	}

	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "mapper: hydrate %T", target)
	}
	return nil
}

// DecodeJSON reads a JSON object into a field tree ordered and typed after
// schema. Fields not declared in schema, nulls, empty objects and empty
// arrays are dropped.
func DecodeJSON(data []byte, schema *criteria.Schema) (*criteria.Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "mapper: decode JSON object")
	}

	tree, err := fromObject(nil, raw, schema)
	if err != nil {
		return nil, err
	}
	return Coerce(tree, schema)
}

func fromObject(prefix criteria.FieldPath, raw map[string]any, schema *criteria.Schema) (*criteria.Tree, error) {
	tree := criteria.NewTree()

	for _, field := range schema.Fields() {
		v, ok := raw[field.Name]
		if !ok {
			continue
		}

		path := prefix.Append(criteria.Name(field.Name))
		node, keep, err := fromValue(path, v, field, false)
		if err != nil {
			return nil, err
		}
		if keep {
			tree.Set(field.Name, node)
		}
	}

	return tree, nil
}

// fromValue converts a decoded JSON value. keep is false for values that are
// omitted from the tree.
func fromValue(path criteria.FieldPath, v any, field *criteria.Field, element bool) (criteria.Node, bool, error) {
	switch val := v.(type) {
	case nil:
		return criteria.Node{}, false, nil

	case map[string]any:
		if field.Schema == nil || (field.Kind == criteria.FieldArray && !element) {
			return criteria.Node{}, false, &FieldError{Path: path.String(), Value: "object", Expected: field.Kind.String()}
		}
		sub, err := fromObject(path, val, field.Schema)
		if err != nil {
			return criteria.Node{}, false, err
		}
		if sub.Len() == 0 {
			return criteria.Node{}, false, nil
		}
		return criteria.ObjectNode(sub), true, nil

	case []any:
		if field.Kind != criteria.FieldArray || element {
			return criteria.Node{}, false, &FieldError{Path: path.String(), Value: "array", Expected: field.Kind.String()}
		}
		items := make([]criteria.Node, 0, len(val))
		for _, item := range val {
			node, keep, err := fromValue(path.Append(criteria.Index(len(items))), item, field, true)
			if err != nil {
				return criteria.Node{}, false, err
			}
			if keep {
				items = append(items, node)
			}
		}
		if len(items) == 0 {
			return criteria.Node{}, false, nil
		}
		return criteria.ArrayNode(items...), true, nil

	case json.Number:
		if i, err := val.Int64(); err == nil {
			return criteria.ScalarNode(criteria.Int(i)), true, nil
		}
		f, err := val.Float64()
		if err != nil {
			return criteria.Node{}, false, &FieldError{Path: path.String(), Value: val.String(), Expected: "number", Err: err}
		}
		return criteria.ScalarNode(criteria.Float(f)), true, nil

	case string:
		return criteria.ScalarNode(criteria.String(val)), true, nil

	case bool:
		return criteria.ScalarNode(criteria.Bool(val)), true, nil

	default:
		return criteria.Node{}, false, errors.Errorf("mapper: unexpected JSON value %T at %s", v, path)
	}
}

// nativeTree turns a tree into values encoding/json writes back in the shape
// filter structs expect.
func nativeTree(t *criteria.Tree) map[string]any {
	out := make(map[string]any, t.Len())
	for _, name := range t.Names() {
		node, _ := t.Get(name)
		out[name] = nativeNode(node)
	}
	return out
}

func nativeNode(n criteria.Node) any {
	switch n.Kind() {
	case criteria.NodeObject:
		return nativeTree(n.Object())
	case criteria.NodeArray:
		items := make([]any, len(n.Items()))
		for i, item := range n.Items() {
			items[i] = nativeNode(item)
		}
		return items
	default:
		if t, ok := n.Scalar().AsTime(); ok {
			return t.Format(time.RFC3339Nano)
		}
		return n.Scalar().Interface()
	}
}
