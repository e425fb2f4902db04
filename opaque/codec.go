// Package opaque implements the base64 token codec.
//
// The full field tree is written as a JSON object, in field order, and
// base64 encoded with the standard alphabet and padding. Booleans stay JSON
// booleans, so {flag: true} carries "flag":true where the plain codec would
// write flag:1. Any value can be carried, including the characters the
// plain format reserves.
//
// Example:
//
//	codec := opaque.NewCodec()
//	token, _ := codec.Encode(tree)          // "eyJ0aXRsZSI6ImxvZnQifQ=="
//	tree, err := codec.Decode(token, schema)
package opaque

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// Name identifies the opaque codec.
const Name = "opaque"

var encoding = base64.StdEncoding.Strict()

// Codec is the criteria.Codec for base64 JSON tokens.
type Codec struct{}

// NewCodec returns an opaque codec.
func NewCodec() *Codec { return &Codec{} }

func (*Codec) Name() string { return Name }

// Encode renders t as JSON and base64 encodes it. A nil tree encodes as {}.
func (*Codec) Encode(t *criteria.Tree) (string, error) {
	if t == nil {
		t = criteria.NewTree()
	}

	data, err := t.MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "opaque: marshal field tree")
	}

	return encoding.EncodeToString(data), nil
}

// Decode base64 decodes s and parses the JSON object it holds, typing numbers
// and dates after the fields declared in schema. Fields not declared in
// schema are dropped.
//
// A nil schema fails with criteria.ErrUnsupportedEncoding before s is looked
// at. Invalid base64, invalid JSON, JSON that is not an object and objects
// repeating a member name fail with criteria.ErrMalformedInput. An empty string decodes to an empty tree.
func (*Codec) Decode(s string, schema *criteria.Schema) (*criteria.Tree, error) {
	if schema == nil {
		return nil, criteria.Unsupported(Name, nil)
	}

	if s == "" {
		return criteria.NewTree(), nil
	}

	data, err := encoding.DecodeString(s)
	if err != nil {
		return nil, criteria.Malformed(s, "invalid base64").Wrap(err)
	}

	tree, err := parse(data, schema)
	if err != nil {
		return nil, criteria.Malformed(s, "invalid JSON payload").Wrap(err)
	}

	return tree, nil
}

func parse(data []byte, schema *criteria.Schema) (*criteria.Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("expected a JSON object, got %v", tok)
	}

	tree, err := parseObject(dec, schema)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the JSON object")
	}

	return tree, nil
}

// parseObject reads the members of an object whose '{' was already consumed.
// A member name may appear once per object, declared or not.
func parseObject(dec *json.Decoder, schema *criteria.Schema) (*criteria.Tree, error) {
	tree := criteria.NewTree()
	seen := map[string]bool{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("expected a field name, got %v", tok)
		}
		if seen[name] {
			return nil, errors.Errorf("duplicate member %q", name)
		}
		seen[name] = true

		field, known := schema.Lookup(name)
		if schema != nil && !known {
			var skipped json.RawMessage
			if err := dec.Decode(&skipped); err != nil {
				return nil, err
			}
			continue
		}

		node, err := parseValue(dec, field)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", name)
		}
		tree.Set(name, node)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return tree, nil
}

func parseValue(dec *json.Decoder, field *criteria.Field) (criteria.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return criteria.Node{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			var sub *criteria.Schema
			if field != nil {
				sub = field.Schema
			}
			obj, err := parseObject(dec, sub)
			if err != nil {
				return criteria.Node{}, err
			}
			return criteria.ObjectNode(obj), nil
		case '[':
			items := []criteria.Node{}
			for dec.More() {
				item, err := parseValue(dec, field)
				if err != nil {
					return criteria.Node{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return criteria.Node{}, err
			}
			return criteria.ArrayNode(items...), nil
		default:
			return criteria.Node{}, errors.Errorf("unexpected %v", v)
		}
	case json.Number:
		return criteria.ScalarNode(number(v, field)), nil
	case string:
		return criteria.ScalarNode(text(v, field)), nil
	case bool:
		return criteria.ScalarNode(criteria.Bool(v)), nil
	case nil:
		return criteria.ScalarNode(criteria.Null()), nil
	default:
		return criteria.Node{}, errors.Errorf("unexpected token %v", tok)
	}
}

// number keeps integers as Int unless the field is declared as a float.
func number(n json.Number, field *criteria.Field) criteria.Scalar {
	if field == nil || field.Type != criteria.TypeFloat {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return criteria.Int(i)
		}
	}
	if f, err := n.Float64(); err == nil {
		return criteria.Float(f)
	}
	return criteria.String(n.String())
}

// text turns date fields back into times; everything else stays a string.
func text(s string, field *criteria.Field) criteria.Scalar {
	if field != nil && field.Type == criteria.TypeDate {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return criteria.Time(t)
		}
	}
	return criteria.String(s)
}
