// Package plain implements the human readable key-path codec.
//
// A filter is written as comma separated "key:value" pairs, where key is a
// field path in bracket notation:
//
//	gender:female,ageStart:12,withDescription:1
//	address[locality]:Paris,address[country]:France
//	tags[0]:one,tags[1]:two
//	tags[]:one,tags[]:two
//
// The format does not escape ',' or ':' inside values; Validate reports
// values that cannot be carried. Booleans render as 1 and 0.
package plain

import (
	"strings"
	"time"

	"github.com/nrfta/criteria-go"
)

const (
	// Name identifies the plain codec.
	Name = "plain"

	pairSeparator  = ","
	valueSeparator = ":"
)

// Codec is the criteria.Codec for the plain format.
type Codec struct{}

// NewCodec returns a plain codec.
func NewCodec() *Codec { return &Codec{} }

func (*Codec) Name() string { return Name }

// Encode flattens t and renders its pairs.
func (*Codec) Encode(t *criteria.Tree) (string, error) {
	return Encode(criteria.Flatten(t)), nil
}

// Decode parses s against schema and rebuilds the field tree. Values stay
// untyped strings; coercion belongs to the mapper.
func (*Codec) Decode(s string, schema *criteria.Schema) (*criteria.Tree, error) {
	pvs, err := Decode(s, schema)
	if err != nil {
		return nil, err
	}
	return criteria.Unflatten(pvs)
}

// Encode renders pvs as "key:value" pairs joined with commas, in the given
// order.
//
// Example:
//
//	plain.Encode(criteria.Flatten(tree)) // "gender:female,tags[0]:one"
func Encode(pvs []criteria.PathValue) string {
	pairs := make([]string, 0, len(pvs))
	for _, pv := range pvs {
		if pv.Value.IsNull() {
			continue
		}
		pairs = append(pairs, pv.Path.String()+valueSeparator+FormatValue(pv.Value))
	}
	return strings.Join(pairs, pairSeparator)
}

// FormatValue renders a scalar for the plain format: booleans as "1" or "0",
// times as RFC 3339 with fractional seconds, everything else in its direct string form.
func FormatValue(s criteria.Scalar) string {
	if b, ok := s.AsBool(); ok {
		if b {
			return "1"
		}
		return "0"
	}
	if t, ok := s.AsTime(); ok {
		return t.Format(time.RFC3339Nano)
	}
	return s.Text()
}

// Decode parses s into path values. Pairs whose path is not declared in
// schema are dropped. A nil schema fails with criteria.ErrUnsupportedEncoding
// whatever s contains; grammar violations and repeated keys fail with
// criteria.ErrMalformedInput. Open index keys such as tags[] may repeat.
//
// An empty string decodes to no pairs.
func Decode(s string, schema *criteria.Schema) ([]criteria.PathValue, error) {
	if schema == nil {
		return nil, criteria.Unsupported(Name, nil)
	}

	if s == "" {
		return []criteria.PathValue{}, nil
	}

	pairs := strings.Split(s, pairSeparator)
	out := make([]criteria.PathValue, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))

	for _, pair := range pairs {
		if pair == "" {
			return nil, criteria.Malformed(s, "empty pair")
		}

		rawKey, rawValue, found := strings.Cut(pair, valueSeparator)
		if !found {
			return nil, criteria.Malformed(pair, "missing %q between key and value", valueSeparator)
		}

		path, err := ParseKey(rawKey)
		if err != nil {
			return nil, err
		}

		if !schema.Known(path) {
			continue
		}

		if !hasOpenIndex(path) {
			key := path.String()
			if seen[key] {
				return nil, criteria.Malformed(pair, "duplicate key %s", key)
			}
			seen[key] = true
		}

		out = append(out, criteria.PathValue{Path: path, Value: criteria.String(rawValue)})
	}

	return out, nil
}

func hasOpenIndex(path criteria.FieldPath) bool {
	for _, seg := range path {
		if seg.Kind == criteria.SegmentOpenIndex {
			return true
		}
	}
	return false
}
