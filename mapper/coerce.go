package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// DateLayouts are the layouts accepted for date fields, tried in order.
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02",
}

// Coerce returns a copy of t with every scalar converted to the type its
// field declares in schema. Fields not declared in schema are dropped.
//
// Conversions:
//   - int: decimal strings, integral floats
//   - float: decimal strings, ints
//   - bool: "1", "0", "true", "false"
//   - date: strings in one of DateLayouts
//   - enum: strings listed in the field's values
//
// The first failure is returned as a *FieldError.
func Coerce(t *criteria.Tree, schema *criteria.Schema) (*criteria.Tree, error) {
	return coerceTree(nil, t, schema)
}

func coerceTree(prefix criteria.FieldPath, t *criteria.Tree, schema *criteria.Schema) (*criteria.Tree, error) {
	out := criteria.NewTree()

	for _, name := range schema.Order(t.Names()) {
		field, ok := schema.Lookup(name)
		if !ok {
			continue
		}

		node, _ := t.Get(name)
		coerced, err := coerceNode(prefix.Append(criteria.Name(name)), node, field, false)
		if err != nil {
			return nil, err
		}
		out.Set(name, coerced)
	}

	return out, nil
}

// coerceNode converts n to the shape of field. element is true for the
// items of an array field.
func coerceNode(path criteria.FieldPath, n criteria.Node, field *criteria.Field, element bool) (criteria.Node, error) {
	if n.IsNull() {
		return n, nil
	}

	kind := field.Kind
	if element {
		kind = criteria.FieldScalar
		if field.Schema != nil {
			kind = criteria.FieldObject
		}
	}

	switch kind {
	case criteria.FieldArray:
		if n.Kind() != criteria.NodeArray {
			return criteria.Node{}, shapeError(path, n, "array")
		}
		items := make([]criteria.Node, 0, n.Len())
		for i, item := range n.Items() {
			c, err := coerceNode(path.Append(criteria.Index(i)), item, field, true)
			if err != nil {
				return criteria.Node{}, err
			}
			items = append(items, c)
		}
		return criteria.ArrayNode(items...), nil

	case criteria.FieldObject:
		if n.Kind() != criteria.NodeObject {
			return criteria.Node{}, shapeError(path, n, "object")
		}
		sub, err := coerceTree(path, n.Object(), field.Schema)
		if err != nil {
			return criteria.Node{}, err
		}
		return criteria.ObjectNode(sub), nil

	default:
		if n.Kind() != criteria.NodeScalar {
			return criteria.Node{}, shapeError(path, n, field.Type.String())
		}
		s, err := CoerceScalar(n.Scalar(), field)
		if err != nil {
			return criteria.Node{}, &FieldError{
				Path:     path.String(),
				Value:    n.Scalar().Text(),
				Expected: expected(field),
				Err:      err,
			}
		}
		return criteria.ScalarNode(s), nil
	}
}

func shapeError(path criteria.FieldPath, n criteria.Node, want string) *FieldError {
	value := n.Kind().String()
	if n.Kind() == criteria.NodeScalar {
		value = n.Scalar().Text()
	}
	return &FieldError{Path: path.String(), Value: value, Expected: want}
}

func expected(field *criteria.Field) string {
	if field.Type == criteria.TypeEnum {
		return "one of [" + strings.Join(field.Values, ", ") + "]"
	}
	return field.Type.String()
}

// CoerceScalar converts s to the scalar type of field.
func CoerceScalar(s criteria.Scalar, field *criteria.Field) (criteria.Scalar, error) {
	if s.IsNull() {
		return s, nil
	}

	switch field.Type {
	case criteria.TypeInt:
		return toInt(s)
	case criteria.TypeFloat:
		return toFloat(s)
	case criteria.TypeBool:
		return toBool(s)
	case criteria.TypeDate:
		return toTime(s)
	case criteria.TypeEnum:
		v := s.Text()
		if !field.Allows(v) {
			return criteria.Scalar{}, errors.New("not an allowed value")
		}
		return criteria.String(v), nil
	default:
		if _, ok := s.AsTime(); ok {
			return criteria.String(s.Text()), nil
		}
		if v, ok := s.AsString(); ok {
			return criteria.String(v), nil
		}
		return criteria.String(s.Text()), nil
	}
}

func toInt(s criteria.Scalar) (criteria.Scalar, error) {
	switch s.Kind() {
	case criteria.KindInt:
		return s, nil
	case criteria.KindFloat:
		f, _ := s.AsFloat()
		if f != float64(int64(f)) {
			return criteria.Scalar{}, errors.New("not an integer")
		}
		return criteria.Int(int64(f)), nil
	case criteria.KindString:
		v, _ := s.AsString()
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return criteria.Scalar{}, errors.Wrap(err, "not an integer")
		}
		return criteria.Int(i), nil
	default:
		return criteria.Scalar{}, errors.Errorf("cannot convert %s", s.Kind())
	}
}

func toFloat(s criteria.Scalar) (criteria.Scalar, error) {
	switch s.Kind() {
	case criteria.KindFloat:
		return s, nil
	case criteria.KindInt:
		i, _ := s.AsInt()
		return criteria.Float(float64(i)), nil
	case criteria.KindString:
		v, _ := s.AsString()
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return criteria.Scalar{}, errors.Wrap(err, "not a number")
		}
		return criteria.Float(f), nil
	default:
		return criteria.Scalar{}, errors.Errorf("cannot convert %s", s.Kind())
	}
}

func toBool(s criteria.Scalar) (criteria.Scalar, error) {
	switch s.Kind() {
	case criteria.KindBool:
		return s, nil
	case criteria.KindInt:
		i, _ := s.AsInt()
		if i == 0 || i == 1 {
			return criteria.Bool(i == 1), nil
		}
	case criteria.KindString:
		v, _ := s.AsString()
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true":
			return criteria.Bool(true), nil
		case "0", "false":
			return criteria.Bool(false), nil
		}
	}
	return criteria.Scalar{}, errors.New("expected 1, 0, true or false")
}

func toTime(s criteria.Scalar) (criteria.Scalar, error) {
	if _, ok := s.AsTime(); ok {
		return s, nil
	}

	v, ok := s.AsString()
	if !ok {
		return criteria.Scalar{}, errors.Errorf("cannot convert %s", s.Kind())
	}

	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return criteria.Time(t), nil
		}
	}
	return criteria.Scalar{}, errors.New("not an RFC 3339 date")
}
