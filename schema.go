package criteria

import (
	"reflect"
	"sort"

	"github.com/friendsofgo/errors"
)

// FieldKind is the closed set of shapes a filter field can take.
type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldArray
	FieldObject
)

func (k FieldKind) String() string {
	switch k {
	case FieldArray:
		return "array"
	case FieldObject:
		return "object"
	default:
		return "scalar"
	}
}

// ScalarType is the declared type of a scalar field or of an array's elements.
// It drives coercion in the object mapper and typed decoding in the opaque codec.
type ScalarType int

const (
	TypeString ScalarType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
	TypeEnum
)

var scalarTypeNames = map[ScalarType]string{
	TypeString: "string",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeBool:   "bool",
	TypeDate:   "date",
	TypeEnum:   "enum",
}

func (t ScalarType) String() string {
	if name, ok := scalarTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseScalarType maps a type name ("string", "int", ...) to a ScalarType.
func ParseScalarType(name string) (ScalarType, error) {
	for t, n := range scalarTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown scalar type %q", name)
}

// Field describes one field of a filter schema.
type Field struct {
	Name string
	Kind FieldKind

	// Type is the scalar type for scalar fields and arrays of scalars.
	Type ScalarType

	// Schema is the nested schema for object fields and arrays of objects.
	Schema *Schema

	// Values lists the allowed values of an enum field.
	Values []string

	position int
}

// Allows reports whether v is one of the enum values of f.
// Non-enum fields allow everything.
func (f *Field) Allows(v string) bool {
	if f.Type != TypeEnum {
		return true
	}
	for _, allowed := range f.Values {
		if allowed == v {
			return true
		}
	}
	return false
}

// Schema is the ordered field declaration of one filter type. It is the
// single source of truth for field order, field shapes and scalar types,
// so flattening and decoding never depend on reflection order.
//
// Example:
//
//	var addressSchema = criteria.NewSchema("address").
//	    Scalar("locality", criteria.TypeString).
//	    Scalar("country", criteria.TypeString)
//
//	var announcementSchema = criteria.NewSchema("announcement").
//	    Scalar("title", criteria.TypeString).
//	    Enum("type", "rent", "sale").
//	    Scalar("priceStart", criteria.TypeFloat).
//	    Object("address", addressSchema).
//	    Array("tags", criteria.TypeString)
//
// Schemas are built once, typically at package init, and are read-only
// afterwards; they are safe for concurrent use.
type Schema struct {
	name   string
	fields []*Field
	byName map[string]*Field
}

// NewSchema creates an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{
		name:   name,
		fields: make([]*Field, 0),
		byName: make(map[string]*Field),
	}
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

func (s *Schema) add(f *Field) *Schema {
	if existing, ok := s.byName[f.Name]; ok {
		// Redeclaring a field replaces it in place.
		f.position = existing.position
		s.fields[existing.position] = f
		s.byName[f.Name] = f
		return s
	}

	f.position = len(s.fields)
	s.fields = append(s.fields, f)
	s.byName[f.Name] = f
	return s
}

// Scalar declares a scalar field.
func (s *Schema) Scalar(name string, t ScalarType) *Schema {
	return s.add(&Field{Name: name, Kind: FieldScalar, Type: t})
}

// Enum declares a string field restricted to values.
func (s *Schema) Enum(name string, values ...string) *Schema {
	return s.add(&Field{Name: name, Kind: FieldScalar, Type: TypeEnum, Values: values})
}

// Object declares a nested object field.
func (s *Schema) Object(name string, sub *Schema) *Schema {
	return s.add(&Field{Name: name, Kind: FieldObject, Schema: sub})
}

// Array declares an array of scalars.
func (s *Schema) Array(name string, t ScalarType) *Schema {
	return s.add(&Field{Name: name, Kind: FieldArray, Type: t})
}

// EnumArray declares an array of enum values.
func (s *Schema) EnumArray(name string, values ...string) *Schema {
	return s.add(&Field{Name: name, Kind: FieldArray, Type: TypeEnum, Values: values})
}

// ObjectArray declares an array of nested objects.
func (s *Schema) ObjectArray(name string, sub *Schema) *Schema {
	return s.add(&Field{Name: name, Kind: FieldArray, Schema: sub})
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the field declared under name.
func (s *Schema) Lookup(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.byName[name]
	return f, ok
}

// Known reports whether every name segment of path is declared at its level.
// Index segments are skipped; structural mismatches (an index on an object
// field) are left for the mapper to report, so Known only answers the
// unknown-field question.
func (s *Schema) Known(path FieldPath) bool {
	current := s
	for _, seg := range path {
		if seg.Kind != SegmentName {
			continue
		}
		if current == nil {
			// Beyond a scalar or an undeclared nested shape.
			return true
		}
		field, ok := current.Lookup(seg.Name)
		if !ok {
			return false
		}
		current = field.Schema
	}
	return true
}

// Order sorts names by declaration order; undeclared names go last in their
// original relative order.
func (s *Schema) Order(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	if s == nil {
		return out
	}

	pos := func(name string) int {
		if f, ok := s.Lookup(name); ok {
			return f.position
		}
		return len(s.fields)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return pos(out[i]) < pos(out[j])
	})
	return out
}

// Filter is implemented by recognized filter types. Codecs refuse to decode
// into anything that does not expose a schema.
type Filter interface {
	FilterSchema() *Schema
}

// SchemaOf returns the schema of target when it is a recognized filter type.
// Filter types usually declare FilterSchema on a pointer receiver; a plain
// struct value of such a type is recognized as well.
func SchemaOf(target any) (*Schema, bool) {
	if f, ok := target.(Filter); ok {
		schema := f.FilterSchema()
		return schema, schema != nil
	}

	if target == nil {
		return nil, false
	}
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Ptr {
		return nil, false
	}
	if f, ok := reflect.New(t).Interface().(Filter); ok {
		schema := f.FilterSchema()
		return schema, schema != nil
	}
	return nil, false
}
