package criteria

// Codec renders a field tree as a URL-safe string and parses it back.
//
// Decode must check schema before looking at the input: a nil schema always
// yields an UnsupportedEncodingError, even for well-formed input.
type Codec interface {
	// Name identifies the codec in configuration and error messages.
	Name() string

	Encode(t *Tree) (string, error)
	Decode(s string, schema *Schema) (*Tree, error)
}

// Mapper converts between typed filter objects and field trees.
type Mapper interface {
	// ToFieldTree returns the field tree of filter, omitting null fields.
	ToFieldTree(filter any) (*Tree, error)

	// FromFieldTree hydrates target, a pointer to a filter, from t. Raw string
	// values are coerced to the declared field types here.
	FromFieldTree(t *Tree, target any) error

	// SchemaOf returns the schema of a recognized filter type.
	SchemaOf(target any) (*Schema, bool)
}

// Transport binds a Codec to a Mapper so that typed filters can be encoded
// and decoded in one call.
type Transport struct {
	codec  Codec
	mapper Mapper
}

// NewTransport creates a Transport.
func NewTransport(codec Codec, mapper Mapper) *Transport {
	return &Transport{codec: codec, mapper: mapper}
}

// Codec returns the codec used by t.
func (t *Transport) Codec() Codec { return t.codec }

// Marshal encodes filter with the transport's codec.
func (t *Transport) Marshal(filter any) (string, error) {
	if _, ok := t.mapper.SchemaOf(filter); !ok {
		return "", Unsupported(t.codec.Name(), filter)
	}

	tree, err := t.mapper.ToFieldTree(filter)
	if err != nil {
		return "", err
	}

	return t.codec.Encode(tree)
}

// Unmarshal decodes s into target, a pointer to a recognized filter type.
// Fields absent from s are left untouched on target.
func (t *Transport) Unmarshal(s string, target any) error {
	schema, ok := t.mapper.SchemaOf(target)
	if !ok {
		return Unsupported(t.codec.Name(), target)
	}

	tree, err := t.codec.Decode(s, schema)
	if err != nil {
		return err
	}

	return t.mapper.FromFieldTree(tree, target)
}

// Decode parses s against the schema of target without hydrating it.
func (t *Transport) Decode(s string, target any) (*Tree, error) {
	schema, ok := t.mapper.SchemaOf(target)
	if !ok {
		return nil, Unsupported(t.codec.Name(), target)
	}
	return t.codec.Decode(s, schema)
}
