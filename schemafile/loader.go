// Package schemafile loads filter schemas declared in YAML, so that tools
// can encode and decode filters without compiled filter types.
//
// Example file:
//
//	schemas:
//	  - name: address
//	    fields:
//	      - {name: locality, type: string}
//	      - {name: country, type: string}
//	  - name: announcement
//	    fields:
//	      - {name: title, type: string}
//	      - {name: type, type: enum, values: [rent, sale]}
//	      - {name: address, object: address}
//	      - {name: tags, type: string, array: true}
//
// Object fields reference other schemas of the same file by name, in any
// order. Reference cycles are rejected.
package schemafile

import (
	"bytes"
	"io"
	"os"

	"github.com/friendsofgo/errors"
	"gopkg.in/yaml.v3"

	"github.com/nrfta/criteria-go"
)

// File is the YAML document layout.
type File struct {
	Schemas []SchemaDef `yaml:"schemas"`
}

// SchemaDef declares one schema.
type SchemaDef struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. Exactly one of Type or Object is set.
type FieldDef struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type,omitempty"`
	Object string   `yaml:"object,omitempty"`
	Array  bool     `yaml:"array,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

// LoadFromFile reads path and registers its schemas in a new registry.
func LoadFromFile(path string) (*criteria.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a schema file from r. Unknown keys are errors.
func Load(r io.Reader) (*criteria.Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return criteria.NewRegistry(), nil
		}
		return nil, errors.Wrap(err, "unmarshal yaml")
	}

	return Build(file)
}

// Build validates the definitions and turns them into schemas.
func Build(file File) (*criteria.Registry, error) {
	defs := make(map[string]*SchemaDef, len(file.Schemas))
	for i := range file.Schemas {
		def := &file.Schemas[i]
		if err := Validate(def); err != nil {
			return nil, errors.Wrapf(err, "schema %d", i)
		}
		if _, dup := defs[def.Name]; dup {
			return nil, errors.Errorf("schema %q declared twice", def.Name)
		}
		defs[def.Name] = def
	}

	b := &builder{
		defs:     defs,
		built:    make(map[string]*criteria.Schema, len(defs)),
		visiting: make(map[string]bool),
	}

	registry := criteria.NewRegistry()
	for _, def := range file.Schemas {
		schema, err := b.build(def.Name)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(schema); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Validate checks a single definition without resolving references.
func Validate(def *SchemaDef) error {
	if def.Name == "" {
		return errors.New("name is required")
	}

	seen := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		if f.Name == "" {
			return errors.Errorf("%s: field %d: name is required", def.Name, i)
		}
		if seen[f.Name] {
			return errors.Errorf("%s.%s: field declared twice", def.Name, f.Name)
		}
		seen[f.Name] = true

		switch {
		case f.Type == "" && f.Object == "":
			return errors.Errorf("%s.%s: type or object is required", def.Name, f.Name)
		case f.Type != "" && f.Object != "":
			return errors.Errorf("%s.%s: type and object are exclusive", def.Name, f.Name)
		case f.Object != "":
			if len(f.Values) > 0 {
				return errors.Errorf("%s.%s: values are only allowed on enum fields", def.Name, f.Name)
			}
			continue
		}

		t, err := criteria.ParseScalarType(f.Type)
		if err != nil {
			return errors.Wrapf(err, "%s.%s", def.Name, f.Name)
		}
		if t == criteria.TypeEnum && len(f.Values) == 0 {
			return errors.Errorf("%s.%s: enum fields need values", def.Name, f.Name)
		}
		if t != criteria.TypeEnum && len(f.Values) > 0 {
			return errors.Errorf("%s.%s: values are only allowed on enum fields", def.Name, f.Name)
		}
	}
	return nil
}

type builder struct {
	defs     map[string]*SchemaDef
	built    map[string]*criteria.Schema
	visiting map[string]bool
}

func (b *builder) build(name string) (*criteria.Schema, error) {
	if schema, ok := b.built[name]; ok {
		return schema, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, errors.Errorf("unknown schema %q", name)
	}
	if b.visiting[name] {
		return nil, errors.Errorf("reference cycle through schema %q", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	schema := criteria.NewSchema(name)
	for _, f := range def.Fields {
		if f.Object != "" {
			sub, err := b.build(f.Object)
			if err != nil {
				return nil, errors.Wrapf(err, "%s.%s", name, f.Name)
			}
			if f.Array {
				schema.ObjectArray(f.Name, sub)
			} else {
				schema.Object(f.Name, sub)
			}
			continue
		}

		// Validate already accepted the type name.
		t, _ := criteria.ParseScalarType(f.Type)
		switch {
		case t == criteria.TypeEnum && f.Array:
			schema.EnumArray(f.Name, f.Values...)
		case t == criteria.TypeEnum:
			schema.Enum(f.Name, f.Values...)
		case f.Array:
			schema.Array(f.Name, t)
		default:
			schema.Scalar(f.Name, t)
		}
	}

	b.built[name] = schema
	return schema, nil
}

// Describe converts a schema back to its file definition, nested schemas
// included, in dependency order.
func Describe(schema *criteria.Schema) File {
	var file File
	seen := make(map[string]bool)

	var walk func(s *criteria.Schema)
	walk = func(s *criteria.Schema) {
		if seen[s.Name()] {
			return
		}
		seen[s.Name()] = true

		def := SchemaDef{Name: s.Name()}
		for _, f := range s.Fields() {
			fd := FieldDef{Name: f.Name, Array: f.Kind == criteria.FieldArray}
			if f.Schema != nil {
				walk(f.Schema)
				fd.Object = f.Schema.Name()
			} else {
				fd.Type = f.Type.String()
				fd.Values = f.Values
			}
			def.Fields = append(def.Fields, fd)
		}
		file.Schemas = append(file.Schemas, def)
	}
	walk(schema)

	return file
}

// Write renders a schema and its nested schemas as YAML.
func Write(w io.Writer, schema *criteria.Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Describe(schema)); err != nil {
		return errors.Wrap(err, "marshal yaml")
	}
	return enc.Close()
}
