package criteria

import (
	"bytes"
	"encoding/json"
	"time"
)

// NodeKind identifies the shape of a Node.
type NodeKind int

const (
	NodeScalar NodeKind = iota
	NodeArray
	NodeObject
)

func (k NodeKind) String() string {
	switch k {
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	default:
		return "scalar"
	}
}

// Node is one value of a field tree: a scalar, an ordered list of nodes, or a
// nested tree. The zero value is a null scalar.
type Node struct {
	kind   NodeKind
	scalar Scalar
	items  []Node
	object *Tree
}

// ScalarNode wraps a scalar.
func ScalarNode(s Scalar) Node { return Node{kind: NodeScalar, scalar: s} }

// ArrayNode builds an array node from items.
func ArrayNode(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: NodeArray, items: items}
}

// ObjectNode wraps a nested tree.
func ObjectNode(t *Tree) Node {
	if t == nil {
		t = NewTree()
	}
	return Node{kind: NodeObject, object: t}
}

func (n Node) Kind() NodeKind { return n.kind }
func (n Node) Scalar() Scalar { return n.scalar }
func (n Node) Items() []Node { return n.items }
func (n Node) Object() *Tree { return n.object }
func (n Node) IsNull() bool { return n.kind == NodeScalar && n.scalar.IsNull() }
func (n Node) Len() int { return len(n.items) }

// Equal reports whether n and o have the same shape and values. Nested trees
// are compared by field set, not field order.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}

	switch n.kind {
	case NodeArray:
		if len(n.items) != len(o.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case NodeObject:
		return n.object.Equal(o.object)
	default:
		return n.scalar.Equal(o.scalar)
	}
}

// Tree is a nested ordered map of field names to nodes: the field tree the
// object mapper produces and consumes. Field order is insertion order.
type Tree struct {
	names  []string
	fields map[string]Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{fields: make(map[string]Node)}
}

// Set assigns node to name. A new name is appended at the end; an existing
// name keeps its position. Set returns t for chaining.
func (t *Tree) Set(name string, node Node) *Tree {
	if _, exists := t.fields[name]; !exists {
		t.names = append(t.names, name)
	}
	t.fields[name] = node
	return t
}

// SetScalar is shorthand for Set(name, ScalarNode(s)).
func (t *Tree) SetScalar(name string, s Scalar) *Tree {
	return t.Set(name, ScalarNode(s))
}

// Get returns the node stored under name.
func (t *Tree) Get(name string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	n, ok := t.fields[name]
	return n, ok
}

// Names returns the field names in order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of fields.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Equal reports whether t and o hold the same fields with equal nodes,
// ignoring field order. A nil tree equals an empty one.
func (t *Tree) Equal(o *Tree) bool {
	if t.Len() != o.Len() {
		return false
	}
	for _, name := range t.Names() {
		a, _ := t.Get(name)
		b, ok := o.Get(name)
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the tree as a JSON object in field order. Booleans are
// JSON booleans, times RFC 3339 strings, nulls JSON null.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTree(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTree(buf *bytes.Buffer, t *Tree) error {
	buf.WriteByte('{')
	for i, name := range t.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')

		node, _ := t.Get(name)
		if err := writeNode(buf, node); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeNode(buf *bytes.Buffer, n Node) error {
	switch n.kind {
	case NodeObject:
		return writeTree(buf, n.object)
	case NodeArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		var v any
		if ts, ok := n.scalar.AsTime(); ok {
			v = ts.Format(time.RFC3339Nano)
		} else {
			v = n.scalar.Interface()
		}
		data, err := marshalNoEscape(v)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}

// marshalNoEscape marshals v without HTML escaping so that values such as
// "<" survive unchanged.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
