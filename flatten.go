package criteria

import (
	"sort"
)

// Flatten converts a field tree into its PathValue sequence, depth first in
// the tree's own field order. Null leaves are omitted; array elements get an
// index segment and nested objects recurse under their prefix.
//
// Example:
//
//	{gender: "female", address: {locality: "Paris"}, tags: ["a", "b"]}
//	→ gender=female, address[locality]=Paris, tags[0]=a, tags[1]=b
func Flatten(t *Tree) []PathValue {
	out := make([]PathValue, 0, t.Len())
	return flattenTree(out, nil, t)
}

func flattenTree(out []PathValue, prefix FieldPath, t *Tree) []PathValue {
	for _, name := range t.Names() {
		node, _ := t.Get(name)
		out = flattenNode(out, prefix.Append(Name(name)), node)
	}
	return out
}

func flattenNode(out []PathValue, path FieldPath, n Node) []PathValue {
	switch n.Kind() {
	case NodeObject:
		return flattenTree(out, path, n.Object())
	case NodeArray:
		for i, item := range n.Items() {
			out = flattenNode(out, path.Append(Index(i)), item)
		}
		return out
	default:
		if n.Scalar().IsNull() {
			return out
		}
		return append(out, PathValue{Path: path, Value: n.Scalar()})
	}
}

// Unflatten rebuilds a field tree from a PathValue sequence.
//
// Values are grouped by their first segment, in order of first appearance.
// A group whose remaining paths are all empty is a scalar; one whose paths
// continue with index segments is an array, rebuilt in ascending index order
// with gaps compacted (open indexes take the next free position); one whose
// paths continue with name segments is a nested object.
//
// Duplicate full paths, a scalar sharing its prefix with deeper paths, and
// index and name segments mixed under the same prefix are rejected with a
// MalformedInputError.
func Unflatten(pvs []PathValue) (*Tree, error) {
	return unflattenObject(nil, pvs)
}

// group collects the path values sharing a first segment.
type group struct {
	head    Segment
	entries []PathValue // paths relative to head
}

func groupByHead(pvs []PathValue) []*group {
	var groups []*group
	byName := make(map[string]*group)

	for _, pv := range pvs {
		head := pv.Path.Head()
		g, ok := byName[head.Name]
		if !ok {
			g = &group{head: head}
			byName[head.Name] = g
			groups = append(groups, g)
		}
		g.entries = append(g.entries, PathValue{Path: pv.Path.Tail(), Value: pv.Value})
	}

	return groups
}

func unflattenObject(prefix FieldPath, pvs []PathValue) (*Tree, error) {
	for _, pv := range pvs {
		if len(pv.Path) == 0 {
			return nil, Malformed(prefix.String(), "empty field path")
		}
		if pv.Path.Head().Kind != SegmentName {
			return nil, Malformed(prefix.Append(pv.Path...).String(),
				"expected a field name, got an index")
		}
	}

	tree := NewTree()
	for _, g := range groupByHead(pvs) {
		path := prefix.Append(g.head)
		node, err := unflattenGroup(path, g.entries)
		if err != nil {
			return nil, err
		}
		tree.Set(g.head.Name, node)
	}

	return tree, nil
}

// unflattenGroup builds the node for one field from its relative entries.
func unflattenGroup(path FieldPath, entries []PathValue) (Node, error) {
	var scalars, indexed, named int
	for _, e := range entries {
		switch {
		case len(e.Path) == 0:
			scalars++
		case e.Path.Head().Kind == SegmentName:
			named++
		default:
			indexed++
		}
	}

	switch {
	case scalars > 1:
		return Node{}, Malformed(path.String(), "duplicate field path")
	case scalars == 1 && len(entries) > 1:
		return Node{}, Malformed(path.String(), "field is both a scalar and a container")
	case scalars == 1:
		return ScalarNode(entries[0].Value), nil
	case indexed > 0 && named > 0:
		return Node{}, Malformed(path.String(), "index and name segments mixed under the same field")
	case named > 0:
		sub, err := unflattenObject(path, entries)
		if err != nil {
			return Node{}, err
		}
		return ObjectNode(sub), nil
	default:
		return unflattenArray(path, entries)
	}
}

// element collects the entries resolved to one array position.
type element struct {
	index   int
	entries []PathValue
}

func unflattenArray(path FieldPath, entries []PathValue) (Node, error) {
	byIndex := make(map[int]*element)
	var elements []*element
	nextFree := 0

	for _, e := range entries {
		seg := e.Path.Head()

		idx := seg.Index
		if seg.Kind == SegmentOpenIndex {
			idx = nextFree
		}
		if idx < 0 {
			return Node{}, Malformed(path.String(), "negative array index %d", idx)
		}
		if idx >= nextFree {
			nextFree = idx + 1
		}

		el, ok := byIndex[idx]
		if !ok {
			el = &element{index: idx}
			byIndex[idx] = el
			elements = append(elements, el)
		}
		el.entries = append(el.entries, PathValue{Path: e.Path.Tail(), Value: e.Value})
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].index < elements[j].index
	})

	items := make([]Node, 0, len(elements))
	for _, el := range elements {
		node, err := unflattenGroup(path.Append(Index(el.index)), el.entries)
		if err != nil {
			return Node{}, err
		}
		items = append(items, node)
	}

	return ArrayNode(items...), nil
}
