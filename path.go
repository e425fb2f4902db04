package criteria

import (
	"strconv"
	"strings"
)

// SegmentKind identifies the type of a FieldPath segment.
type SegmentKind int

const (
	SegmentName      SegmentKind = iota // object field: "address"
	SegmentIndex                        // array position: [0]
	SegmentOpenIndex                    // append marker: []
)

// Segment is a single step of a FieldPath.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

// Name returns a name segment.
func Name(name string) Segment { return Segment{Kind: SegmentName, Name: name} }

// Index returns an explicit index segment.
func Index(i int) Segment { return Segment{Kind: SegmentIndex, Index: i} }

// OpenIndex returns an append-to-array segment. It only appears in paths
// parsed from the plain codec's textual form.
func OpenIndex() Segment { return Segment{Kind: SegmentOpenIndex} }

func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return strconv.Itoa(s.Index)
	case SegmentOpenIndex:
		return ""
	default:
		return s.Name
	}
}

// FieldPath is an ordered list of segments locating a value in a field tree.
// Root-level fields have a single name segment.
type FieldPath []Segment

// Path builds a FieldPath from segments.
func Path(segments ...Segment) FieldPath {
	return FieldPath(segments)
}

// Head returns the first segment of p. p must not be empty.
func (p FieldPath) Head() Segment { return p[0] }

// Tail returns p without its first segment.
func (p FieldPath) Tail() FieldPath {
	if len(p) <= 1 {
		return nil
	}
	return p[1:]
}

// Append returns a new path with segs added; p is never modified.
func (p FieldPath) Append(segs ...Segment) FieldPath {
	out := make(FieldPath, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Equal reports whether p and o have identical segments.
func (p FieldPath) Equal(o FieldPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Names returns the name segments of p joined with sep, skipping indexes.
//
// Example:
//
//	Path(Name("address"), Name("locality")).Names(".") // "address.locality"
//	Path(Name("tags"), Index(2)).Names(".")             // "tags"
func (p FieldPath) Names(sep string) string {
	parts := make([]string, 0, len(p))
	for _, seg := range p {
		if seg.Kind == SegmentName {
			parts = append(parts, seg.Name)
		}
	}
	return strings.Join(parts, sep)
}

// String renders p in key-path form: the first segment bare, every
// following segment in brackets.
//
// Example:
//
//	address[locality]
//	tags[0]
//	tags[]
func (p FieldPath) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i == 0 {
			b.WriteString(seg.String())
			continue
		}
		b.WriteByte('[')
		b.WriteString(seg.String())
		b.WriteByte(']')
	}
	return b.String()
}

// PathValue is a single (field-path, scalar) pair, the codec-neutral unit
// every encoding reads and writes.
type PathValue struct {
	Path  FieldPath
	Value Scalar
}

func (pv PathValue) String() string {
	return pv.Path.String() + "=" + pv.Value.String()
}
