package criteria

import (
	"strconv"
	"time"
)

// ScalarKind identifies the concrete type held by a Scalar.
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k ScalarKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Scalar is a leaf value of a field tree: a string, integer, float, boolean,
// date/time, or null. The zero value is null.
type Scalar struct {
	kind ScalarKind
	str  string
	num  int64
	flt  float64
	b    bool
	t    time.Time
}

// Null returns the null scalar.
func Null() Scalar { return Scalar{} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{kind: KindString, str: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{kind: KindInt, num: i} }

// Float returns a float scalar.
func Float(f float64) Scalar { return Scalar{kind: KindFloat, flt: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{kind: KindBool, b: b} }

// Time returns a date/time scalar.
func Time(t time.Time) Scalar { return Scalar{kind: KindTime, t: t} }

// Kind returns the kind of value held by s.
func (s Scalar) Kind() ScalarKind { return s.kind }

// IsNull reports whether s is the null scalar.
func (s Scalar) IsNull() bool { return s.kind == KindNull }

func (s Scalar) AsString() (string, bool) { return s.str, s.kind == KindString }
func (s Scalar) AsInt() (int64, bool) { return s.num, s.kind == KindInt }
func (s Scalar) AsFloat() (float64, bool) { return s.flt, s.kind == KindFloat }
func (s Scalar) AsBool() (bool, bool) { return s.b, s.kind == KindBool }
func (s Scalar) AsTime() (time.Time, bool) {
	return s.t, s.kind == KindTime
}

// Interface returns the native Go value held by s: string, int64, float64,
// bool, time.Time, or nil for null.
func (s Scalar) Interface() any {
	switch s.kind {
	case KindString:
		return s.str
	case KindInt:
		return s.num
	case KindFloat:
		return s.flt
	case KindBool:
		return s.b
	case KindTime:
		return s.t
	default:
		return nil
	}
}

// Text returns the direct string form of s. Booleans render as "true"/"false"
// and times as RFC 3339; codecs apply their own rendering on top of this.
func (s Scalar) Text() string {
	switch s.kind {
	case KindString:
		return s.str
	case KindInt:
		return strconv.FormatInt(s.num, 10)
	case KindFloat:
		return strconv.FormatFloat(s.flt, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.b)
	case KindTime:
		return s.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Equal reports whether s and o hold the same kind and value.
// Times are compared with time.Time.Equal.
func (s Scalar) Equal(o Scalar) bool {
	if s.kind != o.kind {
		return false
	}

	switch s.kind {
	case KindString:
		return s.str == o.str
	case KindInt:
		return s.num == o.num
	case KindFloat:
		return s.flt == o.flt
	case KindBool:
		return s.b == o.b
	case KindTime:
		return s.t.Equal(o.t)
	default:
		return true
	}
}

func (s Scalar) String() string {
	if s.kind == KindNull {
		return "null"
	}
	return s.Text()
}
