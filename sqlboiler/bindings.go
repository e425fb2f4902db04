package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/paging"
)

// Op is the comparison a bound filter field applies to its column.
type Op int

const (
	// OpEq matches column = value; array values repeat the condition.
	OpEq Op = iota
	// OpGte matches column >= value.
	OpGte
	// OpLte matches column <= value.
	OpLte
	// OpLike matches column LIKE %value%.
	OpLike
	// OpIn matches column IN (values...), collecting every array element.
	OpIn
	// OpPresent matches column IS NOT NULL for true and IS NULL for false.
	OpPresent
)

var opSQL = map[Op]string{
	OpEq:  "=",
	OpGte: ">=",
	OpLte: "<=",
}

// ErrUnknownSort is matched when a sort names a property without a column.
var ErrUnknownSort = errors.New("unknown sort property")

// UnknownSortError names the rejected sort property.
type UnknownSortError struct {
	Property string
}

func (e *UnknownSortError) Error() string {
	return "cannot sort by " + e.Property
}

func (e *UnknownSortError) Is(target error) bool {
	return target == ErrUnknownSort
}

type binding struct {
	column string
	op     Op
}

// Bindings maps filter fields to columns and sort properties to columns.
// Fields are addressed by their dotted name path, array indexes left out:
// "address.locality", "members.userId".
type Bindings struct {
	filters map[string]binding
	sorts   map[string]string
}

// NewBindings returns empty bindings.
func NewBindings() *Bindings {
	return &Bindings{
		filters: make(map[string]binding),
		sorts:   make(map[string]string),
	}
}

// Filter binds the field at path to column with op.
func (b *Bindings) Filter(path, column string, op Op) *Bindings {
	b.filters[path] = binding{column: column, op: op}
	return b
}

// Sort allows sorting by property on column.
func (b *Bindings) Sort(property, column string) *Bindings {
	b.sorts[property] = column
	return b
}

func quote(column string) string {
	return strmangle.IdentQuote('"', '"', column)
}

// FilterMods turns a filter tree into WHERE mods, in the tree's field order.
// Fields without a binding are ignored.
func (b *Bindings) FilterMods(t *criteria.Tree) []qm.QueryMod {
	type group struct {
		binding binding
		values  []criteria.Scalar
	}

	var order []string
	groups := make(map[string]*group)

	for _, pv := range criteria.Flatten(t) {
		key := pv.Path.Names(".")
		bound, ok := b.filters[key]
		if !ok {
			continue
		}

		g, seen := groups[key]
		if !seen {
			g = &group{binding: bound}
			groups[key] = g
			order = append(order, key)
		}
		g.values = append(g.values, pv.Value)
	}

	mods := make([]qm.QueryMod, 0, len(order))
	for _, key := range order {
		g := groups[key]
		mods = append(mods, whereMods(g.binding, g.values)...)
	}
	return mods
}

func whereMods(bound binding, values []criteria.Scalar) []qm.QueryMod {
	column := quote(bound.column)

	switch bound.op {
	case OpIn:
		args := make([]any, len(values))
		for i, v := range values {
			args[i] = v.Interface()
		}
		return []qm.QueryMod{qm.WhereIn(column+" IN ?", args...)}

	case OpPresent:
		mods := make([]qm.QueryMod, 0, len(values))
		for _, v := range values {
			if present, _ := v.AsBool(); present {
				mods = append(mods, qm.Where(column+" IS NOT NULL"))
			} else {
				mods = append(mods, qm.Where(column+" IS NULL"))
			}
		}
		return mods

	case OpLike:
		mods := make([]qm.QueryMod, 0, len(values))
		for _, v := range values {
			mods = append(mods, qm.Where(column+" LIKE ?", "%"+likeEscaper.Replace(v.Text())+"%"))
		}
		return mods

	default:
		mods := make([]qm.QueryMod, 0, len(values))
		for _, v := range values {
			mods = append(mods, qm.Where(column+" "+opSQL[bound.op]+" ?", v.Interface()))
		}
		return mods
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// OrderBy builds the ORDER BY mod for sorts. Every property must have been
// bound with Sort.
func (b *Bindings) OrderBy(sorts []paging.Sort) (qm.QueryMod, error) {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		column, ok := b.sorts[s.Property]
		if !ok {
			return nil, &UnknownSortError{Property: s.Property}
		}

		parts[i] = quote(column)
		if s.Direction == paging.DESC {
			parts[i] += " DESC"
		}
	}
	return qm.OrderBy(strings.Join(parts, ", ")), nil
}
