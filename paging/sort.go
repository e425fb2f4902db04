package paging

import "strings"

// Direction is the order of one sort key.
type Direction bool

const (
	ASC  Direction = false
	DESC Direction = true
)

func (d Direction) String() string {
	if d == DESC {
		return "DESC"
	}
	return "ASC"
}

// descPrefix marks a descending sort in request parameters.
const descPrefix = "-"

// Sort is one key of a multi-key sort.
type Sort struct {
	Property  string
	Direction Direction
}

// Asc returns an ascending sort on property.
func Asc(property string) Sort { return Sort{Property: property, Direction: ASC} }

// Desc returns a descending sort on property.
func Desc(property string) Sort { return Sort{Property: property, Direction: DESC} }

// String renders s in request form: "-createdAt" or "title".
func (s Sort) String() string {
	if s.Direction == DESC {
		return descPrefix + s.Property
	}
	return s.Property
}

// ParseSort parses a "[-]property" entry. ok is false for blank entries.
func ParseSort(entry string) (Sort, bool) {
	entry = strings.TrimSpace(entry)

	dir := ASC
	if strings.HasPrefix(entry, descPrefix) {
		dir = DESC
		entry = strings.TrimSpace(strings.TrimPrefix(entry, descPrefix))
	}

	if entry == "" {
		return Sort{}, false
	}
	return Sort{Property: entry, Direction: dir}, true
}

// ParseSorts parses sort entries in order, dropping blanks. Entries may also
// hold comma separated lists.
//
// Example:
//
//	ParseSorts([]string{"-createdAt", "title"})
//	// [{createdAt DESC} {title ASC}]
func ParseSorts(entries []string) []Sort {
	sorts := make([]Sort, 0, len(entries))
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			if s, ok := ParseSort(part); ok {
				sorts = append(sorts, s)
			}
		}
	}
	return sorts
}

// FormatSorts renders sorts as one comma separated request value.
func FormatSorts(sorts []Sort) string {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
