package plain

import (
	"strconv"
	"strings"

	"github.com/nrfta/criteria-go"
)

// ParseKey parses a bracket-notation key into a field path: a name followed
// by zero or more [token] groups, where token is empty (open index), a
// non-negative integer (index) or a name (nested field).
//
// Example:
//
//	ParseKey("address[locality]") // address, locality
//	ParseKey("tags[2]")           // tags, 2
//	ParseKey("tags[]")            // tags, open index
func ParseKey(key string) (criteria.FieldPath, error) {
	open := strings.IndexByte(key, '[')

	head := key
	if open >= 0 {
		head = key[:open]
	}
	if head == "" {
		return nil, criteria.Malformed(key, "key must start with a field name")
	}
	if strings.ContainsAny(head, "]") {
		return nil, criteria.Malformed(key, "unexpected ']'")
	}

	path := criteria.Path(criteria.Name(head))
	if open < 0 {
		return path, nil
	}

	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, criteria.Malformed(key, "expected '[' at %q", rest)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, criteria.Malformed(key, "unterminated '['")
		}

		token := rest[1:end]
		if strings.ContainsAny(token, "[") {
			return nil, criteria.Malformed(key, "nested '[' in %q", token)
		}

		seg, err := parseToken(key, token)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
		rest = rest[end+1:]
	}

	return path, nil
}

func parseToken(key, token string) (criteria.Segment, error) {
	if token == "" {
		return criteria.OpenIndex(), nil
	}

	if isDigits(token) {
		idx, err := strconv.Atoi(token)
		if err != nil {
			return criteria.Segment{}, criteria.Malformed(key, "invalid index %q", token).Wrap(err)
		}
		return criteria.Index(idx), nil
	}

	if token[0] == '-' && isDigits(token[1:]) {
		return criteria.Segment{}, criteria.Malformed(key, "negative index %q", token)
	}

	return criteria.Name(token), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
