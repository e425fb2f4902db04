package plain

import (
	"strconv"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// ErrReservedCharacter is matched by errors returned from Validate.
var ErrReservedCharacter = errors.New("value contains a reserved character")

// ReservedCharacterError names the path whose value cannot be encoded.
type ReservedCharacterError struct {
	Path  string
	Value string
}

func (e *ReservedCharacterError) Error() string {
	return "plain: value of " + e.Path + " contains " + strconv.Quote(pairSeparator) + ": " + e.Value
}

func (e *ReservedCharacterError) Is(target error) bool {
	return target == ErrReservedCharacter
}

// Validate reports the first value in pvs that would corrupt the plain
// format. Only the pair separator is fatal: keys end at the first ':' so
// values may contain colons and brackets, which keeps RFC 3339 times intact.
// Callers holding such values should use the opaque codec instead.
func Validate(pvs []criteria.PathValue) error {
	for _, pv := range pvs {
		v := FormatValue(pv.Value)
		if strings.Contains(v, pairSeparator) {
			return &ReservedCharacterError{Path: pv.Path.String(), Value: v}
		}
	}
	return nil
}
