// Package refdes orders component reference designators the way a designer reads them.
package refdes

import (
	"regexp"
	"strings"
)

// keyWidth is the fixed width the numeric part of a designator is padded to.
const keyWidth = 5

// designatorRegex matches a letter prefix followed by 1 to 5 digits.
// Anything that is not a digit counts as prefix, so "LED3" and "U_A1" are valid.
var designatorRegex = regexp.MustCompile(`^([^0-9]+)([0-9]{1,5})$`)

// SortKey returns a key that orders designators naturally when compared as strings.
// Example: "C1" -> "C00001", "C19" -> "C00019", so C2 sorts before C19.
func SortKey(ref string) (string, error) {
	m := designatorRegex.FindStringSubmatch(ref)
	if m == nil {
		return "", &InvalidReferenceError{Ref: ref}
	}
	letters, digits := m[1], m[2]
	return letters + strings.Repeat("0", keyWidth-len(digits)) + digits, nil
}

// IsValid reports whether ref has the letters-then-digits shape SortKey accepts.
func IsValid(ref string) bool {
	return designatorRegex.MatchString(ref)
}

// InvalidReferenceError is returned when a designator cannot be ordered.
type InvalidReferenceError struct {
	Ref string
}

func (e *InvalidReferenceError) Error() string {
	return "invalid reference: " + e.Ref + " (must be letters followed by 1 to 5 digits)"
}
