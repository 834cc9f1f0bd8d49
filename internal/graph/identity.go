package graph

import (
	"fmt"
	"strings"
)

// Identity is the constraint for types that act as graph keys. Identities
// must be cheap to copy; a copy that re-allocates will hurt traversal
// book-keeping (seen sets, logs, indexes).
type Identity interface {
	comparable
	fmt.Stringer
}

// Identifiable derives an identity from a value.
type Identifiable[I Identity] interface {
	ID() I
}

// Escape rewrites a display string into a form usable as a node name in a
// graph-description language: the leading character must be alphabetic or an
// underscore (a leading digit is prefixed with an underscore), every other
// character must be alphanumeric or an underscore, and anything else becomes
// an underscore.
func Escape(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 1)

	for i, c := range s {
		switch {
		case i == 0 && (isASCIIAlpha(c) || c == '_'):
			out.WriteRune(c)
		case i == 0 && isASCIIDigit(c):
			out.WriteByte('_')
			out.WriteRune(c)
		case i == 0:
			out.WriteByte('_')
		case isASCIIAlpha(c) || isASCIIDigit(c) || c == '_':
			out.WriteRune(c)
		default:
			out.WriteByte('_')
		}
	}

	return out.String()
}

// Escaped is Escape applied to an identity's display form.
func Escaped[I Identity](id I) string {
	return Escape(id.String())
}

func isASCIIAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
