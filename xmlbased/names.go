package xmlbased

import (
	"unicode"
	"unicode/utf8"
)

// ValidName returns true if name can be used as the
// name of an element without a namespace prefix
func ValidName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		default:
			return false
		}
	}

	return utf8.ValidString(name)
}
