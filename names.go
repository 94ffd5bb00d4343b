package profile

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSection trims a section name. Names containing a NUL
// byte or invalid UTF-8 cannot be stored by any driver and
// are rejected with ErrInvalidArgument.
func NormalizeSection(section string) (string, error) {
	return normalize("section", section)
}

// NormalizeEntry trims an entry name. Names containing a NUL
// byte or invalid UTF-8 cannot be stored by any driver and
// are rejected with ErrInvalidArgument.
func NormalizeEntry(entry string) (string, error) {
	return normalize("entry", entry)
}

func normalize(kind, name string) (string, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return "", InvalidArgument("%s name %q contains a NUL byte", kind, name)
	}

	if !utf8.ValidString(name) {
		return "", InvalidArgument("%s name %q is not valid UTF-8", kind, name)
	}

	return strings.TrimSpace(name), nil
}

// Contains returns true if name is in names
func Contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

// HasEntry implements ReadOnlyProfile.HasEntry on top
// of ReadOnlyProfile.GetEntryNames.
func HasEntry(p ReadOnlyProfile, section, entry string) (bool, error) {
	entry, err := NormalizeEntry(entry)

	if err != nil {
		return false, err
	}

	names, ok, err := p.GetEntryNames(section)

	if err != nil || !ok {
		return false, err
	}

	return Contains(names, entry), nil
}

// HasSection reports whether an already normalized section
// name is listed by ReadOnlyProfile.GetSectionNames.
func HasSection(p ReadOnlyProfile, section string) (bool, error) {
	names, ok, err := p.GetSectionNames()

	if err != nil || !ok {
		return false, err
	}

	return Contains(names, section), nil
}
