package registry

import (
	"strings"
)

// Hive is a tree of keys. Each key holds named string values
// and subkeys.
type Hive interface {
	// OpenKey opens the key at path. It returns nil if the key
	// does not exist. A key opened with writable = false may
	// reject mutations.
	OpenKey(path []string, writable bool) (Key, error)
	// CreateKey opens the key at path for writing,
	// creating it and its ancestors as needed
	CreateKey(path []string) (Key, error)
}

// Key is an open key of a hive. Keys must be closed.
type Key interface {
	// GetValue returns the value named name. ok is false if
	// the key has no such value.
	GetValue(name string) (value string, ok bool, err error)
	// SetValue creates or replaces the value named name
	SetValue(name, value string) error
	// DeleteValue removes the value named name. It has no
	// effect if there is no such value.
	DeleteValue(name string) error
	// ValueNames lists the names of the values of this key
	ValueNames() ([]string, error)
	// SubKeyNames lists the names of the subkeys of this key
	SubKeyNames() ([]string, error)
	// DeleteSubKeyTree removes the subkey named name with
	// everything below it. It has no effect if there is no
	// such subkey.
	DeleteSubKeyTree(name string) error
	Close() error
}

// SplitPath splits a key path on forward and back slashes.
// Empty segments are dropped.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, isSeparator)
}

// JoinPath joins key path segments with forward slashes
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
