//go:build windows

package winreg

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jrife/profile/registry"
	winregistry "golang.org/x/sys/windows/registry"
)

const (
	readAccess  = winregistry.QUERY_VALUE | winregistry.ENUMERATE_SUB_KEYS
	writeAccess = readAccess | winregistry.SET_VALUE | winregistry.CREATE_SUB_KEY
)

// RootKeys maps the names of the predefined root
// keys to their handles
var RootKeys = map[string]winregistry.Key{
	"HKEY_CLASSES_ROOT":   winregistry.CLASSES_ROOT,
	"HKEY_CURRENT_USER":   winregistry.CURRENT_USER,
	"HKEY_LOCAL_MACHINE":  winregistry.LOCAL_MACHINE,
	"HKEY_USERS":          winregistry.USERS,
	"HKEY_CURRENT_CONFIG": winregistry.CURRENT_CONFIG,
}

var _ registry.Hive = (*Hive)(nil)

// Hive is the part of the registry below a root key
type Hive struct {
	root winregistry.Key
}

// New returns the hive below root
func New(root winregistry.Key) *Hive {
	return &Hive{root: root}
}

// OpenKey implements registry.Hive.OpenKey
func (hive *Hive) OpenKey(path []string, writable bool) (registry.Key, error) {
	var access uint32 = readAccess

	if writable {
		access = writeAccess
	}

	k, err := winregistry.OpenKey(hive.root, strings.Join(path, `\`), access)

	if errors.Is(err, winregistry.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &Key{key: k, access: access}, nil
}

// CreateKey implements registry.Hive.CreateKey
func (hive *Hive) CreateKey(path []string) (registry.Key, error) {
	k, _, err := winregistry.CreateKey(hive.root, strings.Join(path, `\`), writeAccess)

	if err != nil {
		return nil, err
	}

	return &Key{key: k, access: writeAccess}, nil
}

var _ registry.Key = (*Key)(nil)

// Key is an open registry key
type Key struct {
	key    winregistry.Key
	access uint32
}

// GetValue implements registry.Key.GetValue. Integer
// values are returned in decimal.
func (key *Key) GetValue(name string) (string, bool, error) {
	value, _, err := key.key.GetStringValue(name)

	if errors.Is(err, winregistry.ErrNotExist) {
		return "", false, nil
	} else if errors.Is(err, winregistry.ErrUnexpectedType) {
		i, _, err := key.key.GetIntegerValue(name)

		if err != nil {
			return "", false, err
		}

		return strconv.FormatUint(i, 10), true, nil
	} else if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// SetValue implements registry.Key.SetValue
func (key *Key) SetValue(name, value string) error {
	return key.key.SetStringValue(name, value)
}

// DeleteValue implements registry.Key.DeleteValue
func (key *Key) DeleteValue(name string) error {
	if err := key.key.DeleteValue(name); err != nil && !errors.Is(err, winregistry.ErrNotExist) {
		return err
	}

	return nil
}

// ValueNames implements registry.Key.ValueNames
func (key *Key) ValueNames() ([]string, error) {
	return key.key.ReadValueNames(-1)
}

// SubKeyNames implements registry.Key.SubKeyNames
func (key *Key) SubKeyNames() ([]string, error) {
	return key.key.ReadSubKeyNames(-1)
}

// DeleteSubKeyTree implements registry.Key.DeleteSubKeyTree
func (key *Key) DeleteSubKeyTree(name string) error {
	return deleteTree(key.key, name)
}

// Close implements registry.Key.Close
func (key *Key) Close() error {
	return key.key.Close()
}

// deleteTree removes the subkey name of parent. A key can
// only be deleted once its subkeys are gone.
func deleteTree(parent winregistry.Key, name string) error {
	child, err := winregistry.OpenKey(parent, name, winregistry.ENUMERATE_SUB_KEYS|winregistry.QUERY_VALUE)

	if errors.Is(err, winregistry.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	subKeys, err := child.ReadSubKeyNames(-1)

	if err == nil {
		for _, subKey := range subKeys {
			if err = deleteTree(child, subKey); err != nil {
				break
			}
		}
	}

	child.Close()

	if err != nil {
		return err
	}

	return winregistry.DeleteKey(parent, name)
}
