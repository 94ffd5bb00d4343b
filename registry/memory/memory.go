// Package memory implements a registry.Hive that lives in memory.
// Value and subkey names are enumerated in sorted order.
package memory

import (
	"errors"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/jrife/profile/registry"
)

// ErrNotWritable is returned when a key that was
// opened for reading is modified
var ErrNotWritable = errors.New("key was not opened for writing")

var _ registry.Hive = (*Hive)(nil)

type node struct {
	values  *treemap.Map
	subKeys *treemap.Map
}

func newNode() *node {
	return &node{
		values:  treemap.NewWithStringComparator(),
		subKeys: treemap.NewWithStringComparator(),
	}
}

func (n *node) child(name string) *node {
	child, ok := n.subKeys.Get(name)

	if !ok {
		return nil
	}

	return child.(*node)
}

// Hive is an in-memory hive. It is safe for concurrent use.
type Hive struct {
	mu   sync.RWMutex
	root *node
}

// New returns an empty hive
func New() *Hive {
	return &Hive{root: newNode()}
}

// OpenKey implements registry.Hive.OpenKey
func (hive *Hive) OpenKey(path []string, writable bool) (registry.Key, error) {
	hive.mu.RLock()
	defer hive.mu.RUnlock()

	n := hive.root

	for _, name := range path {
		if n = n.child(name); n == nil {
			return nil, nil
		}
	}

	return &Key{hive: hive, node: n, writable: writable}, nil
}

// CreateKey implements registry.Hive.CreateKey
func (hive *Hive) CreateKey(path []string) (registry.Key, error) {
	hive.mu.Lock()
	defer hive.mu.Unlock()

	n := hive.root

	for _, name := range path {
		child := n.child(name)

		if child == nil {
			child = newNode()
			n.subKeys.Put(name, child)
		}

		n = child
	}

	return &Key{hive: hive, node: n, writable: true}, nil
}

var _ registry.Key = (*Key)(nil)

// Key is an open key of a Hive
type Key struct {
	hive     *Hive
	node     *node
	writable bool
}

// GetValue implements registry.Key.GetValue
func (key *Key) GetValue(name string) (string, bool, error) {
	key.hive.mu.RLock()
	defer key.hive.mu.RUnlock()

	value, ok := key.node.values.Get(name)

	if !ok {
		return "", false, nil
	}

	return value.(string), true, nil
}

// SetValue implements registry.Key.SetValue
func (key *Key) SetValue(name, value string) error {
	if !key.writable {
		return ErrNotWritable
	}

	key.hive.mu.Lock()
	defer key.hive.mu.Unlock()

	key.node.values.Put(name, value)

	return nil
}

// DeleteValue implements registry.Key.DeleteValue
func (key *Key) DeleteValue(name string) error {
	if !key.writable {
		return ErrNotWritable
	}

	key.hive.mu.Lock()
	defer key.hive.mu.Unlock()

	key.node.values.Remove(name)

	return nil
}

// ValueNames implements registry.Key.ValueNames
func (key *Key) ValueNames() ([]string, error) {
	key.hive.mu.RLock()
	defer key.hive.mu.RUnlock()

	return stringKeys(key.node.values), nil
}

// SubKeyNames implements registry.Key.SubKeyNames
func (key *Key) SubKeyNames() ([]string, error) {
	key.hive.mu.RLock()
	defer key.hive.mu.RUnlock()

	return stringKeys(key.node.subKeys), nil
}

// DeleteSubKeyTree implements registry.Key.DeleteSubKeyTree
func (key *Key) DeleteSubKeyTree(name string) error {
	if !key.writable {
		return ErrNotWritable
	}

	key.hive.mu.Lock()
	defer key.hive.mu.Unlock()

	key.node.subKeys.Remove(name)

	return nil
}

// Close implements registry.Key.Close
func (key *Key) Close() error {
	return nil
}

func stringKeys(m *treemap.Map) []string {
	keys := make([]string, 0, m.Size())

	for _, k := range m.Keys() {
		keys = append(keys, k.(string))
	}

	return keys
}
