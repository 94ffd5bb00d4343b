// Package bolt implements a registry.Hive stored in a bbolt
// database. Keys are nested buckets. Values are the entries of
// the bucket of their key.
package bolt

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jrife/profile/registry"
	bolt "go.etcd.io/bbolt"
)

var (
	rootBucket = []byte("root")
	// ErrNotWritable is returned when a key that was
	// opened for reading is modified
	ErrNotWritable = errors.New("key was not opened for writing")
	// ErrKeyDeleted is returned by the methods
	// of a key that no longer exists
	ErrKeyDeleted = errors.New("key was deleted")
)

const (
	valuePrefix  = 'v'
	subKeyPrefix = 'k'
	stringTag    = 's'
	openTimeout  = time.Second
)

var _ registry.Hive = (*Hive)(nil)

// Hive is a hive stored in a bbolt database file
type Hive struct {
	db *bolt.DB
}

// Open opens the hive stored at path, creating it if needed.
// A database can only be opened once at a time. Open fails if
// the database stays locked for more than a second.
func Open(path string) (*Hive, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: openTimeout})

	if err != nil {
		return nil, fmt.Errorf("could not open bbolt hive at %s: %w", path, err)
	}

	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(rootBucket)

		return err
	}); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not ensure root bucket exists: %w", err)
	}

	return &Hive{db: db}, nil
}

// Path returns the path of the database file
func (hive *Hive) Path() string {
	return hive.db.Path()
}

// Close closes the database
func (hive *Hive) Close() error {
	return hive.db.Close()
}

// Delete closes the database and removes its file
func (hive *Hive) Delete() error {
	path := hive.db.Path()

	if err := hive.Close(); err != nil {
		return fmt.Errorf("could not close hive: %w", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("could not remove path %s: %w", path, err)
	}

	return nil
}

// OpenKey implements registry.Hive.OpenKey
func (hive *Hive) OpenKey(path []string, writable bool) (registry.Key, error) {
	var found bool

	if err := hive.db.View(func(txn *bolt.Tx) error {
		found = bucket(txn, path) != nil

		return nil
	}); err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &Key{db: hive.db, path: path, writable: writable}, nil
}

// CreateKey implements registry.Hive.CreateKey
func (hive *Hive) CreateKey(path []string) (registry.Key, error) {
	if err := hive.db.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket(rootBucket)

		for _, name := range path {
			var err error

			if b, err = b.CreateBucketIfNotExists(subKeyName(name)); err != nil {
				return fmt.Errorf("could not create key %s: %w", name, err)
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return &Key{db: hive.db, path: path, writable: true}, nil
}

var _ registry.Key = (*Key)(nil)

// Key is an open key of a Hive. Every method
// runs in its own transaction.
type Key struct {
	db       *bolt.DB
	path     []string
	writable bool
}

func (key *Key) view(fn func(b *bolt.Bucket) error) error {
	return key.db.View(func(txn *bolt.Tx) error {
		b := bucket(txn, key.path)

		if b == nil {
			return ErrKeyDeleted
		}

		return fn(b)
	})
}

func (key *Key) update(fn func(b *bolt.Bucket) error) error {
	if !key.writable {
		return ErrNotWritable
	}

	return key.db.Update(func(txn *bolt.Tx) error {
		b := bucket(txn, key.path)

		if b == nil {
			return ErrKeyDeleted
		}

		return fn(b)
	})
}

// GetValue implements registry.Key.GetValue
func (key *Key) GetValue(name string) (string, bool, error) {
	var value string
	var ok bool

	err := key.view(func(b *bolt.Bucket) error {
		raw := b.Get(valueName(name))

		if raw == nil {
			return nil
		}

		if len(raw) == 0 || raw[0] != stringTag {
			return fmt.Errorf("value %q is not a string", name)
		}

		value, ok = string(raw[1:]), true

		return nil
	})

	return value, ok, err
}

// SetValue implements registry.Key.SetValue
func (key *Key) SetValue(name, value string) error {
	return key.update(func(b *bolt.Bucket) error {
		return b.Put(valueName(name), append([]byte{stringTag}, value...))
	})
}

// DeleteValue implements registry.Key.DeleteValue
func (key *Key) DeleteValue(name string) error {
	return key.update(func(b *bolt.Bucket) error {
		return b.Delete(valueName(name))
	})
}

// ValueNames implements registry.Key.ValueNames
func (key *Key) ValueNames() ([]string, error) {
	return key.names(valuePrefix, false)
}

// SubKeyNames implements registry.Key.SubKeyNames
func (key *Key) SubKeyNames() ([]string, error) {
	return key.names(subKeyPrefix, true)
}

func (key *Key) names(prefix byte, buckets bool) ([]string, error) {
	names := []string{}

	err := key.view(func(b *bolt.Bucket) error {
		cursor := b.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if len(k) == 0 || k[0] != prefix || (v == nil) != buckets {
				continue
			}

			names = append(names, string(k[1:]))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return names, nil
}

// DeleteSubKeyTree implements registry.Key.DeleteSubKeyTree
func (key *Key) DeleteSubKeyTree(name string) error {
	return key.update(func(b *bolt.Bucket) error {
		if err := b.DeleteBucket(subKeyName(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}

		return nil
	})
}

// Close implements registry.Key.Close
func (key *Key) Close() error {
	return nil
}

func bucket(txn *bolt.Tx, path []string) *bolt.Bucket {
	b := txn.Bucket(rootBucket)

	for _, name := range path {
		if b == nil {
			return nil
		}

		b = b.Bucket(subKeyName(name))
	}

	return b
}

func valueName(name string) []byte {
	return append([]byte{valuePrefix}, name...)
}

func subKeyName(name string) []byte {
	return append([]byte{subKeyPrefix}, name...)
}
