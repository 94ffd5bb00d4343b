package profile

// ReadOnlyProfile is the read side of a profile
type ReadOnlyProfile interface {
	// Name returns the name of this profile. Depending on the
	// driver it is a file path or a registry key path.
	Name() string
	// ReadOnly returns true if this profile rejects mutations
	ReadOnly() bool
	// GetValue returns the value of an entry. ok is false if the
	// section or entry does not exist. A missing backing store is
	// not an error.
	GetValue(section, entry string) (value string, ok bool, err error)
	// HasEntry returns true if the entry exists
	HasEntry(section, entry string) (bool, error)
	// HasSection returns true if the section exists
	HasSection(section string) (bool, error)
	// GetEntryNames lists the entries in a section in storage order.
	// ok is false if the section does not exist. An existing
	// section with no entries returns an empty list and ok = true.
	GetEntryNames(section string) (names []string, ok bool, err error)
	// GetSectionNames lists the sections in storage order. ok is false
	// if the backing store does not exist.
	GetSectionNames() (names []string, ok bool, err error)
	// Clone returns a copy of this profile. The copy shares the
	// change handlers registered so far.
	Clone() Profile
}

// Profile is a read-write settings store
type Profile interface {
	ReadOnlyProfile
	// DefaultName returns the name a profile of this driver
	// gets when none is given
	DefaultName() string
	// SetName changes the name of this profile. The name is trimmed.
	SetName(name string) error
	// SetReadOnly sets the read-only flag. Once the flag is set
	// it can never be cleared and SetReadOnly returns ErrReadOnly.
	SetReadOnly(readOnly bool) error
	// SetValue writes an entry, creating its section if needed.
	// A nil value removes the entry. It must return ErrReadOnly
	// if the profile is read-only and ErrInvalidArgument if either
	// name cannot be addressed.
	SetValue(section, entry string, value interface{}) error
	// RemoveEntry removes an entry. It has no effect if the
	// entry does not exist.
	RemoveEntry(section, entry string) error
	// RemoveSection removes a section and all of its entries.
	// It has no effect if the section does not exist.
	RemoveSection(section string) error
	// CloneReadOnly returns a copy of this profile that
	// rejects all mutations
	CloneReadOnly() ReadOnlyProfile
	// OnChanging registers a handler that runs before every mutation
	OnChanging(handler ChangingHandler)
	// OnChanged registers a handler that runs after every mutation
	OnChanged(handler ChangedHandler)
}

// PluginOptions holds driver specific options
// for creating a profile
type PluginOptions map[string]interface{}

// Plugin represents a profile driver
type Plugin interface {
	// Name returns the name of the driver
	Name() string
	// NewProfile returns a profile of this driver
	// configured using options
	NewProfile(options PluginOptions) (Profile, error)
	// NewTempProfile returns a profile of this driver backed by
	// a fresh temporary store. It is meant for tests that need
	// a profile without knowing how to configure the driver.
	// The returned function deletes the temporary store.
	NewTempProfile() (Profile, func(), error)
}
