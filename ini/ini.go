// Package ini implements a profile stored in a key file
// of [section] headers and key=value lines.
package ini

import (
	"strings"

	"github.com/jrife/profile"
	"github.com/jrife/profile/keyfile"
	"go.uber.org/zap"
)

const (
	// Extension is the file extension of the default name
	Extension = ".ini"

	valueBufferSize = 250
	listBufferSize  = 500
)

var _ profile.Profile = (*Profile)(nil)

// INI files cannot hold a key without a name
var errEmptyEntry = profile.InvalidArgument("entry name must not be empty")

// Option configures a Profile
type Option func(p *Profile)

// WithLogger sets the logger of the profile
func WithLogger(logger *zap.Logger) Option {
	return func(p *Profile) {
		p.SetLogger(logger)
	}
}

// WithReadOnly makes the profile read-only
func WithReadOnly() Option {
	return func(p *Profile) {
		p.Freeze()
	}
}

// Profile is a profile stored in a key file. Every call reads
// the file and every mutation writes it.
type Profile struct {
	profile.Base
}

// New creates a profile for the key file at name. If name is
// empty the default name is used.
func New(name string, options ...Option) *Profile {
	p := &Profile{Base: profile.NewBase(name, nil)}

	if p.Name() == "" {
		p.Base = profile.NewBase(DefaultName(), nil)
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// DefaultName returns the path of the running executable
// with its extension replaced by .ini
func DefaultName() string {
	return profile.DefaultNameWithoutExtension() + Extension
}

// DefaultName implements profile.Profile.DefaultName
func (p *Profile) DefaultName() string {
	return DefaultName()
}

func (p *Profile) file() *keyfile.File {
	return keyfile.New(p.Name())
}

// Clone implements profile.ReadOnlyProfile.Clone
func (p *Profile) Clone() profile.Profile {
	return &Profile{Base: p.CloneBase()}
}

// CloneReadOnly implements profile.Profile.CloneReadOnly
func (p *Profile) CloneReadOnly() profile.ReadOnlyProfile {
	clone := &Profile{Base: p.CloneBase()}
	clone.Freeze()

	return clone
}

// SetValue implements profile.Profile.SetValue
func (p *Profile) SetValue(section, entry string, value interface{}) error {
	if value == nil {
		return p.RemoveEntry(section, entry)
	}

	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	if entry == "" {
		return errEmptyEntry
	}

	if !p.RaiseChanging(profile.ChangeSetValue, section, entry, value) {
		return nil
	}

	p.Logger().Debug("set value", zap.String("operation", "SetValue"), zap.String("section", section), zap.String("entry", entry))

	if err := p.file().WriteString(section, entry, profile.FormatValue(value)); err != nil {
		return profile.StorageError("could not set value", err)
	}

	p.RaiseChanged(profile.ChangeSetValue, section, entry, value)

	return nil
}

// GetValue implements profile.ReadOnlyProfile.GetValue
func (p *Profile) GetValue(section, entry string) (string, bool, error) {
	if err := p.VerifyName(); err != nil {
		return "", false, err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return "", false, err
	}

	file := p.file()

	for size := valueBufferSize; ; size *= 2 {
		buf := make([]byte, size)
		n, err := file.GetString(section, entry, "", buf)

		if err != nil {
			return "", false, profile.StorageError("could not get value", err)
		}

		if n >= size-1 {
			continue
		}

		if n == 0 {
			if ok, err := p.HasEntry(section, entry); err != nil || !ok {
				return "", false, err
			}
		}

		return string(buf[:n]), true, nil
	}
}

// HasEntry implements profile.ReadOnlyProfile.HasEntry
func (p *Profile) HasEntry(section, entry string) (bool, error) {
	return profile.HasEntry(p, section, entry)
}

// HasSection implements profile.ReadOnlyProfile.HasSection
func (p *Profile) HasSection(section string) (bool, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return false, err
	}

	return profile.HasSection(p, section)
}

// RemoveEntry implements profile.Profile.RemoveEntry
func (p *Profile) RemoveEntry(section, entry string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	if ok, err := p.HasEntry(section, entry); err != nil || !ok {
		return err
	}

	if !p.RaiseChanging(profile.ChangeRemoveEntry, section, entry, nil) {
		return nil
	}

	p.Logger().Debug("remove entry", zap.String("operation", "RemoveEntry"), zap.String("section", section), zap.String("entry", entry))

	if err := p.file().DeleteKey(section, entry); err != nil {
		return profile.StorageError("could not remove entry", err)
	}

	p.RaiseChanged(profile.ChangeRemoveEntry, section, entry, nil)

	return nil
}

// RemoveSection implements profile.Profile.RemoveSection
func (p *Profile) RemoveSection(section string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	section, err := profile.NormalizeSection(section)

	if err != nil {
		return err
	}

	if ok, err := profile.HasSection(p, section); err != nil || !ok {
		return err
	}

	if !p.RaiseChanging(profile.ChangeRemoveSection, section, "", nil) {
		return nil
	}

	p.Logger().Debug("remove section", zap.String("operation", "RemoveSection"), zap.String("section", section))

	if err := p.file().DeleteSection(section); err != nil {
		return profile.StorageError("could not remove section", err)
	}

	p.RaiseChanged(profile.ChangeRemoveSection, section, "", nil)

	return nil
}

// GetEntryNames implements profile.ReadOnlyProfile.GetEntryNames
func (p *Profile) GetEntryNames(section string) ([]string, bool, error) {
	if err := p.VerifyName(); err != nil {
		return nil, false, err
	}

	section, err := profile.NormalizeSection(section)

	if err != nil {
		return nil, false, err
	}

	if ok, err := profile.HasSection(p, section); err != nil || !ok {
		return nil, false, err
	}

	file := p.file()
	names, err := list(func(buf []byte) (int, error) { return file.GetKeys(section, buf) })

	if err != nil {
		return nil, false, profile.StorageError("could not list entries", err)
	}

	return names, true, nil
}

// GetSectionNames implements profile.ReadOnlyProfile.GetSectionNames
func (p *Profile) GetSectionNames() ([]string, bool, error) {
	if err := p.VerifyName(); err != nil {
		return nil, false, err
	}

	file := p.file()

	if !file.Exists() {
		return nil, false, nil
	}

	names, err := list(file.GetSections)

	if err != nil {
		return nil, false, profile.StorageError("could not list sections", err)
	}

	return names, true, nil
}

// RenameSection moves every entry of section oldName into section newName.
// Entries already present in newName are overwritten.
func (p *Profile) RenameSection(oldName, newName string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	oldName, err := profile.NormalizeSection(oldName)

	if err != nil {
		return err
	}

	newName, err = profile.NormalizeSection(newName)

	if err != nil {
		return err
	}

	if oldName == newName {
		return nil
	}

	if ok, err := profile.HasSection(p, oldName); err != nil || !ok {
		return err
	}

	if !p.RaiseChanging(profile.ChangeOther, oldName, "Section", newName) {
		return nil
	}

	p.Logger().Debug("rename section", zap.String("operation", "RenameSection"), zap.String("section", oldName), zap.String("name", newName))

	if err := p.file().RenameSection(oldName, newName); err != nil {
		return profile.StorageError("could not rename section", err)
	}

	p.RaiseChanged(profile.ChangeOther, oldName, "Section", newName)

	return nil
}

// RenameEntry renames entry oldName of section to newName, replacing
// any entry already named newName. The entries keep their order.
func (p *Profile) RenameEntry(section, oldName, newName string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if err := p.VerifyName(); err != nil {
		return err
	}

	section, oldName, err := names(section, oldName)

	if err != nil {
		return err
	}

	newName, err = profile.NormalizeEntry(newName)

	if err != nil {
		return err
	}

	if newName == "" {
		return errEmptyEntry
	}

	entries, ok, err := p.GetEntryNames(section)

	if err != nil || !ok || oldName == newName || !profile.Contains(entries, oldName) {
		return err
	}

	if !p.RaiseChanging(profile.ChangeOther, section, "Entry", newName) {
		return nil
	}

	p.Logger().Debug("rename entry", zap.String("operation", "RenameEntry"), zap.String("section", section), zap.String("entry", oldName), zap.String("name", newName))

	values := make([]string, len(entries))

	for i, entry := range entries {
		value, _, err := p.GetValue(section, entry)

		if err != nil {
			return err
		}

		values[i] = value
	}

	file := p.file()

	for _, entry := range entries {
		if err := file.DeleteKey(section, entry); err != nil {
			return profile.StorageError("could not rename entry", err)
		}
	}

	for i, entry := range entries {
		if entry == newName {
			continue
		} else if entry == oldName {
			entry = newName
		}

		if err := file.WriteString(section, entry, values[i]); err != nil {
			return profile.StorageError("could not rename entry", err)
		}
	}

	p.RaiseChanged(profile.ChangeOther, section, "Entry", newName)

	return nil
}

func names(section, entry string) (string, string, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return "", "", err
	}

	entry, err = profile.NormalizeEntry(entry)

	if err != nil {
		return "", "", err
	}

	return section, entry, nil
}

// list calls a list function with growing buffers until
// the result is no longer truncated
func list(get func(buf []byte) (int, error)) ([]string, error) {
	for size := listBufferSize; ; size *= 2 {
		buf := make([]byte, size)
		n, err := get(buf)

		if err != nil {
			return nil, err
		}

		if n >= size-2 {
			continue
		}

		if n == 0 {
			return []string{}, nil
		}

		return strings.Split(string(buf[:n-1]), "\x00"), nil
	}
}
