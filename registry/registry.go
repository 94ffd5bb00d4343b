// Package registry implements a profile stored in a hierarchical
// key/value hive such as the Windows registry. The profile name is
// the path of a key below the hive root, sections are its subkeys and
// entries are the values of those subkeys. The empty section addresses
// the values of the profile key itself.
package registry

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jrife/profile"
	"go.uber.org/zap"
)

// DefaultRoot is the key below which default profile names live
const DefaultRoot = "Software"

var _ profile.Profile = (*Profile)(nil)

type options struct {
	logger   *zap.Logger
	readOnly bool
}

// Option configures a Profile
type Option func(options *options)

// WithLogger sets the logger of the profile
func WithLogger(logger *zap.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithReadOnly makes the profile read-only
func WithReadOnly() Option {
	return func(options *options) {
		options.readOnly = true
	}
}

// Profile is a profile stored in a Hive
type Profile struct {
	profile.Base
	hive Hive
}

// New creates a profile stored under the key at name in hive.
// If name is empty the default name is used.
func New(hive Hive, name string, opts ...Option) (*Profile, error) {
	if hive == nil {
		return nil, profile.InvalidArgument("hive is nil")
	}

	var options options

	for _, opt := range opts {
		opt(&options)
	}

	if strings.TrimSpace(name) == "" {
		name = DefaultName()
	}

	p := &Profile{Base: profile.NewBase(name, options.logger), hive: hive}

	if options.readOnly {
		p.Freeze()
	}

	return p, nil
}

// DefaultName returns Software/<name of the running executable>
func DefaultName() string {
	return JoinPath(DefaultRoot, filepath.Base(profile.DefaultNameWithoutExtension()))
}

// DefaultName implements profile.Profile.DefaultName
func (p *Profile) DefaultName() string {
	return DefaultName()
}

// Hive returns the hive holding the profile key
func (p *Profile) Hive() Hive {
	return p.hive
}

// SetHive moves this profile to another hive
func (p *Profile) SetHive(hive Hive) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	if hive == nil {
		return profile.InvalidArgument("hive is nil")
	}

	if p.hive == hive || !p.RaiseChanging(profile.ChangeOther, "", "RootKey", hive) {
		return nil
	}

	p.hive = hive
	p.RaiseChanged(profile.ChangeOther, "", "RootKey", hive)

	return nil
}

// Close closes the hive if it holds resources. Clones
// share the hive of the profile they were made from.
func (p *Profile) Close() error {
	if closer, ok := p.hive.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// Clone implements profile.ReadOnlyProfile.Clone
func (p *Profile) Clone() profile.Profile {
	return &Profile{Base: p.CloneBase(), hive: p.hive}
}

// CloneReadOnly implements profile.Profile.CloneReadOnly
func (p *Profile) CloneReadOnly() profile.ReadOnlyProfile {
	clone := &Profile{Base: p.CloneBase(), hive: p.hive}
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

	if err := p.verifyName(); err != nil {
		return err
	}

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	if !p.RaiseChanging(profile.ChangeSetValue, section, entry, value) {
		return nil
	}

	path := p.path(section)

	p.Logger().Debug("set value", zap.String("operation", "SetValue"), zap.String("key", JoinPath(path...)), zap.String("entry", entry))

	key, err := p.hive.CreateKey(path)

	if err != nil {
		return profile.StorageError(fmt.Sprintf("could not create key %s", JoinPath(path...)), err)
	}

	defer key.Close()

	if err := key.SetValue(entry, profile.FormatValue(value)); err != nil {
		return profile.StorageError(fmt.Sprintf("could not set value %q", entry), err)
	}

	p.RaiseChanged(profile.ChangeSetValue, section, entry, value)

	return nil
}

// GetValue implements profile.ReadOnlyProfile.GetValue
func (p *Profile) GetValue(section, entry string) (string, bool, error) {
	section, entry, err := names(section, entry)

	if err != nil {
		return "", false, err
	}

	key, err := p.openKey(p.path(section), false)

	if err != nil || key == nil {
		return "", false, err
	}

	defer key.Close()

	value, ok, err := key.GetValue(entry)

	if err != nil {
		return "", false, profile.StorageError(fmt.Sprintf("could not get value %q", entry), err)
	}

	return value, ok, nil
}

// HasEntry implements profile.ReadOnlyProfile.HasEntry
func (p *Profile) HasEntry(section, entry string) (bool, error) {
	return profile.HasEntry(p, section, entry)
}

// HasSection implements profile.ReadOnlyProfile.HasSection
func (p *Profile) HasSection(section string) (bool, error) {
	section, err := normalizeSection(section)

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

	section, entry, err := names(section, entry)

	if err != nil {
		return err
	}

	key, err := p.openKey(p.path(section), true)

	if err != nil || key == nil {
		return err
	}

	defer key.Close()

	if _, ok, err := key.GetValue(entry); err != nil {
		return profile.StorageError(fmt.Sprintf("could not get value %q", entry), err)
	} else if !ok {
		return nil
	}

	if !p.RaiseChanging(profile.ChangeRemoveEntry, section, entry, nil) {
		return nil
	}

	p.Logger().Debug("remove entry", zap.String("operation", "RemoveEntry"), zap.String("section", section), zap.String("entry", entry))

	if err := key.DeleteValue(entry); err != nil {
		return profile.StorageError(fmt.Sprintf("could not delete value %q", entry), err)
	}

	p.RaiseChanged(profile.ChangeRemoveEntry, section, entry, nil)

	return nil
}

// RemoveSection implements profile.Profile.RemoveSection. Only
// sections listed by GetSectionNames can be removed.
func (p *Profile) RemoveSection(section string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	section, err := normalizeSection(section)

	if err != nil {
		return err
	}

	if ok, err := profile.HasSection(p, section); err != nil || !ok {
		return err
	}

	if !p.RaiseChanging(profile.ChangeRemoveSection, section, "", nil) {
		return nil
	}

	key, err := p.openKey(SplitPath(p.Name()), true)

	if err != nil || key == nil {
		return err
	}

	defer key.Close()

	p.Logger().Debug("remove section", zap.String("operation", "RemoveSection"), zap.String("section", section))

	if err := key.DeleteSubKeyTree(section); err != nil {
		return profile.StorageError(fmt.Sprintf("could not delete key %s", section), err)
	}

	p.RaiseChanged(profile.ChangeRemoveSection, section, "", nil)

	return nil
}

// GetEntryNames implements profile.ReadOnlyProfile.GetEntryNames
func (p *Profile) GetEntryNames(section string) ([]string, bool, error) {
	section, err := normalizeSection(section)

	if err != nil {
		return nil, false, err
	}

	key, err := p.openKey(p.path(section), false)

	if err != nil || key == nil {
		return nil, false, err
	}

	defer key.Close()

	names, err := key.ValueNames()

	if err != nil {
		return nil, false, profile.StorageError("could not list values", err)
	}

	return names, true, nil
}

// GetSectionNames implements profile.ReadOnlyProfile.GetSectionNames
func (p *Profile) GetSectionNames() ([]string, bool, error) {
	key, err := p.openKey(SplitPath(p.Name()), false)

	if err != nil || key == nil {
		return nil, false, err
	}

	defer key.Close()

	names, err := key.SubKeyNames()

	if err != nil {
		return nil, false, profile.StorageError("could not list subkeys", err)
	}

	return names, true, nil
}

func (p *Profile) openKey(path []string, writable bool) (Key, error) {
	if err := p.verifyName(); err != nil {
		return nil, err
	}

	key, err := p.hive.OpenKey(path, writable)

	if err != nil {
		return nil, profile.StorageError(fmt.Sprintf("could not open key %s", JoinPath(path...)), err)
	}

	return key, nil
}

// verifyName fails with profile.ErrNoName if the name has no key
// below the hive root. A name made only of separators would
// otherwise address the root itself.
func (p *Profile) verifyName() error {
	if err := p.VerifyName(); err != nil {
		return err
	}

	if len(SplitPath(p.Name())) == 0 {
		return fmt.Errorf("%w: %q names the hive root", profile.ErrNoName, p.Name())
	}

	return nil
}

// path returns the path of the key holding section
func (p *Profile) path(section string) []string {
	path := SplitPath(p.Name())

	if section != "" {
		path = append(path, section)
	}

	return path
}

func normalizeSection(section string) (string, error) {
	section, err := profile.NormalizeSection(section)

	if err != nil {
		return "", err
	}

	if strings.ContainsAny(section, "/\\") {
		return "", profile.InvalidArgument("section %q contains a key separator", section)
	}

	return section, nil
}

func names(section, entry string) (string, string, error) {
	section, err := normalizeSection(section)

	if err != nil {
		return "", "", err
	}

	entry, err = profile.NormalizeEntry(entry)

	if err != nil {
		return "", "", err
	}

	return section, entry, nil
}
