package profile

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Base holds the state shared by every driver: the name,
// the read-only flag and the change handlers. Drivers embed
// it and call its Verify and Raise helpers from their mutators.
type Base struct {
	name     string
	readOnly bool
	changing []ChangingHandler
	changed  []ChangedHandler
	logger   *zap.Logger
}

// NewBase creates a Base. If logger is nil
// the global zap logger is used.
func NewBase(name string, logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.L()
	}

	return Base{name: strings.TrimSpace(name), logger: logger}
}

// CloneBase copies this base. The handler lists are copied
// so the clone notifies the same handlers, but handlers registered
// later on either instance are not shared.
func (base *Base) CloneBase() Base {
	return Base{
		name:     base.name,
		readOnly: base.readOnly,
		changing: append([]ChangingHandler(nil), base.changing...),
		changed:  append([]ChangedHandler(nil), base.changed...),
		logger:   base.logger,
	}
}

// Name implements ReadOnlyProfile.Name
func (base *Base) Name() string {
	return base.name
}

// ReadOnly implements ReadOnlyProfile.ReadOnly
func (base *Base) ReadOnly() bool {
	return base.readOnly
}

// Logger returns the logger of this profile
func (base *Base) Logger() *zap.Logger {
	return base.logger
}

// SetLogger replaces the logger of this profile
func (base *Base) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.L()
	}

	base.logger = logger
}

// SetName implements Profile.SetName
func (base *Base) SetName(name string) error {
	if err := base.VerifyNotReadOnly(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)

	if base.name == name || !base.RaiseChanging(ChangeName, "", "", name) {
		return nil
	}

	base.name = name
	base.RaiseChanged(ChangeName, "", "", name)

	return nil
}

// SetReadOnly implements Profile.SetReadOnly
func (base *Base) SetReadOnly(readOnly bool) error {
	if err := base.VerifyNotReadOnly(); err != nil {
		return err
	}

	if base.readOnly == readOnly || !base.RaiseChanging(ChangeReadOnly, "", "", readOnly) {
		return nil
	}

	base.readOnly = readOnly
	base.RaiseChanged(ChangeReadOnly, "", "", readOnly)

	return nil
}

// Freeze permanently marks this profile read-only without
// notifying any handler. It is used to build read-only clones.
func (base *Base) Freeze() {
	base.readOnly = true
}

// OnChanging implements Profile.OnChanging
func (base *Base) OnChanging(handler ChangingHandler) {
	base.changing = append(base.changing, handler)
}

// OnChanged implements Profile.OnChanged
func (base *Base) OnChanged(handler ChangedHandler) {
	base.changed = append(base.changed, handler)
}

// RaiseChanging notifies the changing handlers in registration
// order. It stops at the first handler that cancels and returns
// false in that case.
func (base *Base) RaiseChanging(changeType ChangeType, section, entry string, value interface{}) bool {
	if len(base.changing) == 0 {
		return true
	}

	event := &ChangingEvent{ChangeEvent: ChangeEvent{Type: changeType, Section: section, Entry: entry, Value: value}}

	for _, handler := range base.changing {
		handler(event)

		if event.Cancel {
			base.logger.Debug("change cancelled", zap.Stringer("type", changeType), zap.String("section", section), zap.String("entry", entry))

			return false
		}
	}

	return true
}

// RaiseChanged notifies the changed handlers in registration order
func (base *Base) RaiseChanged(changeType ChangeType, section, entry string, value interface{}) {
	event := ChangeEvent{Type: changeType, Section: section, Entry: entry, Value: value}

	for _, handler := range base.changed {
		handler(event)
	}
}

// VerifyNotReadOnly returns ErrReadOnly if this profile is read-only
func (base *Base) VerifyNotReadOnly() error {
	if base.readOnly {
		return ErrReadOnly
	}

	return nil
}

// VerifyName returns ErrNoName if this profile has no name
func (base *Base) VerifyName() error {
	if base.name == "" {
		return ErrNoName
	}

	return nil
}

// DefaultNameWithoutExtension returns the path of the running
// executable without its extension. It returns "profile" if the
// executable path cannot be determined.
func DefaultNameWithoutExtension() string {
	executable, err := os.Executable()

	if err != nil || executable == "" {
		return "profile"
	}

	return strings.TrimSuffix(executable, filepath.Ext(executable))
}
