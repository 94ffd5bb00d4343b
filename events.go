package profile

// ChangeType describes what kind of mutation
// a change event is about
type ChangeType int

const (
	// ChangeOther is used for driver specific properties.
	// The property name is stored in ChangeEvent.Entry
	ChangeOther ChangeType = iota
	// ChangeName is used when the profile name changes
	ChangeName
	// ChangeReadOnly is used when the read-only flag changes
	ChangeReadOnly
	// ChangeSetValue is used when an entry is written
	ChangeSetValue
	// ChangeRemoveEntry is used when an entry is removed
	ChangeRemoveEntry
	// ChangeRemoveSection is used when a section is removed
	ChangeRemoveSection
)

func (changeType ChangeType) String() string {
	switch changeType {
	case ChangeName:
		return "Name"
	case ChangeReadOnly:
		return "ReadOnly"
	case ChangeSetValue:
		return "SetValue"
	case ChangeRemoveEntry:
		return "RemoveEntry"
	case ChangeRemoveSection:
		return "RemoveSection"
	}

	return "Other"
}

// ChangeEvent describes a mutation of a profile
type ChangeEvent struct {
	Type    ChangeType
	Section string
	Entry   string
	Value   interface{}
}

// ChangingEvent is passed to changing handlers
// before the mutation is applied. Setting Cancel
// abandons the mutation.
type ChangingEvent struct {
	ChangeEvent
	Cancel bool
}

// ChangingHandler is notified before a mutation
type ChangingHandler func(event *ChangingEvent)

// ChangedHandler is notified after a mutation
type ChangedHandler func(event ChangeEvent)
