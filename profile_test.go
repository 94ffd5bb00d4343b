package profile_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/profile"
	"github.com/jrife/profile/registry"
	"github.com/jrife/profile/registry/memory"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func tempProfile(t *testing.T) *registry.Profile {
	p, err := registry.New(memory.New(), "Software/Test", registry.WithLogger(zaptest.NewLogger(t)))

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	return p
}

func TestNormalize(t *testing.T) {
	testCases := map[string]struct {
		name     string
		expected string
		err      error
	}{
		"trimmed":  {name: "  General \t", expected: "General"},
		"empty":    {name: "", expected: ""},
		"nul":      {name: "a\x00b", err: profile.ErrInvalidArgument},
		"invalid":  {name: "a\xffb", err: profile.ErrInvalidArgument},
		"internal": {name: "Main Window", expected: "Main Window"},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			section, err := profile.NormalizeSection(testCase.name)

			if !errors.Is(err, testCase.err) {
				t.Fatalf("expected err to be %#v, got %#v", testCase.err, err)
			}

			if diff := cmp.Diff(testCase.expected, section); diff != "" {
				t.Fatalf(diff)
			}
		})
	}
}

func TestTypedGetters(t *testing.T) {
	p := tempProfile(t)
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	values := map[string]interface{}{
		"Int":    42,
		"Float":  2.5,
		"Bool":   true,
		"Time":   now,
		"Text":   "abc",
		"Blank":  "",
		"Int64":  int64(1) << 40,
		"Uint8":  uint8(7),
		"String": []byte("raw"),
	}

	for entry, value := range values {
		if err := p.SetValue("Values", entry, value); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}
	}

	if v, err := profile.GetInt(p, "Values", "Int", 0); err != nil || v != 42 {
		t.Fatalf("expected 42, got %d, %#v", v, err)
	}

	if v, err := profile.GetInt64(p, "Values", "Int64", 0); err != nil || v != 1<<40 {
		t.Fatalf("expected %d, got %d, %#v", int64(1)<<40, v, err)
	}

	if v, err := profile.GetInt(p, "Values", "Uint8", 0); err != nil || v != 7 {
		t.Fatalf("expected 7, got %d, %#v", v, err)
	}

	if v, err := profile.GetFloat(p, "Values", "Float", 0); err != nil || v != 2.5 {
		t.Fatalf("expected 2.5, got %v, %#v", v, err)
	}

	if v, err := profile.GetBool(p, "Values", "Bool", false); err != nil || !v {
		t.Fatalf("expected true, got %v, %#v", v, err)
	}

	if v, err := profile.GetTime(p, "Values", "Time", time.Time{}); err != nil || !v.Equal(now) {
		t.Fatalf("expected %v, got %v, %#v", now, v, err)
	}

	if v, err := profile.GetString(p, "Values", "String", ""); err != nil || v != "raw" {
		t.Fatalf("expected raw, got %q, %#v", v, err)
	}

	// Unparsable values yield the zero value, not the default
	if v, err := profile.GetInt(p, "Values", "Text", 5); err != nil || v != 0 {
		t.Fatalf("expected 0, got %d, %#v", v, err)
	}

	if v, err := profile.GetBool(p, "Values", "Text", true); err != nil || v {
		t.Fatalf("expected false, got %v, %#v", v, err)
	}

	if v, err := profile.GetFloat(p, "Values", "Blank", 1); err != nil || v != 0 {
		t.Fatalf("expected 0, got %v, %#v", v, err)
	}

	// Absent values yield the default
	if v, err := profile.GetInt(p, "Values", "Missing", 5); err != nil || v != 5 {
		t.Fatalf("expected 5, got %d, %#v", v, err)
	}

	if v, err := profile.GetString(p, "Missing", "Missing", "def"); err != nil || v != "def" {
		t.Fatalf("expected def, got %q, %#v", v, err)
	}
}

func TestDecimalGetters(t *testing.T) {
	testCases := map[string]struct {
		stored       string
		expectedInt  int64
		expectedBool bool
	}{
		"plain":        {stored: "8080", expectedInt: 8080},
		"leading zero": {stored: "010", expectedInt: 10},
		"not octal":    {stored: "08", expectedInt: 8},
		"port":         {stored: "08080", expectedInt: 8080},
		"negative":     {stored: "-042", expectedInt: -42},
		"spaces":       {stored: " 17 ", expectedInt: 17},
		"hex":          {stored: "0x10", expectedInt: 0},
		"one":          {stored: "1", expectedInt: 1},
		"t":            {stored: "t", expectedBool: false},
		"true":         {stored: "True", expectedBool: true},
		"upper true":   {stored: "TRUE", expectedBool: true},
		"false":        {stored: "false", expectedBool: false},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			p := tempProfile(t)

			if err := p.SetValue("General", "Value", testCase.stored); err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			i, err := profile.GetInt(p, "General", "Value", -1)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(int(testCase.expectedInt), i); diff != "" {
				t.Fatalf(diff)
			}

			i64, err := profile.GetInt64(p, "General", "Value", -1)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.expectedInt, i64); diff != "" {
				t.Fatalf(diff)
			}

			b, err := profile.GetBool(p, "General", "Value", true)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.expectedBool, b); diff != "" {
				t.Fatalf(diff)
			}
		})
	}
}

func TestSetName(t *testing.T) {
	p := tempProfile(t)
	var changing []profile.ChangeEvent
	var changed []profile.ChangeEvent

	p.OnChanging(func(event *profile.ChangingEvent) {
		changing = append(changing, event.ChangeEvent)
	})
	p.OnChanged(func(event profile.ChangeEvent) {
		changed = append(changed, event)
	})

	if err := p.SetName("  Software/Other  "); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.SetName("Software/Other"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff("Software/Other", p.Name()); diff != "" {
		t.Fatalf(diff)
	}

	expected := []profile.ChangeEvent{{Type: profile.ChangeName, Value: "Software/Other"}}

	if diff := cmp.Diff(expected, changing); diff != "" {
		t.Fatalf(diff)
	}

	if diff := cmp.Diff(expected, changed); diff != "" {
		t.Fatalf(diff)
	}
}

func TestCancelSetName(t *testing.T) {
	p := tempProfile(t)

	p.OnChanging(func(event *profile.ChangingEvent) {
		event.Cancel = true
	})

	if err := p.SetName("Software/Other"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff("Software/Test", p.Name()); diff != "" {
		t.Fatalf(diff)
	}
}

func TestSetReadOnly(t *testing.T) {
	p := tempProfile(t)

	if err := p.SetReadOnly(false); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.SetReadOnly(true); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.SetReadOnly(false); !errors.Is(err, profile.ErrReadOnly) {
		t.Fatalf("expected err to be ErrReadOnly, got %#v", err)
	}

	if err := p.SetReadOnly(true); !errors.Is(err, profile.ErrIllegalState) {
		t.Fatalf("expected err to be ErrIllegalState, got %#v", err)
	}

	if !p.ReadOnly() {
		t.Fatalf("expected profile to be read-only")
	}
}

func TestCloneHandlers(t *testing.T) {
	p := tempProfile(t)
	calls := 0

	p.OnChanged(func(event profile.ChangeEvent) { calls++ })

	clone := p.Clone()

	if err := clone.SetValue("S", "E", 1); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if calls != 1 {
		t.Fatalf("expected the clone to notify the handlers of the original, got %d calls", calls)
	}

	clone.OnChanged(func(event profile.ChangeEvent) { calls += 10 })

	if err := p.SetValue("S", "E", 2); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if calls != 2 {
		t.Fatalf("expected handlers added to the clone not to be shared, got %d calls", calls)
	}
}

func TestCopyNilSource(t *testing.T) {
	if err := profile.Copy(tempProfile(t), nil); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}
}

func TestChangeTypeString(t *testing.T) {
	testCases := map[profile.ChangeType]string{
		profile.ChangeOther:         "Other",
		profile.ChangeName:          "Name",
		profile.ChangeReadOnly:      "ReadOnly",
		profile.ChangeSetValue:      "SetValue",
		profile.ChangeRemoveEntry:   "RemoveEntry",
		profile.ChangeRemoveSection: "RemoveSection",
	}

	for changeType, expected := range testCases {
		if diff := cmp.Diff(expected, changeType.String()); diff != "" {
			t.Fatalf(diff)
		}
	}
}

func TestPluginOptions(t *testing.T) {
	logger := zap.NewNop()
	options := profile.PluginOptions{
		"path":      "a.ini",
		"read_only": true,
		"logger":    logger,
		"bad":       3,
	}

	if path, err := options.String("path"); err != nil || path != "a.ini" {
		t.Fatalf("expected a.ini, got %q, %#v", path, err)
	}

	if missing, err := options.String("missing"); err != nil || missing != "" {
		t.Fatalf("expected empty string, got %q, %#v", missing, err)
	}

	if _, err := options.RequiredString("missing"); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}

	if _, err := options.String("bad"); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}

	if readOnly, err := options.Bool("read_only"); err != nil || !readOnly {
		t.Fatalf("expected true, got %v, %#v", readOnly, err)
	}

	if _, err := options.Bool("path"); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}

	if l, err := options.Logger(); err != nil || l != logger {
		t.Fatalf("expected logger to be returned, got %v, %#v", l, err)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := profile.StorageError("could not write", cause)

	if !errors.Is(err, profile.ErrStorage) || !errors.Is(err, cause) {
		t.Fatalf("expected err to wrap both ErrStorage and its cause, got %#v", err)
	}

	if profile.StorageError("could not write", nil) != nil {
		t.Fatalf("expected nil cause to yield nil")
	}
}
