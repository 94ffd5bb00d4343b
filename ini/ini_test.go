package ini_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/profile"
	"github.com/jrife/profile/ini"
	"go.uber.org/zap/zaptest"
)

func tempProfile(t *testing.T) *ini.Profile {
	return ini.New(filepath.Join(t.TempDir(), "test.ini"), ini.WithLogger(zaptest.NewLogger(t)))
}

func TestSelfTest(t *testing.T) {
	p := tempProfile(t)

	if err := profile.Test(p, true); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}
}

func TestPort(t *testing.T) {
	p := tempProfile(t)

	if err := p.SetValue("General", "Port", "8080"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	port, err := profile.GetInt(p, "General", "Port", 0)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if port != 8080 {
		t.Fatalf("expected port to be 8080, got %d", port)
	}
}

func TestMissingFile(t *testing.T) {
	p := tempProfile(t)

	if _, ok, err := p.GetSectionNames(); err != nil || ok {
		t.Fatalf("expected sections to be absent, got %v, %#v", ok, err)
	}

	if _, ok, err := p.GetEntryNames("General"); err != nil || ok {
		t.Fatalf("expected entries to be absent, got %v, %#v", ok, err)
	}

	if _, ok, err := p.GetValue("General", "Port"); err != nil || ok {
		t.Fatalf("expected value to be absent, got %v, %#v", ok, err)
	}

	if err := p.RemoveSection("General"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, err := os.Stat(p.Name()); !os.IsNotExist(err) {
		t.Fatalf("expected file not to be created, got %#v", err)
	}
}

func TestLongValuesAndLists(t *testing.T) {
	p := tempProfile(t)
	value := string(bytes.Repeat([]byte("x"), 1000))
	var expected []string

	for i := 0; i < 100; i++ {
		entry := fmt.Sprintf("Entry number %03d", i)
		expected = append(expected, entry)

		if err := p.SetValue("Large", entry, i); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}
	}

	if err := p.SetValue("Large", "Long", value); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	expected = append(expected, "Long")

	entries, ok, err := p.GetEntryNames("Large")

	if err != nil || !ok {
		t.Fatalf("expected entries to exist, got %v, %#v", ok, err)
	}

	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf(diff)
	}

	result, ok, err := p.GetValue("Large", "Long")

	if err != nil || !ok {
		t.Fatalf("expected value to exist, got %v, %#v", ok, err)
	}

	if diff := cmp.Diff(value, result); diff != "" {
		t.Fatalf(diff)
	}
}

func TestReadOnly(t *testing.T) {
	p := tempProfile(t)

	if err := p.SetValue("General", "Port", 8080); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	before, err := os.ReadFile(p.Name())

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	readOnly := ini.New(p.Name(), ini.WithReadOnly())

	mutations := map[string]func() error{
		"SetValue":      func() error { return readOnly.SetValue("General", "Port", 1) },
		"SetNil":        func() error { return readOnly.SetValue("General", "Port", nil) },
		"RemoveEntry":   func() error { return readOnly.RemoveEntry("General", "Port") },
		"RemoveMissing": func() error { return readOnly.RemoveEntry("Missing", "Port") },
		"RemoveSection": func() error { return readOnly.RemoveSection("General") },
		"RenameSection": func() error { return readOnly.RenameSection("General", "Other") },
		"RenameEntry":   func() error { return readOnly.RenameEntry("General", "Port", "Other") },
		"SetName":       func() error { return readOnly.SetName("other.ini") },
		"SetReadOnly":   func() error { return readOnly.SetReadOnly(false) },
	}

	for name, mutation := range mutations {
		t.Run(name, func(t *testing.T) {
			if err := mutation(); !errors.Is(err, profile.ErrIllegalState) {
				t.Fatalf("expected err to be ErrIllegalState, got %#v", err)
			}

			after, err := os.ReadFile(p.Name())

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if !bytes.Equal(before, after) {
				t.Fatalf("expected file to be unchanged")
			}
		})
	}
}

func TestRenameSection(t *testing.T) {
	p := tempProfile(t)

	if err := p.SetValue("Old", "A", 1); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.SetValue("Old", "B", 2); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.RenameSection("Old", "New"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	sections, _, err := p.GetSectionNames()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{"New"}, sections); diff != "" {
		t.Fatalf(diff)
	}

	if value, err := profile.GetInt(p, "New", "B", 0); err != nil || value != 2 {
		t.Fatalf("expected B to be 2, got %d, %#v", value, err)
	}
}

func TestRenameEntry(t *testing.T) {
	p := tempProfile(t)

	for i, entry := range []string{"A", "B", "C"} {
		if err := p.SetValue("Section", entry, i); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}
	}

	if err := p.RenameEntry("Section", "B", "D"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	entries, _, err := p.GetEntryNames("Section")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{"A", "D", "C"}, entries); diff != "" {
		t.Fatalf(diff)
	}

	if value, err := profile.GetInt(p, "Section", "D", -1); err != nil || value != 1 {
		t.Fatalf("expected D to be 1, got %d, %#v", value, err)
	}

	if err := p.RenameEntry("Section", "A", "C"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	entries, _, err = p.GetEntryNames("Section")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{"C", "D"}, entries); diff != "" {
		t.Fatalf(diff)
	}

	if value, err := profile.GetInt(p, "Section", "C", -1); err != nil || value != 0 {
		t.Fatalf("expected C to be 0, got %d, %#v", value, err)
	}
}

func TestNoName(t *testing.T) {
	p := ini.New("x")

	if err := p.SetName(""); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.SetValue("General", "Port", 1); !errors.Is(err, profile.ErrNoName) {
		t.Fatalf("expected err to be ErrNoName, got %#v", err)
	}

	if _, _, err := p.GetValue("General", "Port"); !errors.Is(err, profile.ErrIllegalState) {
		t.Fatalf("expected err to be ErrIllegalState, got %#v", err)
	}
}

func TestEmptyEntry(t *testing.T) {
	p := tempProfile(t)
	events := 0

	p.OnChanging(func(event *profile.ChangingEvent) { events++ })

	if err := p.SetValue("General", "  ", "value"); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}

	if err := p.SetValue("General", "A", 1); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := p.RenameEntry("General", "A", ""); !errors.Is(err, profile.ErrInvalidArgument) {
		t.Fatalf("expected err to be ErrInvalidArgument, got %#v", err)
	}

	if events != 1 {
		t.Fatalf("expected only the valid write to raise an event, got %d", events)
	}
}
