package profile

import (
	"errors"
	"fmt"
	"time"
)

// TestSection is the section used by Test
const TestSection = "Profile Test"

// Test exercises every rule of the Profile contract against p.
// Entries are written to TestSection. If cleanup is true the
// section is removed again once the checks pass.
func Test(p Profile, cleanup bool) error {
	var step string

	fail := func(err error) error {
		return fmt.Errorf("test failed while %s: %w", step, err)
	}

	failf := func(format string, args ...interface{}) error {
		return fail(fmt.Errorf(format, args...))
	}

	section := TestSection

	step = fmt.Sprintf("initializing the profile by cleaning up the %q section", section)

	if err := p.RemoveSection(section); err != nil {
		return fail(err)
	}

	step = "getting the sections and their count"

	sections, _, err := p.GetSectionNames()

	if err != nil {
		return fail(err)
	}

	sectionCount := len(sections)
	flag := sectionCount > 1
	today := time.Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	step = fmt.Sprintf("adding some valid entries to the %q section", section)

	writes := []struct {
		entry string
		value interface{}
	}{
		{"Text entry", "123 abc"},
		{"Blank entry", ""},
		{"Null entry", nil},
		{"  Entry with leading and trailing spaces  ", "The spaces should be trimmed from the entry"},
		{"Integer entry", 17},
		{"Long entry", int64(1234567890123456789)},
		{"Double entry", 17.95},
		{"DateTime entry", today},
		{"Boolean entry", flag},
	}

	for _, write := range writes {
		if err := p.SetValue(section, write.entry, write.value); err != nil {
			return fail(err)
		}
	}

	step = fmt.Sprintf("adding an invalid entry to the %q section", section)

	if err := p.SetValue(section, "\x00", "123 abc"); !errors.Is(err, ErrInvalidArgument) {
		return failf("passing an invalid entry to SetValue returned %v", err)
	}

	step = "retrieving an invalid section"

	if _, _, err := p.GetValue("\x00", "Test"); !errors.Is(err, ErrInvalidArgument) {
		return failf("passing an invalid section to GetValue returned %v", err)
	}

	step = "getting the number of entries"

	entries, ok, err := p.GetEntryNames(section)

	if err != nil {
		return fail(err)
	}

	step = "verifying the number of entries is 8"

	if !ok || len(entries) != 8 {
		return failf("incorrect number of entries found: %d", len(entries))
	}

	step = "checking the values for the entries added"

	if err := checkValues(p, section, today, flag); err != nil {
		return fail(err)
	}

	step = "creating a read-only clone of the profile"

	readOnly := p.CloneReadOnly()

	if ok, err := readOnly.HasSection(section); err != nil {
		return fail(err)
	} else if !ok {
		return failf("the section is missing from the read-only clone")
	}

	if value, err := GetFloat(readOnly, section, "Double entry", 0); err != nil {
		return fail(err)
	} else if value != 17.95 {
		return failf("incorrect float value in the read-only clone: %v", value)
	}

	step = "checking if the read-only clone can be hacked to allow writing"

	writable, ok := readOnly.(Profile)

	if !ok {
		return failf("the read-only clone does not implement Profile")
	}

	if err := writable.SetReadOnly(false); !errors.Is(err, ErrIllegalState) {
		return failf("clearing the read-only flag of the clone returned %v", err)
	}

	if err := writable.SetValue(section, "Entry which should not be written", "This should not happen"); !errors.Is(err, ErrIllegalState) {
		return failf("writing to the read-only clone returned %v", err)
	}

	if !cleanup {
		return nil
	}

	step = "deleting the entries just added"

	for _, write := range writes {
		if write.value == nil {
			continue
		}

		if err := p.RemoveEntry(section, write.entry); err != nil {
			return fail(err)
		}
	}

	step = "deleting a nonexistent entry"

	if err := p.RemoveEntry(section, "Null entry"); err != nil {
		return fail(err)
	}

	step = "verifying all entries were deleted"

	if entries, _, err := p.GetEntryNames(section); err != nil {
		return fail(err)
	} else if len(entries) != 0 {
		return failf("incorrect number of entries still found: %d", len(entries))
	}

	step = "deleting the section"

	if err := p.RemoveSection(section); err != nil {
		return fail(err)
	}

	step = "verifying the section was deleted"

	if sections, _, err := p.GetSectionNames(); err != nil {
		return fail(err)
	} else if len(sections) != sectionCount {
		return failf("incorrect number of sections found after deleting: %d", len(sections))
	}

	if _, ok, err := p.GetEntryNames(section); err != nil {
		return fail(err)
	} else if ok {
		return failf("the section was not deleted since GetEntryNames did not report it absent")
	}

	return nil
}

func checkValues(p ReadOnlyProfile, section string, today time.Time, flag bool) error {
	if value, err := GetString(p, section, "Text entry", ""); err != nil {
		return err
	} else if value != "123 abc" {
		return fmt.Errorf("incorrect string value found for the Text entry: %q", value)
	}

	if value, err := GetInt(p, section, "Text entry", 321); err != nil {
		return err
	} else if value != 0 {
		return fmt.Errorf("incorrect integer value found for the Text entry: %d", value)
	}

	if value, err := GetString(p, section, "Blank entry", "invalid"); err != nil {
		return err
	} else if value != "" {
		return fmt.Errorf("incorrect string value found for the Blank entry: %q", value)
	}

	if _, ok, err := p.GetValue(section, "Blank entry"); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("the Blank entry is absent")
	}

	if value, err := GetInt(p, section, "Blank entry", 321); err != nil {
		return err
	} else if value != 0 {
		return fmt.Errorf("incorrect integer value found for the Blank entry: %d", value)
	}

	if value, err := GetBool(p, section, "Blank entry", true); err != nil {
		return err
	} else if value {
		return fmt.Errorf("incorrect bool value found for the Blank entry: %t", value)
	}

	if value, err := GetString(p, section, "Null entry", ""); err != nil {
		return err
	} else if value != "" {
		return fmt.Errorf("incorrect string value found for the Null entry: %q", value)
	}

	if value, ok, err := p.GetValue(section, "Null entry"); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("incorrect value found for the Null entry: %q", value)
	}

	if value, err := GetString(p, section, "  Entry with leading and trailing spaces  ", ""); err != nil {
		return err
	} else if value != "The spaces should be trimmed from the entry" {
		return fmt.Errorf("incorrect string value found for the Entry with leading and trailing spaces: %q", value)
	}

	if ok, err := p.HasEntry(section, "Entry with leading and trailing spaces"); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("the Entry with leading and trailing spaces (trimmed) was not found")
	}

	if value, err := GetInt(p, section, "Integer entry", 0); err != nil {
		return err
	} else if value != 17 {
		return fmt.Errorf("incorrect integer value found for the Integer entry: %d", value)
	}

	if value, err := GetFloat(p, section, "Integer entry", 0); err != nil {
		return err
	} else if value != 17 {
		return fmt.Errorf("incorrect float value found for the Integer entry: %v", value)
	}

	if value, err := GetInt64(p, section, "Long entry", 0); err != nil {
		return err
	} else if value != 1234567890123456789 {
		return fmt.Errorf("incorrect long value found for the Long entry: %d", value)
	}

	if value, err := GetString(p, section, "Long entry", ""); err != nil {
		return err
	} else if value != "1234567890123456789" {
		return fmt.Errorf("incorrect string value found for the Long entry: %q", value)
	}

	if value, err := GetFloat(p, section, "Double entry", 0); err != nil {
		return err
	} else if value != 17.95 {
		return fmt.Errorf("incorrect float value found for the Double entry: %v", value)
	}

	if value, err := GetInt(p, section, "Double entry", 321); err != nil {
		return err
	} else if value != 0 {
		return fmt.Errorf("incorrect integer value found for the Double entry: %d", value)
	}

	if value, err := GetString(p, section, "DateTime entry", ""); err != nil {
		return err
	} else if value != FormatValue(today) {
		return fmt.Errorf("incorrect string value found for the DateTime entry: %q", value)
	}

	if value, err := GetTime(p, section, "DateTime entry", time.Time{}); err != nil {
		return err
	} else if !value.Equal(today) {
		return fmt.Errorf("the DateTime value is not today's date: %v", value)
	}

	if value, err := GetBool(p, section, "Boolean entry", !flag); err != nil {
		return err
	} else if value != flag {
		return fmt.Errorf("incorrect bool value found for the Boolean entry: %t", value)
	}

	if value, err := GetString(p, section, "Boolean entry", ""); err != nil {
		return err
	} else if value != FormatValue(flag) {
		return fmt.Errorf("incorrect string value found for the Boolean entry: %q", value)
	}

	if value, ok, err := p.GetValue(section, "Nonexistent entry"); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("incorrect value found for the Nonexistent entry: %q", value)
	}

	if value, err := GetString(p, section, "Nonexistent entry", "Some Default"); err != nil {
		return err
	} else if value != "Some Default" {
		return fmt.Errorf("incorrect default value found for the Nonexistent entry: %q", value)
	}

	return nil
}
