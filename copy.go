package profile

import (
	"fmt"
)

// Copy writes every entry of src into dst. Sections of src
// with no entries are skipped since not every driver can
// represent an empty section.
func Copy(dst Profile, src ReadOnlyProfile) error {
	if src == nil {
		return InvalidArgument("source profile is nil")
	}

	sections, ok, err := src.GetSectionNames()

	if err != nil {
		return fmt.Errorf("could not list sections of %s: %w", src.Name(), err)
	} else if !ok {
		return nil
	}

	for _, section := range sections {
		entries, _, err := src.GetEntryNames(section)

		if err != nil {
			return fmt.Errorf("could not list entries of section %q: %w", section, err)
		}

		for _, entry := range entries {
			value, ok, err := src.GetValue(section, entry)

			if err != nil {
				return fmt.Errorf("could not read %q/%q: %w", section, entry, err)
			} else if !ok {
				continue
			}

			if err := dst.SetValue(section, entry, value); err != nil {
				return fmt.Errorf("could not write %q/%q: %w", section, entry, err)
			}
		}
	}

	return nil
}
