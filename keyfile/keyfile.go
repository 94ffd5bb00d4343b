// Package keyfile reads and writes key files made of [section]
// headers and key=value lines. Its API mirrors the buffer based
// private profile calls of the Windows API: strings and lists are
// copied into caller supplied buffers, lists are NUL separated and
// terminated by an extra NUL, and a result that does not fit is
// truncated. Every call reads the file again and every write saves
// it immediately.
package keyfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

var (
	// ErrRead indicates that the file could not be read or parsed
	ErrRead = errors.New("could not read key file")
	// ErrWrite indicates that the file could not be saved
	ErrWrite = errors.New("could not write key file")
)

// Section names are never nested, so the child section
// delimiter is a byte no name may contain.
var loadOptions = ini.LoadOptions{
	Loose:                 true,
	IgnoreInlineComment:   true,
	KeyValueDelimiters:    "=",
	ChildSectionDelimiter: "\x00",
}

// File is a key file at a path
type File struct {
	path string
}

// New returns the key file at path. The file
// does not need to exist.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the path of the file
func (file *File) Path() string {
	return file.path
}

// Exists returns true if the file exists
func (file *File) Exists() bool {
	_, err := os.Stat(file.path)

	return err == nil
}

// GetString copies the value of key into buf and returns the number
// of bytes copied, not counting the terminating NUL. If the key does
// not exist def is copied instead. If the value does not fit it is
// truncated and the returned length is len(buf)-1.
func (file *File) GetString(section, key, def string, buf []byte) (int, error) {
	f, err := file.load()

	if err != nil {
		return 0, err
	}

	value := def

	if s, err := f.GetSection(sectionName(section)); err == nil && s.HasKey(key) {
		value = s.Key(key).String()
	}

	return copyString(buf, value), nil
}

// GetKeys copies the names of the keys in section into buf
// as a list. It returns the length of the list not counting
// the final NUL, or len(buf)-2 if the list was truncated.
func (file *File) GetKeys(section string, buf []byte) (int, error) {
	f, err := file.load()

	if err != nil {
		return 0, err
	}

	s, err := f.GetSection(sectionName(section))

	if err != nil {
		return copyList(buf, nil), nil
	}

	return copyList(buf, s.KeyStrings()), nil
}

// GetSections copies the names of the sections into buf
// as a list. It returns the length of the list not counting
// the final NUL, or len(buf)-2 if the list was truncated.
// The unnamed section is listed as an empty name when it
// holds keys.
func (file *File) GetSections(buf []byte) (int, error) {
	f, err := file.load()

	if err != nil {
		return 0, err
	}

	var names []string

	for _, s := range f.Sections() {
		if s.Name() == ini.DefaultSection {
			if len(s.Keys()) > 0 {
				names = append(names, "")
			}

			continue
		}

		names = append(names, s.Name())
	}

	return copyList(buf, names), nil
}

// WriteString sets key in section to value, creating
// the section and the file if needed
func (file *File) WriteString(section, key, value string) error {
	f, err := file.load()

	if err != nil {
		return err
	}

	s, err := f.NewSection(sectionName(section))

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, file.path, err)
	}

	if s.HasKey(key) {
		s.Key(key).SetValue(value)
	} else if _, err := s.NewKey(key, value); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, file.path, err)
	}

	return file.save(f)
}

// DeleteKey removes key from section
func (file *File) DeleteKey(section, key string) error {
	f, err := file.load()

	if err != nil {
		return err
	}

	s, err := f.GetSection(sectionName(section))

	if err != nil || !s.HasKey(key) {
		return nil
	}

	s.DeleteKey(key)

	return file.save(f)
}

// DeleteSection removes section and all of its keys
func (file *File) DeleteSection(section string) error {
	f, err := file.load()

	if err != nil {
		return err
	}

	if _, err := f.GetSection(sectionName(section)); err != nil {
		return nil
	}

	f.DeleteSection(sectionName(section))

	return file.save(f)
}

// RenameSection moves every key of section old into section
// new and removes old. Keys already present in new are
// overwritten.
func (file *File) RenameSection(old, new string) error {
	f, err := file.load()

	if err != nil {
		return err
	}

	from, err := f.GetSection(sectionName(old))

	if err != nil {
		return nil
	}

	to, err := f.NewSection(sectionName(new))

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, file.path, err)
	}

	for _, key := range from.Keys() {
		if to.HasKey(key.Name()) {
			to.Key(key.Name()).SetValue(key.Value())
		} else if _, err := to.NewKey(key.Name(), key.Value()); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, file.path, err)
		}
	}

	f.DeleteSection(sectionName(old))

	return file.save(f)
}

func (file *File) load() (*ini.File, error) {
	f, err := ini.LoadSources(loadOptions, file.path)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, file.path, err)
	}

	return f, nil
}

func (file *File) save(f *ini.File) error {
	if err := f.SaveTo(file.path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, file.path, err)
	}

	return nil
}

func sectionName(section string) string {
	if section == "" {
		return ini.DefaultSection
	}

	return section
}

func copyString(buf []byte, value string) int {
	if len(buf) == 0 {
		return 0
	}

	n := copy(buf[:len(buf)-1], value)
	buf[n] = 0

	return n
}

func copyList(buf []byte, names []string) int {
	if len(buf) < 2 {
		for i := range buf {
			buf[i] = 0
		}

		return 0
	}

	n := 0

	for _, name := range names {
		if n+len(name)+1 > len(buf)-1 {
			copy(buf[n:len(buf)-2], name)
			buf[len(buf)-2] = 0
			buf[len(buf)-1] = 0

			return len(buf) - 2
		}

		n += copy(buf[n:], name)
		buf[n] = 0
		n++
	}

	buf[n] = 0

	if n == 0 {
		buf[1] = 0
	}

	return n
}
