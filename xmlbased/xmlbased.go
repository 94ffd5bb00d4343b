// Package xmlbased holds what the markup profiles share: loading
// and saving their document, text encodings and the Buffer that
// batches mutations into one physical write.
package xmlbased

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/jrife/profile"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding of new profiles
const DefaultEncoding = "utf-8"

var (
	// ErrBufferClosed is returned by Flush and Reset
	// once a buffer has been closed
	ErrBufferClosed = fmt.Errorf("%w: buffer is closed", profile.ErrIllegalState)
	// ErrLocked indicates that another buffer holds
	// the lock on the file
	ErrLocked = fmt.Errorf("%w: file is locked", profile.ErrStorage)
)

// Profile is embedded by the markup profiles. When no buffer is
// active every read parses the file and every mutation writes it.
type Profile struct {
	profile.Base
	encoding string
	buffer   *Buffer
}

// New returns a Profile for the file at name that writes
// its document in encoding. An empty encoding means UTF-8.
func New(name string, logger *zap.Logger, encoding string) (Profile, error) {
	encoding = strings.TrimSpace(encoding)

	if encoding == "" {
		encoding = DefaultEncoding
	} else if _, err := htmlindex.Get(encoding); err != nil {
		return Profile{}, profile.InvalidArgument("unknown encoding %q", encoding)
	}

	return Profile{Base: profile.NewBase(name, logger), encoding: encoding}, nil
}

// CloneProfile copies this profile. The copy is not buffered.
func (p *Profile) CloneProfile() Profile {
	return Profile{Base: p.CloneBase(), encoding: p.encoding}
}

// Encoding returns the name of the encoding
// used to write the document
func (p *Profile) Encoding() string {
	return p.encoding
}

// SetEncoding changes the encoding used to write the document.
// Names are resolved as in the WHATWG encoding standard, so both
// "ISO-8859-1" and "latin1" are accepted.
func (p *Profile) SetEncoding(name string) error {
	if err := p.VerifyNotReadOnly(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)

	if _, err := htmlindex.Get(name); err != nil {
		return profile.InvalidArgument("unknown encoding %q", name)
	}

	if strings.EqualFold(p.encoding, name) || !p.RaiseChanging(profile.ChangeOther, "", "Encoding", name) {
		return nil
	}

	p.encoding = name
	p.RaiseChanged(profile.ChangeOther, "", "Encoding", name)

	return nil
}

// Buffer returns the buffer of this profile, creating it if
// needed. If lock is true and the file exists, the file is opened
// and locked until the buffer is closed. A read-only profile opens
// the file for reading and takes a shared lock. ErrLocked is returned
// if another buffer holds a conflicting lock.
func (p *Profile) Buffer(lock bool) (*Buffer, error) {
	if p.buffer != nil {
		return p.buffer, nil
	}

	buffer := &Buffer{profile: p}

	if lock {
		if err := p.VerifyName(); err != nil {
			return nil, err
		}

		file, err := openLocked(p.Name(), p.ReadOnly())

		if err != nil {
			return nil, err
		}

		buffer.file = file
	}

	p.Logger().Debug("buffer opened", zap.String("operation", "Buffer"), zap.String("path", p.Name()), zap.Bool("locked", buffer.file != nil))
	p.buffer = buffer

	return buffer, nil
}

// Buffering returns true if this profile has an active buffer
func (p *Profile) Buffering() bool {
	return p.buffer != nil
}

// Buffered runs fn with the mutations of this profile buffered,
// then closes the buffer, flushing it if needed. If fn fails or
// the buffer cannot be flushed its changes are discarded and the
// lock is released. If the profile already has a buffer fn runs
// with that buffer, which is left open.
func (p *Profile) Buffered(lock bool, fn func(buffer *Buffer) error) error {
	if p.buffer != nil {
		return fn(p.buffer)
	}

	buffer, err := p.Buffer(lock)

	if err != nil {
		return err
	}

	defer func() {
		if p.buffer == buffer {
			buffer.discard()
		}
	}()

	if err := fn(buffer); err != nil {
		return err
	}

	return buffer.Close()
}

// Document returns the document of this profile. It returns
// nil if the profile is not buffered and the file does not exist.
func (p *Profile) Document() (*etree.Document, error) {
	if p.buffer != nil {
		return p.buffer.document()
	}

	if err := p.VerifyName(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Name())

	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, profile.StorageError("could not read document", err)
	}

	return decode(data)
}

// Fresh returns true if a mutation has to create the document
// from scratch: there is neither a buffered document nor a file.
func (p *Profile) Fresh() (bool, error) {
	if p.buffer != nil {
		empty, err := p.buffer.empty()

		if err != nil || !empty {
			return false, err
		}
	}

	return !exists(p.Name()), nil
}

// Save stores doc. A buffered profile keeps doc as its document and
// marks it dirty, otherwise the file is written.
func (p *Profile) Save(doc *etree.Document) error {
	if p.buffer != nil {
		p.buffer.doc = doc
		p.buffer.dirty = true

		return nil
	}

	data, err := encode(doc, p.encoding)

	if err != nil {
		return err
	}

	p.Logger().Debug("write document", zap.String("operation", "Save"), zap.String("path", p.Name()), zap.Int("size", len(data)))

	return writeFile(p.Name(), data)
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
