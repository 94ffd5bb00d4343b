package xmlbased

import (
	"errors"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/jrife/profile"
	"go.uber.org/zap"
)

// Buffer holds the parsed document of a profile between calls.
// The document is loaded on first access and written back by
// Flush or Close. A buffer that was created with a lock keeps the
// file open and does all of its reads and writes through that
// handle.
type Buffer struct {
	profile *Profile
	doc     *etree.Document
	file    *os.File
	dirty   bool
	writes  int
}

// NeedsFlushing returns true if the document
// was changed since it was last flushed
func (buffer *Buffer) NeedsFlushing() bool {
	return buffer.dirty
}

// Locked returns true if the buffer holds a lock on the file
func (buffer *Buffer) Locked() bool {
	return buffer.file != nil
}

// Closed returns true once the buffer has been closed
func (buffer *Buffer) Closed() bool {
	return buffer.profile == nil
}

// Writes returns the number of times the document was written
func (buffer *Buffer) Writes() int {
	return buffer.writes
}

// Flush writes the document if it changed. If the write fails the
// buffer keeps its changes so Flush can be retried.
func (buffer *Buffer) Flush() error {
	if buffer.Closed() {
		return ErrBufferClosed
	}

	if buffer.doc == nil || !buffer.dirty {
		return nil
	}

	data, err := encode(buffer.doc, buffer.profile.Encoding())

	if err != nil {
		return err
	}

	buffer.profile.Logger().Debug("flush document", zap.String("operation", "Flush"), zap.String("path", buffer.profile.Name()), zap.Int("size", len(data)), zap.Bool("locked", buffer.Locked()))

	if buffer.file != nil {
		err = profile.StorageError("could not flush document", rewrite(buffer.file, data))
	} else {
		err = writeFile(buffer.profile.Name(), data)
	}

	if err != nil {
		return err
	}

	buffer.writes++
	buffer.dirty = false

	return nil
}

// Reset discards the document without writing it.
// The next access reads it again. The lock is kept.
func (buffer *Buffer) Reset() error {
	if buffer.Closed() {
		return ErrBufferClosed
	}

	buffer.doc = nil
	buffer.dirty = false

	return nil
}

// Close flushes the document if it changed, releases the lock and
// detaches the buffer from its profile. If the flush fails the buffer
// stays open. Closing a closed buffer does nothing.
func (buffer *Buffer) Close() error {
	if buffer.Closed() {
		return nil
	}

	if buffer.dirty {
		if err := buffer.Flush(); err != nil {
			return err
		}
	}

	return buffer.release()
}

func (buffer *Buffer) discard() {
	logger := buffer.profile.Logger()
	buffer.doc = nil
	buffer.dirty = false

	if err := buffer.release(); err != nil {
		logger.Warn("could not release buffer", zap.Error(err))
	}
}

func (buffer *Buffer) release() error {
	var err error

	if buffer.file != nil {
		err = closeLocked(buffer.file)
		buffer.file = nil
	}

	buffer.profile.Logger().Debug("buffer closed", zap.String("operation", "Close"), zap.String("path", buffer.profile.Name()))
	buffer.doc = nil
	buffer.profile.buffer = nil
	buffer.profile = nil

	if err != nil {
		return profile.StorageError("could not release lock", err)
	}

	return nil
}

// document returns the buffered document, loading it through the
// locked file or from the path. If neither exists the document is
// empty. A document that fails to load is not kept.
func (buffer *Buffer) document() (*etree.Document, error) {
	if buffer.Closed() {
		return nil, ErrBufferClosed
	}

	if buffer.doc != nil {
		return buffer.doc, nil
	}

	var data []byte
	var err error

	if buffer.file != nil {
		if _, err = buffer.file.Seek(0, io.SeekStart); err == nil {
			data, err = io.ReadAll(buffer.file)
		}
	} else {
		if err := buffer.profile.VerifyName(); err != nil {
			return nil, err
		}

		data, err = os.ReadFile(buffer.profile.Name())

		if errors.Is(err, os.ErrNotExist) {
			data, err = nil, nil
		}
	}

	if err != nil {
		return nil, profile.StorageError("could not read document", err)
	}

	doc, err := decode(data)

	if err != nil {
		return nil, err
	}

	buffer.profile.Logger().Debug("load document", zap.String("operation", "Load"), zap.String("path", buffer.profile.Name()), zap.Int("size", len(data)))
	buffer.doc = doc

	return doc, nil
}

// empty returns true if the buffered document has no content
func (buffer *Buffer) empty() (bool, error) {
	doc, err := buffer.document()

	if err != nil {
		return false, err
	}

	return len(doc.Child) == 0, nil
}
