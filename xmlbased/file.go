package xmlbased

import (
	"io"
	"os"

	"github.com/jrife/profile"
)

// openLocked opens and locks an existing file. It returns nil
// if the file does not exist.
func openLocked(path string, readOnly bool) (*os.File, error) {
	if !exists(path) {
		return nil, nil
	}

	flag := os.O_RDWR

	if readOnly {
		flag = os.O_RDONLY
	}

	file, err := os.OpenFile(path, flag, 0)

	if err != nil {
		return nil, profile.StorageError("could not open document", err)
	}

	if err := lockFile(file, !readOnly); err != nil {
		file.Close()

		return nil, err
	}

	return file, nil
}

func closeLocked(file *os.File) error {
	unlockErr := unlockFile(file)

	if err := file.Close(); err != nil {
		return err
	}

	return unlockErr
}

// writeFile replaces the contents of the file at path, holding
// an exclusive lock while writing. It fails with ErrLocked if a
// buffer holds a lock on the file.
func writeFile(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0666)

	if err != nil {
		return profile.StorageError("could not open document", err)
	}

	defer file.Close()

	if err := lockFile(file, true); err != nil {
		return err
	}

	defer unlockFile(file)

	if err := rewrite(file, data); err != nil {
		return profile.StorageError("could not write document", err)
	}

	return nil
}

func rewrite(file *os.File, data []byte) error {
	if err := file.Truncate(0); err != nil {
		return err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		return err
	}

	return file.Sync()
}
