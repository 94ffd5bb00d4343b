//go:build windows

package xmlbased

import (
	"errors"
	"fmt"
	"os"

	"github.com/jrife/profile"
	"golang.org/x/sys/windows"
)

const lockRange = ^uint32(0)

func lockFile(file *os.File, exclusive bool) error {
	var flags uint32 = windows.LOCKFILE_FAIL_IMMEDIATELY

	if exclusive {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}

	overlapped := new(windows.Overlapped)

	if err := windows.LockFileEx(windows.Handle(file.Fd()), flags, 0, lockRange, lockRange, overlapped); err != nil {
		if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return fmt.Errorf("%w: %s", ErrLocked, file.Name())
		}

		return profile.StorageError("could not lock document", err)
	}

	return nil
}

func unlockFile(file *os.File) error {
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, lockRange, lockRange, new(windows.Overlapped))
}
