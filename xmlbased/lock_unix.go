//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package xmlbased

import (
	"errors"
	"fmt"
	"os"

	"github.com/jrife/profile"
	"golang.org/x/sys/unix"
)

func lockFile(file *os.File, exclusive bool) error {
	how := unix.LOCK_SH

	if exclusive {
		how = unix.LOCK_EX
	}

	if err := unix.Flock(int(file.Fd()), how|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) {
			return fmt.Errorf("%w: %s", ErrLocked, file.Name())
		}

		return profile.StorageError("could not lock document", err)
	}

	return nil
}

func unlockFile(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}
