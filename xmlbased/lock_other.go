//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package xmlbased

import (
	"os"
)

// Platforms without flock or LockFileEx get no advisory locking.
// Buffers still keep the file open.
func lockFile(file *os.File, exclusive bool) error {
	return nil
}

func unlockFile(file *os.File) error {
	return nil
}
