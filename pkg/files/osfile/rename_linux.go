//go:build linux

package osfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var unixRenameat2 = unix.Renameat2

// renameNoReplace lets the kernel refuse an existing target so the check and the rename
// cannot race. File systems without RENAME_NOREPLACE fall back to check-then-rename.
func renameNoReplace(oldPath, newPath string) error {
	err := unixRenameat2(unix.AT_FDCWD, oldPath, unix.AT_FDCWD, newPath, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EINVAL) {
		return renameIfAbsent(oldPath, newPath)
	}
	return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
}
