package osfile

import (
	"errors"
	"io/fs"
	"os"
)

// renameIfAbsent refuses to replace an existing newPath. A target that is the same file
// as oldPath is allowed so a case-only rename works on case-insensitive file systems.
func renameIfAbsent(oldPath, newPath string) error {
	target, err := osLstat(newPath)
	if err == nil {
		source, srcErr := osLstat(oldPath)
		if srcErr != nil {
			return srcErr
		}
		if !os.SameFile(source, target) {
			return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return osRename(oldPath, newPath)
}
