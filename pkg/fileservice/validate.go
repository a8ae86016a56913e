package fileservice

import (
	"fmt"
	"strings"

	"github.com/datatug/filepane/pkg/files"
)

func invalidArgument(format string, args ...any) *files.Error {
	return files.NewError(files.KindInvalidArgument, "", "", fmt.Errorf(format, args...))
}

// validateName accepts exactly one path segment. Both separators are rejected on every
// OS so a name can never climb out of its parent directory.
func validateName(name string) error {
	switch {
	case name == "":
		return invalidArgument("name is empty")
	case name == "." || name == "..":
		return invalidArgument("name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return invalidArgument("name %q must not contain a path separator", name)
	case strings.ContainsRune(name, 0):
		return invalidArgument("name must not contain a NUL byte")
	}
	return nil
}
