package osfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var osCreateTemp = os.CreateTemp
var osRename = os.Rename
var osRemove = os.Remove
var osChmod = os.Chmod
var osReadlink = os.Readlink

const newFilePerm os.FileMode = 0o644

const maxSymlinkHops = 40

var errSymlinkLoop = errors.New("too many levels of symbolic links")

// resolveSymlinks follows symlinks in the last element of path so a write replaces
// the file a link points to, not the link. A missing target resolves to itself.
func resolveSymlinks(path string) (string, error) {
	for range maxSymlinkHops {
		info, err := osLstat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return path, nil
			}
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}
		target, err := osReadlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return "", &fs.PathError{Op: "write", Path: path, Err: errSymlinkLoop}
}

// writeFileAtomic writes data to a temporary file next to path and renames it over path.
// The target keeps its permission bits and must itself be writable;
// on any failure the target is left as it was. path must already be resolved.
func writeFileAtomic(path string, data []byte) (err error) {
	perm := newFilePerm
	if info, statErr := osStat(path); statErr == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: path, Err: errors.New("is a directory")}
		}
		perm = info.Mode().Perm()
		if err = checkWritable(path); err != nil {
			return err
		}
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := osCreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = osRemove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = osChmod(tmpName, perm); err != nil {
		return err
	}
	return osRename(tmpName, path)
}

// checkWritable opens path for writing without truncating it.
func checkWritable(path string) error {
	f, err := osOpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}
