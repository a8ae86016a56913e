package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// NewDirEntry creates an entry that has no parent directory yet, see InDir.
// Metadata is attached only when options are given.
func NewDirEntry(name string, isDir bool, o ...FileInfoOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	dirEntry := DirEntry{
		name:  name,
		isDir: isDir,
	}
	if len(o) > 0 {
		dirEntry.info = NewFileInfo(name, isDir, o...)
	}
	return dirEntry
}

// NewDirEntryFromOS snapshots an os.DirEntry read from dir.
// A failing Info() leaves the entry without size and modification time; its Info returns that error.
func NewDirEntryFromOS(dir string, entry os.DirEntry) DirEntry {
	isDir := entry.IsDir()
	d := DirEntry{
		name:  entry.Name(),
		dir:   dir,
		isDir: isDir,
	}
	info, err := entry.Info()
	switch {
	case err != nil:
		d.infoErr = err
	case info == nil:
		d.infoErr = &fs.PathError{Op: "lstat", Path: d.Path(), Err: fs.ErrNotExist}
	default:
		d.info = NewFileInfo(d.name, isDir, Size(info.Size()), ModTime(info.ModTime()), Mode(info.Mode()))
	}
	return d
}

var _ os.DirEntry = (*DirEntry)(nil)

// DirEntry is an immutable snapshot of one child of a listed directory.
type DirEntry struct {
	name  string
	dir   string
	isDir   bool
	info    *FileInfo
	infoErr error
}

// InDir returns a copy of the entry located in dir.
func (d DirEntry) InDir(dir string) DirEntry {
	d.dir = dir
	return d
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) Dir() string  { return d.dir }
func (d DirEntry) IsDir() bool  { return d.isDir }

// Path is the parent directory joined with the entry name.
func (d DirEntry) Path() string {
	return filepath.Join(d.dir, d.name)
}

func (d DirEntry) Type() os.FileMode {
	if d.isDir {
		return os.ModeDir
	}
	if d.info != nil {
		return d.info.mode.Type()
	}
	return 0
}

// Info returns the metadata captured at listing time. An entry built without options
// reports just its name and kind.
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.infoErr != nil {
		return nil, d.infoErr
	}
	if d.info == nil {
		return NewFileInfo(d.name, d.isDir), nil
	}
	return d.info, nil
}

// Size reports the file size; directories and entries without metadata report false.
func (d DirEntry) Size() (int64, bool) {
	if d.isDir || d.info == nil {
		return 0, false
	}
	return d.info.size, true
}

func (d DirEntry) ModTime() (time.Time, bool) {
	if d.info == nil || d.info.modTime.IsZero() {
		return time.Time{}, false
	}
	return d.info.modTime, true
}

func (d DirEntry) String() string {
	return d.Path()
}
