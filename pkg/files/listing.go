package files

import (
	"iter"
	"os"
	"path/filepath"
)

// Listing is the snapshot of a directory's immediate children taken at ReadDir time.
// Entries are materialised lazily while iterating and may be iterated any number of times.
type Listing struct {
	path     string
	children []os.DirEntry
}

func NewListing(path string, children []os.DirEntry) Listing {
	return Listing{
		path:     path,
		children: children,
	}
}

// Path is the listed directory.
func (l Listing) Path() string {
	return l.path
}

func (l Listing) Name() string {
	if l.path == "" {
		return ""
	}
	return filepath.Base(l.path)
}

func (l Listing) Len() int {
	return len(l.children)
}

// All yields one DirEntry per child. Each call starts again from the first child.
func (l Listing) All() iter.Seq[DirEntry] {
	return func(yield func(DirEntry) bool) {
		for _, child := range l.children {
			if !yield(NewDirEntryFromOS(l.path, child)) {
				return
			}
		}
	}
}

func (l Listing) Entries() []DirEntry {
	entries := make([]DirEntry, 0, len(l.children))
	for entry := range l.All() {
		entries = append(entries, entry)
	}
	return entries
}
