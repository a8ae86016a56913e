package filepane

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/datatug/filepane/pkg/files"
	"github.com/datatug/filepane/pkg/fsutils"
)

const editableMark = " ✎"

// sortEntries puts directories first, then orders by name.
func sortEntries(entries []files.DirEntry) {
	slices.SortFunc(entries, func(a, b files.DirEntry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name(), b.Name())
	})
}

// formatModTime shows the time of day for entries changed today and the date otherwise.
func formatModTime(modTime, now time.Time) string {
	y1, m1, d1 := modTime.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return modTime.Format("15:04:05")
	}
	return modTime.Format("2006-01-02")
}

func writeEntries(w io.Writer, entries []files.DirEntry, isEditable func(path string) bool, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries")
		return err
	}
	for _, entry := range entries {
		var sizeText, modText string
		if size, ok := entry.Size(); ok {
			sizeText = fsutils.GetSizeShortText(size)
		}
		if modTime, ok := entry.ModTime(); ok {
			modText = formatModTime(modTime.Local(), now)
		}
		mark := ""
		if !entry.IsDir() && isEditable(entry.Path()) {
			mark = editableMark
		}
		name := colorizeName(entry.Name(), entry.IsDir())
		if _, err := fmt.Fprintf(w, "%7s  %-10s  %s%s\n", sizeText, modText, name, mark); err != nil {
			return err
		}
	}
	return nil
}
