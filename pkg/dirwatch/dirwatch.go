// Package dirwatch tells a shell when the directory it shows has changed, so it can list it again.
package dirwatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/datatug/filepane/pkg/files"
	"github.com/datatug/filepane/pkg/fsutils"
	"github.com/fsnotify/fsnotify"
)

type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
	OpChmod  Op = "chmod"
)

// Event reports a change to one immediate child of the watched directory.
// Err is set instead when the watcher itself failed.
type Event struct {
	Name string
	Path string
	Op   Op
	Err  error
}

var newWatcher = fsnotify.NewWatcher
var dirExists = fsutils.DirExists

// Watch emits events for dir until ctx is done, then closes the channel.
func Watch(ctx context.Context, dir string) (<-chan Event, error) {
	const op = "watch"
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, files.Wrap(op, dir, err)
	}
	exists, err := dirExists(dir)
	if err != nil {
		return nil, files.Wrap(op, dir, err)
	}
	if !exists {
		return nil, files.NewError(files.KindNotFound, op, dir, nil)
	}
	watcher, err := newWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err = watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, files.Wrap(op, dir, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer func() {
			_ = watcher.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				for _, event := range translate(e) {
					select {
					case events <- event:
					case <-ctx.Done():
						return
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case events <- Event{Path: dir, Err: files.Wrap(op, dir, err)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

func translate(e fsnotify.Event) []Event {
	ops := []struct {
		fs fsnotify.Op
		op Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Chmod, OpChmod},
	}
	var events []Event
	for _, o := range ops {
		if e.Has(o.fs) {
			events = append(events, Event{Name: filepath.Base(e.Name), Path: e.Name, Op: o.op})
		}
	}
	return events
}
