package files

import (
	"context"
	"net/url"
	"os"
)

//go:generate mockgen -source=store.go -destination=filesmock/store_mock.go -package=filesmock

// Store is the file system a Service operates on.
// Implementations return raw OS-style errors; callers classify them with Wrap.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	// Rename fails with fs.ErrExist when newPath is already taken.
	Rename(ctx context.Context, oldPath, newPath string) error
	// CreateFile creates an empty file and fails with fs.ErrExist if one is there already.
	CreateFile(ctx context.Context, path string) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces the file contents so readers never observe a partial write.
	WriteFile(ctx context.Context, path string, data []byte) error
}
