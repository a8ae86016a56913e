package osfile

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/datatug/filepane/pkg/files"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname
var osStat = os.Stat
var osLstat = os.Lstat
var osOpenFile = os.OpenFile
var osReadFile = os.ReadFile
var osUserCacheDir = os.UserCacheDir
var osGetuid = os.Getuid

const defaultLockTimeout = 5 * time.Second

var _ files.Store = (*Store)(nil)

type StoreOption func(*Store)

// WithLockDir sets where per-file write locks are kept.
func WithLockDir(dir string) StoreOption {
	return func(s *Store) {
		s.lockDir = dir
	}
}

func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

// Store reads and writes the local file system.
type Store struct {
	title       string
	root        string
	lockDir     string
	lockTimeout time.Duration
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   s.root,
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".local")
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s Store) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osStat(path)
}

func (s Store) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := osLstat(oldPath); err != nil {
		return err
	}
	return renameNoReplace(oldPath, newPath)
}

func (s Store) CreateFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := osOpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadFile(path)
}

func (s Store) WriteFile(ctx context.Context, path string, data []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	if path, err = resolveSymlinks(path); err != nil {
		return err
	}
	lock, err := s.lockFile(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("failed to release write lock: %w", unlockErr)
		}
	}()
	return writeFileAtomic(path, data)
}

func NewStore(root string, o ...StoreOption) *Store {
	if root == "" {
		_, _ = fmt.Fprintf(os.Stderr, "osfile store root is empty, defaulting to /\n")
		root = "/"
	}
	store := Store{
		root:        root,
		lockDir:     defaultLockDir(),
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range o {
		opt(&store)
	}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	return &store
}

// defaultLockDir is inside the current user's cache dir, or a per-uid dir under the temp dir.
func defaultLockDir() string {
	if cacheDir, err := osUserCacheDir(); err == nil && cacheDir != "" {
		return filepath.Join(cacheDir, "filepane", "locks")
	}
	return filepath.Join(os.TempDir(), "filepane-locks-"+strconv.Itoa(osGetuid()))
}
