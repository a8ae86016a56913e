package osfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datatug/filepane/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore("/", WithLockDir(filepath.Join(t.TempDir(), "locks")), WithLockTimeout(time.Second))
}

func TestNewStore(t *testing.T) {
	origHostname := osHostname
	defer func() { osHostname = origHostname }()

	t.Run("valid_root", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "test-host.local", nil
		}
		s := NewStore("/tmp")
		assert.NotNil(t, s)
		assert.Equal(t, "/tmp", s.root)
		assert.Equal(t, "test-host", s.RootTitle())
		assert.Equal(t, defaultLockTimeout, s.lockTimeout)
		cacheDir, err := os.UserCacheDir()
		if err == nil && cacheDir != "" {
			assert.Equal(t, filepath.Join(cacheDir, "filepane", "locks"), s.lockDir)
		}
	})

	t.Run("hostname_error", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "", errors.New("hostname error")
		}
		s := NewStore("/tmp")
		assert.Equal(t, "hostname error", s.RootTitle())
	})

	t.Run("empty_root_defaults_to_slash", func(t *testing.T) {
		s := NewStore("")
		assert.Equal(t, "/", s.root)
	})

	t.Run("options", func(t *testing.T) {
		s := NewStore("/tmp", WithLockDir("/var/locks"), WithLockTimeout(time.Minute))
		assert.Equal(t, "/var/locks", s.lockDir)
		assert.Equal(t, time.Minute, s.lockTimeout)
	})
}

func TestDefaultLockDir(t *testing.T) {
	origCacheDir := osUserCacheDir
	origGetuid := osGetuid
	defer func() {
		osUserCacheDir = origCacheDir
		osGetuid = origGetuid
	}()
	osGetuid = func() int { return 1234 }

	t.Run("user_cache_dir", func(t *testing.T) {
		osUserCacheDir = func() (string, error) { return "/home/u/.cache", nil }
		assert.Equal(t, filepath.Join("/home/u/.cache", "filepane", "locks"), defaultLockDir())
		assert.Equal(t, filepath.Join("/home/u/.cache", "filepane", "locks"), NewStore("/").lockDir)
	})

	t.Run("no_cache_dir", func(t *testing.T) {
		osUserCacheDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
		assert.Equal(t, filepath.Join(os.TempDir(), "filepane-locks-1234"), defaultLockDir())
	})
}

func TestStore_RootURL(t *testing.T) {
	s := NewStore("/tmp")
	u := s.RootURL()
	assert.Equal(t, "file", u.Scheme)
	assert.Equal(t, "/tmp", u.Path)
}

func TestStore_ReadDir(t *testing.T) {
	origReadDir := osReadDir
	defer func() { osReadDir = origReadDir }()

	s := newTestStore(t)

	t.Run("success", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return []os.DirEntry{}, nil
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.NoError(t, err)
		assert.NotNil(t, entries)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		entries, err := s.ReadDir(ctx, "/tmp")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Nil(t, entries)
	})

	t.Run("read_error", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return nil, errors.New("read error")
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestStore_CreateFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")

	require.NoError(t, s.CreateFile(ctx, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))
	err = s.CreateFile(ctx, path)
	assert.True(t, errors.Is(err, fs.ErrExist))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	err = s.CreateFile(ctx, filepath.Join(dir, "missing", "y.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStore_Rename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "a.txt")
	newPath := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte("a"), 0o644))

	t.Run("success", func(t *testing.T) {
		require.NoError(t, s.Rename(ctx, oldPath, newPath))
		_, err := os.Stat(oldPath)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		data, err := os.ReadFile(newPath)
		require.NoError(t, err)
		assert.Equal(t, "a", string(data))
	})

	t.Run("missing_source", func(t *testing.T) {
		err := s.Rename(ctx, filepath.Join(dir, "none.txt"), filepath.Join(dir, "c.txt"))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("target_exists", func(t *testing.T) {
		other := filepath.Join(dir, "c.txt")
		require.NoError(t, os.WriteFile(other, []byte("c"), 0o644))
		err := s.Rename(ctx, newPath, other)
		assert.True(t, errors.Is(err, fs.ErrExist))
		data, err := os.ReadFile(newPath)
		require.NoError(t, err)
		assert.Equal(t, "a", string(data))
		data, err = os.ReadFile(other)
		require.NoError(t, err)
		assert.Equal(t, "c", string(data))
	})
}

func TestRenameIfAbsent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, nil, 0o644))

	t.Run("absent", func(t *testing.T) {
		require.NoError(t, renameIfAbsent(a, b))
		require.NoError(t, renameIfAbsent(b, a))
	})

	t.Run("exists", func(t *testing.T) {
		require.NoError(t, os.WriteFile(b, nil, 0o644))
		err := renameIfAbsent(a, b)
		assert.True(t, errors.Is(err, fs.ErrExist))
	})

	t.Run("same_file", func(t *testing.T) {
		origRename := osRename
		defer func() { osRename = origRename }()
		called := false
		osRename = func(oldPath, newPath string) error {
			called = true
			return nil
		}
		assert.NoError(t, renameIfAbsent(a, a))
		assert.True(t, called)
	})
}

func TestStore_ReadWriteFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	t.Run("new_file", func(t *testing.T) {
		require.NoError(t, s.WriteFile(ctx, path, []byte("first")))
		data, err := s.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, newFilePerm, info.Mode().Perm())
	})

	t.Run("keeps_permissions", func(t *testing.T) {
		require.NoError(t, os.Chmod(path, 0o600))
		require.NoError(t, s.WriteFile(ctx, path, []byte("second")))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("no_temp_files_left", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes.txt", entries[0].Name())
	})

	t.Run("directory_target", func(t *testing.T) {
		err := s.WriteFile(ctx, dir, []byte("x"))
		assert.Error(t, err)
	})

	t.Run("read_cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.ReadFile(cancelled, path)
		assert.True(t, errors.Is(err, context.Canceled))
		err = s.WriteFile(cancelled, path, []byte("x"))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestWriteFileAtomic_FailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	origRename := osRename
	defer func() { osRename = origRename }()
	osRename = func(oldPath, newPath string) error {
		return errors.New("rename failed")
	}

	err := writeFileAtomic(path, []byte("replacement"))
	assert.EqualError(t, err, "rename failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be removed")
}

func TestStore_WriteFile_ReadOnlyTarget(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "readonly.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o444))

	t.Run("denied_by_os", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can write read-only files")
		}
		err := s.WriteFile(ctx, path, []byte("clobbered"))
		assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)
	})

	t.Run("denied_by_open", func(t *testing.T) {
		origOpenFile := osOpenFile
		defer func() { osOpenFile = origOpenFile }()
		var gotFlag int
		osOpenFile = func(name string, flag int, perm os.FileMode) (*os.File, error) {
			gotFlag = flag
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
		}
		err := s.WriteFile(ctx, path, []byte("clobbered"))
		assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)
		assert.Equal(t, os.O_WRONLY, gotFlag)
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be created")
}

func TestStore_WriteFile_Symlink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	realPath := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(realPath, []byte("old"), 0o600))
	require.NoError(t, os.Symlink("real.txt", link))

	t.Run("existing_target", func(t *testing.T) {
		require.NoError(t, s.WriteFile(ctx, link, []byte("new")))
		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&fs.ModeSymlink, "link must stay a symlink")
		data, err := os.ReadFile(realPath)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		info, err = os.Stat(realPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("dangling_link", func(t *testing.T) {
		dangling := filepath.Join(dir, "dangling.txt")
		require.NoError(t, os.Symlink(filepath.Join(dir, "later.txt"), dangling))
		require.NoError(t, s.WriteFile(ctx, dangling, []byte("created")))
		info, err := os.Lstat(dangling)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&fs.ModeSymlink)
		data, err := os.ReadFile(filepath.Join(dir, "later.txt"))
		require.NoError(t, err)
		assert.Equal(t, "created", string(data))
	})

	t.Run("loop", func(t *testing.T) {
		a := filepath.Join(dir, "loop-a")
		b := filepath.Join(dir, "loop-b")
		require.NoError(t, os.Symlink(b, a))
		require.NoError(t, os.Symlink(a, b))
		err := s.WriteFile(ctx, a, []byte("x"))
		assert.True(t, errors.Is(err, errSymlinkLoop), "got %v", err)
	})
}

func TestStore_LockFile(t *testing.T) {
	s := newTestStore(t)
	s.lockTimeout = 50 * time.Millisecond
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "busy.txt")

	lock, err := s.lockFile(ctx, path)
	require.NoError(t, err)
	defer func() { _ = lock.Unlock() }()

	lockPath, err := s.lockPath(path)
	require.NoError(t, err)
	assert.Equal(t, s.lockDir, filepath.Dir(lockPath))

	err = s.WriteFile(ctx, path, []byte("x"))
	assert.Equal(t, files.KindBusy, files.KindOf(err))
}

func TestStore_LockDirError(t *testing.T) {
	origMkdirAll := osMkdirAll
	defer func() { osMkdirAll = origMkdirAll }()
	osMkdirAll = func(path string, perm os.FileMode) error {
		return fs.ErrPermission
	}
	s := newTestStore(t)
	err := s.WriteFile(context.Background(), filepath.Join(t.TempDir(), "x.txt"), nil)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}
