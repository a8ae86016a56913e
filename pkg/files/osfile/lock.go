package osfile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/datatug/filepane/pkg/files"
	"github.com/gofrs/flock"
)

var osMkdirAll = os.MkdirAll

const lockPollInterval = 10 * time.Millisecond

// lockFile takes an exclusive OS-level lock serialising writers of path.
// Lock files live in the store's lock dir, named by a hash of the absolute path,
// so they never show up in a listing of the user's directory.
func (s Store) lockFile(ctx context.Context, path string) (*flock.Flock, error) {
	lockPath, err := s.lockPath(path)
	if err != nil {
		return nil, err
	}
	if err = osMkdirAll(s.lockDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}

	timeout := s.lockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lock := flock.New(lockPath)
	locked, err := lock.TryLockContext(ctx, lockPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, files.NewError(files.KindBusy, "lock", path, err)
		}
		return nil, fmt.Errorf("error acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return nil, files.NewError(files.KindBusy, "lock", path, nil)
	}
	return lock, nil
}

func (s Store) lockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(s.lockDir, hex.EncodeToString(sum[:16])+".lock"), nil
}
