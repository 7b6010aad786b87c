package filesystem

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"

	errUtils "github.com/fabric-cli/fab/errors"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const (
	maxLockRetries = 50
	lockRetryDelay = 10 * time.Millisecond
)

// WithFileLock runs fn while holding an exclusive lock on path + ".lock".
// A dedicated lock file survives the atomic rename of path itself.
func WithFileLock(path string, fn func() error) error {
	lockPath := path + ".lock"
	lock := flock.New(lockPath)

	var locked bool
	var err error
	for i := 0; i < maxLockRetries; i++ {
		locked, err = lock.TryLock()
		if err != nil {
			return errors.Join(errUtils.ErrFileLocked, err)
		}
		if locked {
			break
		}
		time.Sleep(lockRetryDelay)
	}

	if !locked {
		return errors.Wrapf(errUtils.ErrFileLocked, "%s", path)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Debug("Failed to unlock file", "lock_file", lockPath, "error", err)
		}
	}()

	return fn()
}
