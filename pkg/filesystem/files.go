package filesystem

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
)

// RemoveIfExists deletes path. It reports whether a file was removed and
// treats a missing file as success.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
