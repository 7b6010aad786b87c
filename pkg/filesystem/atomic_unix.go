//go:build !windows

package filesystem

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes data through a temp file and rename so readers never
// observe a truncated file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
