//go:build windows

package filesystem

import "os"

// WriteFileAtomic falls back to a plain write on Windows, where renameio
// cannot replace a file that another process holds open.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
