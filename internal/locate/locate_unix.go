//go:build !windows

package locate

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// candidateNames returns the file names to try for base. Executables carry
// no suffix conventions outside Windows.
func candidateNames(base string) []string {
	return []string{base}
}

// canExecute reports whether the current user may execute path.
func canExecute(path string, _ fs.FileInfo) bool {
	return unix.Access(path, unix.X_OK) == nil
}
