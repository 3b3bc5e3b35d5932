// Package gitroot locates the enclosing git repository root.
package gitroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// Find searches upwards from start for a directory containing .git and
// returns it. A .git regular file also marks the root (worktrees and
// submodules). found is false when no repository encloses start.
func Find(start string) (root string, found bool, err error) {
	if start == "" {
		return "", false, fmt.Errorf(messages.GitrootStartPathRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf(messages.GitrootResolvePathFmt, start, err)
	}
	for {
		marker := filepath.Join(dir, ".git")
		info, err := os.Stat(marker)
		if err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return dir, true, nil
			}
		} else if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", false, fmt.Errorf(messages.GitrootCheckPathFmt, marker, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
