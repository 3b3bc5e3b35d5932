// Package locate finds executables across ordered directory lists.
package locate

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// Find returns the ordered, de-duplicated absolute paths of executables
// matching base in the given directories. firstDir, when non-empty, is
// searched before dirs. Each base name is tried with every platform
// executable suffix. Entries that do not exist, are directories, or are
// not executable by the current user are dropped. Find never fails; it
// returns an empty slice when nothing matches.
func Find(base string, dirs []string, firstDir string) []string {
	search := dirs
	if firstDir != "" {
		search = append([]string{firstDir}, dirs...)
	}

	seen := make(map[string]struct{})
	found := []string{}
	for _, dir := range search {
		if dir == "" {
			continue
		}
		for _, name := range candidateNames(base) {
			abs, err := filepath.Abs(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			if _, dup := seen[abs]; dup {
				continue
			}
			info, err := os.Stat(abs)
			if err != nil || info.IsDir() {
				continue
			}
			if !canExecute(abs, info) {
				continue
			}
			seen[abs] = struct{}{}
			found = append(found, abs)
		}
	}
	return found
}

// SearchPath returns the directories of PATH followed by the dotnet global
// tool directory, which is where `dotnet tool install -g` places shims.
func SearchPath() []string {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	if home, err := homedir.Dir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".dotnet", "tools"))
	}
	return dirs
}
