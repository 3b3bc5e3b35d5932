//go:build windows

package locate

import (
	"io/fs"
	"os"
	"strings"
)

var defaultExts = []string{".exe", ".bat", ".cmd"}

// candidateNames returns base followed by base plus each recognized
// executable suffix. PATHEXT overrides the default suffix list when set.
func candidateNames(base string) []string {
	exts := defaultExts
	if pathext := os.Getenv("PATHEXT"); pathext != "" {
		exts = nil
		for _, ext := range strings.Split(pathext, ";") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext != "" && strings.HasPrefix(ext, ".") {
				exts = append(exts, ext)
			}
		}
	}
	names := []string{base}
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			continue
		}
		names = append(names, base+ext)
	}
	return names
}

// canExecute reports whether path is runnable. Windows has no execute bit;
// existing regular files are considered executable.
func canExecute(_ string, info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}
