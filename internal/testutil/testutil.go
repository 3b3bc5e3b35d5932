// Package testutil provides shell-stub executables for exec-path tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) string {
	t.Helper()
	return WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteStubScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteVersionStub writes a stub that answers --version with the given
// version and succeeds on any other invocation.
func WriteVersionStub(t *testing.T, dir string, name string, version string) string {
	t.Helper()
	script := fmt.Sprintf("for arg in \"$@\"; do\n  if [ \"$arg\" = \"--version\" ]; then echo %q; exit 0; fi\ndone\nexit 0\n", version)
	return WriteStubScript(t, dir, name, script)
}

// WriteRecordingStub writes a stub that appends its arguments to logFile
// before exiting with exitCode. Tests use the log to prove which stub ran.
func WriteRecordingStub(t *testing.T, dir string, name string, logFile string, exitCode int) string {
	t.Helper()
	script := fmt.Sprintf("echo \"$@\" >> %q\nexit %d\n", logFile, exitCode)
	return WriteStubScript(t, dir, name, script)
}

// WriteStubScript writes an executable sh script with the given body and
// returns its path.
func WriteStubScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
