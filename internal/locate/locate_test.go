//go:build !windows

package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gpsgate/csharpier-hook/internal/testutil"
)

func TestFindReturnsOnlyExecutableMatches(t *testing.T) {
	dir := t.TempDir()
	want := testutil.WriteStub(t, dir, "csharpier")

	// Present but not executable.
	plain := filepath.Join(dir, "csharpier.txt")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got := Find("csharpier", []string{dir}, "")
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected [%s], got %v", want, got)
	}
}

func TestFindSkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "csharpier")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if got := Find("csharpier", []string{dir}, ""); len(got) != 0 {
		t.Fatalf("expected no matches for non-executable file, got %v", got)
	}
}

func TestFindSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "csharpier"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if got := Find("csharpier", []string{dir}, ""); len(got) != 0 {
		t.Fatalf("expected no matches for directory, got %v", got)
	}
}

func TestFindDeduplicates(t *testing.T) {
	dir := t.TempDir()
	want := testutil.WriteStub(t, dir, "csharpier")

	got := Find("csharpier", []string{dir, dir}, dir)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected single deduplicated match, got %v", got)
	}
}

func TestFindFirstDirOrdering(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	wantFirst := testutil.WriteStub(t, first, "csharpier")
	wantSecond := testutil.WriteStub(t, second, "csharpier")

	got := Find("csharpier", []string{second}, first)
	if len(got) != 2 {
		t.Fatalf("expected two matches, got %v", got)
	}
	if got[0] != wantFirst || got[1] != wantSecond {
		t.Fatalf("firstDir must be searched first: %v", got)
	}
}

func TestFindEmptyWhenMissing(t *testing.T) {
	got := Find("csharpier", []string{t.TempDir(), ""}, "")
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSearchPathSplitsPATH(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	t.Setenv("PATH", a+string(os.PathListSeparator)+b)

	dirs := SearchPath()
	if len(dirs) < 2 || dirs[0] != a || dirs[1] != b {
		t.Fatalf("expected PATH dirs first, got %v", dirs)
	}
	// The dotnet global tool directory is appended after PATH.
	last := dirs[len(dirs)-1]
	if filepath.Base(last) != "tools" {
		t.Fatalf("expected dotnet tools dir last, got %v", dirs)
	}
}
