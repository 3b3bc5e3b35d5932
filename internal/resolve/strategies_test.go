package resolve

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gpsgate/csharpier-hook/internal/config"
	"github.com/gpsgate/csharpier-hook/internal/locate"
	"github.com/gpsgate/csharpier-hook/internal/proc"
	"github.com/gpsgate/csharpier-hook/internal/testutil"
)

// testDeps wires Deps against real subprocess execution with the search
// path pinned to binDir.
func testDeps(cfg *config.Config, binDir string) *Deps {
	logger := log.New(io.Discard)
	return &Deps{
		Cfg:        cfg,
		Runner:     &proc.Runner{Sys: proc.RealSystem{}, Log: logger},
		Log:        logger,
		Find:       locate.Find,
		SearchPath: func() []string { return []string{binDir} },
		Getwd:      func() (string, error) { return "/work/repo", nil },
		HostPath:   func(_ context.Context, path string) string { return path },
		UserArgs:   func() []string { return []string{"-u", "1000:1000"} },
	}
}

func readLog(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestForNamesUnknownStrategy(t *testing.T) {
	_, err := ForNames([]string{"carrier-pigeon"}, testDeps(&config.Config{}, t.TempDir()))
	if err == nil || !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Fatalf("expected unknown strategy error, got %v", err)
	}
}

func TestForNamesEmpty(t *testing.T) {
	if _, err := ForNames(nil, testDeps(&config.Config{}, t.TempDir())); err == nil {
		t.Fatalf("expected error for empty strategy list")
	}
}

func TestBinaryStrategyResolves(t *testing.T) {
	binDir := t.TempDir()
	stub := testutil.WriteVersionStub(t, binDir, "csharpier", "0.30.2")
	deps := testDeps(&config.Config{}, binDir)

	tool, err := (&binaryStrategy{deps: deps}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if len(tool.Argv) != 1 || tool.Argv[0] != stub {
		t.Fatalf("unexpected argv: %v", tool.Argv)
	}
	if tool.Version != "0.30.2" {
		t.Fatalf("unexpected version: %q", tool.Version)
	}
}

func TestBinaryStrategyMissing(t *testing.T) {
	deps := testDeps(&config.Config{}, t.TempDir())

	_, err := (&binaryStrategy{deps: deps}).Resolve(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBinaryStrategyVersionMismatchNeverInvoked(t *testing.T) {
	binDir := t.TempDir()
	invocations := filepath.Join(binDir, "invocations.log")
	script := "echo \"$@\" >> " + invocations + "\nif [ \"$1\" = \"--version\" ]; then echo 0.10.0; fi\nexit 0\n"
	testutil.WriteStubScript(t, binDir, "csharpier", script)
	deps := testDeps(&config.Config{Version: "0.30.2"}, binDir)

	_, err := (&binaryStrategy{deps: deps}).Resolve(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for version mismatch, got %v", err)
	}
	for _, line := range readLog(t, invocations) {
		if line != "--version" {
			t.Fatalf("mismatched candidate was invoked beyond the probe: %q", line)
		}
	}
}

func TestBinaryStrategyToleratesProbeFailureWithoutPinnedVersion(t *testing.T) {
	binDir := t.TempDir()
	script := "if [ \"$1\" = \"--version\" ]; then exit 1; fi\nexit 0\n"
	stub := testutil.WriteStubScript(t, binDir, "csharpier", script)
	deps := testDeps(&config.Config{}, binDir)

	tool, err := (&binaryStrategy{deps: deps}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if len(tool.Argv) != 1 || tool.Argv[0] != stub {
		t.Fatalf("unexpected argv: %v", tool.Argv)
	}
	if tool.Version != "" {
		t.Fatalf("expected unknown version, got %q", tool.Version)
	}
}

func TestBinaryStrategyProbeFailureWithPinnedVersionSkips(t *testing.T) {
	binDir := t.TempDir()
	script := "if [ \"$1\" = \"--version\" ]; then exit 1; fi\nexit 0\n"
	testutil.WriteStubScript(t, binDir, "csharpier", script)
	deps := testDeps(&config.Config{Version: "0.30.2"}, binDir)

	_, err := (&binaryStrategy{deps: deps}).Resolve(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDotnetToolStrategyResolves(t *testing.T) {
	binDir := t.TempDir()
	script := "if [ \"$1\" = \"csharpier\" ] && [ \"$2\" = \"--version\" ]; then echo 0.30.2; fi\nexit 0\n"
	dotnet := testutil.WriteStubScript(t, binDir, "dotnet", script)
	deps := testDeps(&config.Config{}, binDir)

	tool, err := (&dotnetToolStrategy{deps: deps}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	want := []string{dotnet, "csharpier"}
	if len(tool.Argv) != 2 || tool.Argv[0] != want[0] || tool.Argv[1] != want[1] {
		t.Fatalf("unexpected argv: %v", tool.Argv)
	}
	if tool.Version != "0.30.2" {
		t.Fatalf("unexpected version: %q", tool.Version)
	}
}

func TestDotnetToolStrategyWithoutDotnet(t *testing.T) {
	deps := testDeps(&config.Config{}, t.TempDir())

	_, err := (&dotnetToolStrategy{deps: deps}).Resolve(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDockerStrategyArgv(t *testing.T) {
	binDir := t.TempDir()
	docker := testutil.WriteStub(t, binDir, "docker")
	cfg := &config.Config{DockerImage: config.DefaultDockerImage}
	deps := testDeps(cfg, binDir)
	deps.HostPath = func(_ context.Context, _ string) string { return "/host/repo" }

	tool, err := (&dockerStrategy{deps: deps}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	want := []string{
		docker, "run", "--rm",
		"-u", "1000:1000",
		"-v", "/host/repo:/src:rw,Z",
		"-w", "/src",
		"-t",
		config.DefaultDockerImage,
	}
	if strings.Join(tool.Argv, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected argv:\n got %v\nwant %v", tool.Argv, want)
	}
}

func TestDockerStrategyMissingDocker(t *testing.T) {
	deps := testDeps(&config.Config{DockerImage: config.DefaultDockerImage}, t.TempDir())

	_, err := (&dockerStrategy{deps: deps}).Resolve(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDockerImageRefVersionTag(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		version string
		want    string
	}{
		{"no tag no version", "ghcr.io/gpsgate/csharpier", "", "ghcr.io/gpsgate/csharpier"},
		{"version appended", "ghcr.io/gpsgate/csharpier", "0.30.2", "ghcr.io/gpsgate/csharpier:0.30.2"},
		{"existing tag preserved", "ghcr.io/gpsgate/csharpier:1.0", "0.30.2", "ghcr.io/gpsgate/csharpier:1.0"},
		{"matching tag preserved", "ghcr.io/gpsgate/csharpier:0.30.2", "0.30.2", "ghcr.io/gpsgate/csharpier:0.30.2"},
		{"registry port is not a tag", "registry.example.com:5000/csharpier", "0.30.2", "registry.example.com:5000/csharpier:0.30.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := testDeps(&config.Config{DockerImage: tt.image, Version: tt.version}, t.TempDir())
			s := &dockerStrategy{deps: deps}
			if got := s.imageRef(); got != tt.want {
				t.Fatalf("imageRef() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDockerImageRefKeptTagWarning(t *testing.T) {
	tests := []struct {
		name     string
		image    string
		version  string
		wantWarn bool
	}{
		{"mismatched tag warns", "ghcr.io/gpsgate/csharpier:1.0", "0.30.2", true},
		{"tag with version suffix warns", "ghcr.io/gpsgate/csharpier:1.0.30.2", "0.30.2", true},
		{"matching tag is silent", "ghcr.io/gpsgate/csharpier:0.30.2", "0.30.2", false},
		{"no requested version is silent", "ghcr.io/gpsgate/csharpier:1.0", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := testDeps(&config.Config{DockerImage: tt.image, Version: tt.version}, t.TempDir())
			var buf strings.Builder
			deps.Log = log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
			s := &dockerStrategy{deps: deps}

			if got := s.imageRef(); got != tt.image {
				t.Fatalf("existing tag must be preserved, got %q", got)
			}
			warned := strings.Contains(buf.String(), "keeping it")
			if warned != tt.wantWarn {
				t.Fatalf("warn = %v, want %v (log: %s)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}
