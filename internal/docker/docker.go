// Package docker detects containerized execution and remaps bind-mount paths.
package docker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gpsgate/csharpier-hook/internal/messages"
	"github.com/gpsgate/csharpier-hook/internal/proc"
)

const cgroupPath = "/proc/1/cgroup"

// Remapper translates in-container paths back to host paths so Docker
// bind mounts started from inside a container point at the right place.
type Remapper struct {
	Runner *proc.Runner
	Log    *log.Logger
	// ReadFile is a seam for tests; defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// NewRemapper returns a Remapper backed by the real filesystem.
func NewRemapper(runner *proc.Runner, logger *log.Logger) *Remapper {
	return &Remapper{Runner: runner, Log: logger, ReadFile: os.ReadFile}
}

// InContainer reports whether the current process runs inside Docker.
func (r *Remapper) InContainer() bool {
	data, err := r.ReadFile(cgroupPath)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("docker"))
}

// HostPath returns the host-side equivalent of path when running inside a
// container, by matching path against the container's own mount table.
// On any failure it falls back to the unmapped path: docker-in-docker
// setups legitimately cannot inspect themselves.
func (r *Remapper) HostPath(ctx context.Context, path string) string {
	if !r.InContainer() {
		return path
	}

	id, err := r.containerID()
	if err != nil {
		r.Log.Warn(messages.DockerInspectSelfFailed, "err", err)
		return path
	}

	out, err := r.Runner.Output(ctx, "docker", "inspect", id)
	if err != nil {
		r.Log.Warn(messages.DockerInspectSelfFailed, "err", err)
		return path
	}

	var containers []struct {
		Mounts []struct {
			Source      string
			Destination string
		}
	}
	if err := json.Unmarshal([]byte(out), &containers); err != nil || len(containers) != 1 {
		r.Log.Warn(messages.DockerInspectSelfFailed, "err", err)
		return path
	}

	for _, mount := range containers[0].Mounts {
		if underMount(path, mount.Destination) {
			return mount.Source + strings.TrimPrefix(path, mount.Destination)
		}
	}
	// In Docker but the path is not mounted; nothing more we can do.
	return path
}

// containerID extracts the container id from the cpuset line of /proc/1/cgroup.
// The cpuset controller has existed since cgroups were introduced, so this
// lookup is reliable whenever InContainer reported true.
func (r *Remapper) containerID() (string, error) {
	data, err := r.ReadFile(cgroupPath)
	if err != nil {
		return "", fmt.Errorf(messages.DockerReadCgroupFmt, cgroupPath, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) == 3 && parts[1] == "cpuset" {
			return filepath.Base(strings.TrimSpace(parts[2])), nil
		}
	}
	return "", fmt.Errorf(messages.DockerNoContainerID)
}

// underMount reports whether path sits at or below the mount destination.
func underMount(path, dest string) bool {
	if dest == "" {
		return false
	}
	return path == dest || strings.HasPrefix(path, strings.TrimSuffix(dest, "/")+"/")
}

// UserArgs returns the docker run flags that keep files written by the
// container owned by the invoking user.
func UserArgs() []string {
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		// Windows has no uid/gid mapping.
		return nil
	}
	return []string{"-u", fmt.Sprintf("%d:%d", uid, gid)}
}
