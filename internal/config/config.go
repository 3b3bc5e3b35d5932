// Package config assembles the hook configuration from flags, environment
// variables, and optional per-repository files.
package config

import (
	"fmt"
	"strings"

	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// Environment variables understood by the hook. They override both the
// corresponding command-line flags and the repo config file.
const (
	EnvVersion     = "PRE_COMMIT_HOOK_CSHARPIER_VERSION"
	EnvStrategies  = "PRE_COMMIT_HOOK_CSHARPIER_STRATEGIES"
	EnvInstall     = "PRE_COMMIT_HOOK_CSHARPIER_INSTALL"
	EnvDockerImage = "PRE_COMMIT_HOOK_CSHARPIER_DOCKER"
	EnvDebug       = "PRE_COMMIT_HOOK_CSHARPIER_DEBUG"

	// EnvPrefix is the namespace honored in .csharpier-hook.env files.
	EnvPrefix = "PRE_COMMIT_HOOK_CSHARPIER_"
)

// DefaultDockerImage is the container image used when none is configured.
const DefaultDockerImage = "ghcr.io/gpsgate/csharpier"

// DefaultStrategies is the resolution order used when none is configured.
var DefaultStrategies = []string{"dotnet-tool", "binary", "docker"}

// InstallPolicy governs whether automatic installation is attempted.
type InstallPolicy string

// Install policies, from most to least conservative.
const (
	InstallNever     InstallPolicy = "never"
	InstallOnVersion InstallPolicy = "on-version"
	InstallAlways    InstallPolicy = "always"
)

// ParseInstallPolicy validates a policy string.
func ParseInstallPolicy(raw string) (InstallPolicy, error) {
	switch InstallPolicy(strings.TrimSpace(raw)) {
	case InstallNever:
		return InstallNever, nil
	case InstallOnVersion:
		return InstallOnVersion, nil
	case InstallAlways:
		return InstallAlways, nil
	default:
		return "", fmt.Errorf(messages.ConfigInvalidInstallPolicyFmt, raw)
	}
}

// Config is the fully resolved hook configuration, constructed once at
// startup and passed explicitly into the resolver.
type Config struct {
	// Version, when non-empty, requires every candidate to report exactly
	// this version.
	Version string
	// Strategies is the resolution order.
	Strategies []string
	// InstallPolicy controls the automatic `dotnet tool install` step.
	InstallPolicy InstallPolicy
	// DockerImage is the container image reference for the docker strategy.
	DockerImage string
	// Verbosity is 0 for warnings only, 1 for command logging, 2 to also
	// dump the environment with each command.
	Verbosity int
	// Quiet suppresses strategy fallback warnings.
	Quiet bool
}

// Flags carries the raw command-line flag values. Zero values mean the
// flag was not given.
type Flags struct {
	Version       string
	Strategies    string
	InstallPolicy string
	DockerImage   string
	Verbosity     int
	Quiet         bool
}

// SplitStrategies parses a comma-separated strategy list, trimming
// whitespace and dropping empty entries.
func SplitStrategies(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
