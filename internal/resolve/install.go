package resolve

import (
	"context"
	"fmt"

	"github.com/gpsgate/csharpier-hook/internal/config"
	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// installer performs the one-shot `dotnet tool install` step when the
// install policy permits. It never runs more than once per invocation, and
// a failed install abandons further install attempts while leaving the
// remaining strategies untouched.
type installer struct {
	deps      *Deps
	attempted bool
}

func newInstaller(deps *Deps) *installer {
	return &installer{deps: deps}
}

// shouldTry reports whether an install attempt is still permitted.
func (i *installer) shouldTry() bool {
	if i.attempted {
		return false
	}
	switch i.deps.Cfg.InstallPolicy {
	case config.InstallAlways:
		return true
	case config.InstallOnVersion:
		return i.deps.Cfg.Version != ""
	default:
		return false
	}
}

// run installs csharpier as a dotnet global tool, pinned to the requested
// version when one is configured.
func (i *installer) run(ctx context.Context) error {
	i.attempted = true

	dotnets := i.deps.Find("dotnet", i.deps.SearchPath(), "")
	if len(dotnets) == 0 {
		wrapped := fmt.Errorf(messages.ResolveInstallFailedFmt, orLatest(i.deps.Cfg.Version), fmt.Errorf(messages.ResolveDotnetUnavailable))
		i.deps.Log.Warn(wrapped.Error())
		return wrapped
	}

	i.deps.Log.Info(fmt.Sprintf(messages.ResolveInstallingFmt, orLatest(i.deps.Cfg.Version)))
	argv := []string{dotnets[0], "tool", "install", "-g", "csharpier"}
	if i.deps.Cfg.Version != "" {
		argv = append(argv, "--version", i.deps.Cfg.Version)
	}
	if _, err := i.deps.Runner.Run(ctx, "", 0, argv...); err != nil {
		wrapped := fmt.Errorf(messages.ResolveInstallFailedFmt, orLatest(i.deps.Cfg.Version), err)
		i.deps.Log.Warn(wrapped.Error())
		return wrapped
	}
	return nil
}

func orLatest(version string) string {
	if version == "" {
		return "latest"
	}
	return version
}
