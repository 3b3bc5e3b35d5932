package resolve

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// Strategy names accepted in configuration.
const (
	StrategyDotnetTool = "dotnet-tool"
	StrategyBinary     = "binary"
	StrategyDocker     = "docker"
)

// ForNames maps a configured strategy order onto strategy implementations.
func ForNames(names []string, deps *Deps) ([]Strategy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf(messages.ResolveNoStrategies)
	}
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case StrategyDotnetTool:
			strategies = append(strategies, &dotnetToolStrategy{deps: deps})
		case StrategyBinary:
			strategies = append(strategies, &binaryStrategy{deps: deps})
		case StrategyDocker:
			strategies = append(strategies, &dockerStrategy{deps: deps})
		default:
			valid := strings.Join([]string{StrategyDotnetTool, StrategyBinary, StrategyDocker}, ", ")
			return nil, fmt.Errorf(messages.ResolveUnknownStrategyFmt, name, valid)
		}
	}
	return strategies, nil
}

func osGetwd() (string, error) {
	return os.Getwd()
}

// dotnetToolStrategy runs the formatter as a dotnet global tool
// (`dotnet csharpier`).
type dotnetToolStrategy struct {
	deps *Deps
}

func (s *dotnetToolStrategy) Name() string { return StrategyDotnetTool }
func (s *dotnetToolStrategy) Local() bool  { return true }

func (s *dotnetToolStrategy) Resolve(ctx context.Context) (*Tool, error) {
	dotnets := s.deps.Find("dotnet", s.deps.SearchPath(), "")
	if len(dotnets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, messages.ResolveDotnetUnavailable)
	}
	return pickVersioned(ctx, s.deps, prefixes(dotnets, "csharpier"))
}

// binaryStrategy runs a standalone csharpier executable from the search path.
type binaryStrategy struct {
	deps *Deps
}

func (s *binaryStrategy) Name() string { return StrategyBinary }
func (s *binaryStrategy) Local() bool  { return true }

func (s *binaryStrategy) Resolve(ctx context.Context) (*Tool, error) {
	candidates := s.deps.Find("csharpier", s.deps.SearchPath(), "")
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, messages.ResolveBinaryUnavailable)
	}
	return pickVersioned(ctx, s.deps, prefixes(candidates))
}

// dockerStrategy runs the formatter from a container image with the
// working directory bind-mounted at /src.
type dockerStrategy struct {
	deps *Deps
}

func (s *dockerStrategy) Name() string { return StrategyDocker }
func (s *dockerStrategy) Local() bool  { return false }

func (s *dockerStrategy) Resolve(ctx context.Context) (*Tool, error) {
	dockers := s.deps.Find("docker", s.deps.SearchPath(), "")
	if len(dockers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, messages.ResolveDockerUnavailable)
	}
	cwd, err := s.deps.Getwd()
	if err != nil {
		return nil, err
	}
	argv := []string{dockers[0], "run", "--rm"}
	argv = append(argv, s.deps.UserArgs()...)
	argv = append(argv,
		"-v", fmt.Sprintf("%s:/src:rw,Z", s.deps.HostPath(ctx, cwd)),
		"-w", "/src",
		"-t",
		s.imageRef(),
	)
	return &Tool{Argv: argv}, nil
}

// imageRef applies the requested version as an image tag. A tag already
// embedded in the configured reference is preserved, never overwritten; a
// disagreement with the requested version only produces a warning.
func (s *dockerStrategy) imageRef() string {
	image := s.deps.Cfg.DockerImage
	version := s.deps.Cfg.Version
	name := image
	if idx := strings.LastIndex(image, "/"); idx >= 0 {
		name = image[idx+1:]
	}
	if idx := strings.Index(name, ":"); idx >= 0 {
		if tag := name[idx+1:]; version != "" && tag != version {
			s.deps.Log.Warn(fmt.Sprintf(messages.ResolveImageTagKeptWarnFmt, image, version))
		}
		return image
	}
	if version != "" {
		return image + ":" + version
	}
	return image
}

// prefixes builds a command prefix per candidate path, appending any
// subcommand tokens.
func prefixes(paths []string, subcommand ...string) [][]string {
	out := make([][]string, 0, len(paths))
	for _, path := range paths {
		out = append(out, append([]string{path}, subcommand...))
	}
	return out
}

// pickVersioned probes each candidate prefix with --version and returns
// the first that answers. When a version is required, candidates reporting
// anything else are skipped; they are never invoked. Without a pinned
// version a failed probe does not disqualify the candidate.
func pickVersioned(ctx context.Context, deps *Deps, candidates [][]string) (*Tool, error) {
	want := deps.Cfg.Version
	for _, prefix := range candidates {
		version, err := probeVersion(ctx, deps, prefix)
		if err != nil {
			deps.Log.Debug(fmt.Sprintf(messages.ResolveVersionProbeFmt, strings.Join(prefix, " "), err))
			if want == "" {
				return &Tool{Argv: prefix}, nil
			}
			continue
		}
		if want != "" && version != want {
			deps.Log.Debug(fmt.Sprintf(messages.StrategySkippedVersionFmt, strings.Join(prefix, " "), version, want))
			continue
		}
		return &Tool{Argv: prefix, Version: version}, nil
	}
	if want != "" {
		return nil, fmt.Errorf("%w: no candidate reports version %s", ErrNotFound, want)
	}
	return nil, ErrNotFound
}

// probeVersion asks a candidate for its version and returns the trimmed
// response.
func probeVersion(ctx context.Context, deps *Deps, prefix []string) (string, error) {
	argv := append(append([]string{}, prefix...), "--version")
	res, err := deps.Runner.Run(ctx, "", 0, argv...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}
