// Package resolve locates a runnable CSharpier command and invokes it,
// falling back across resolution strategies.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/gpsgate/csharpier-hook/internal/config"
	"github.com/gpsgate/csharpier-hook/internal/docker"
	"github.com/gpsgate/csharpier-hook/internal/locate"
	"github.com/gpsgate/csharpier-hook/internal/messages"
	"github.com/gpsgate/csharpier-hook/internal/proc"
)

// Tool is a concrete, invocable formatter command: the command prefix plus
// the version it reports when probed.
type Tool struct {
	Argv    []string
	Version string
}

// ErrNotFound signals that a strategy could not produce a usable tool.
// Strategy failures are non-fatal; the resolver falls through to the next.
var ErrNotFound = errors.New("no usable csharpier")

// Strategy is one method of locating or running the formatter.
type Strategy interface {
	Name() string
	// Local reports whether the strategy discovers a locally installed
	// tool, making it eligible for the automatic install retry.
	Local() bool
	Resolve(ctx context.Context) (*Tool, error)
}

// Deps carries the collaborators shared by strategies. Tests substitute
// the function fields.
type Deps struct {
	Cfg    *config.Config
	Runner *proc.Runner
	Log    *log.Logger

	Find       func(base string, dirs []string, firstDir string) []string
	SearchPath func() []string
	Getwd      func() (string, error)
	HostPath   func(ctx context.Context, path string) string
	UserArgs   func() []string
}

// NewDeps wires Deps against the real OS.
func NewDeps(cfg *config.Config, runner *proc.Runner, logger *log.Logger) *Deps {
	remapper := docker.NewRemapper(runner, logger)
	return &Deps{
		Cfg:        cfg,
		Runner:     runner,
		Log:        logger,
		Find:       locate.Find,
		SearchPath: locate.SearchPath,
		Getwd:      osGetwd,
		HostPath:   remapper.HostPath,
		UserArgs:   docker.UserArgs,
	}
}

// Resolver tries each strategy in order and runs the formatter through the
// first one that works.
type Resolver struct {
	Deps       *Deps
	Strategies []Strategy
	Stdout     io.Writer
	Stderr     io.Writer

	install *installer
}

// New builds a Resolver for the configured strategy order.
func New(deps *Deps, stdout, stderr io.Writer) (*Resolver, error) {
	strategies, err := ForNames(deps.Cfg.Strategies, deps)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		Deps:       deps,
		Strategies: strategies,
		Stdout:     stdout,
		Stderr:     stderr,
		install:    newInstaller(deps),
	}, nil
}

// Run resolves a tool and formats files with it. Every strategy failure is
// non-fatal and logged; Run reports false only when all strategies are
// exhausted.
func (r *Resolver) Run(ctx context.Context, files []string) bool {
	for _, strategy := range r.Strategies {
		r.Deps.Log.Debug(fmt.Sprintf(messages.StrategyTryingFmt, strategy.Name()))
		tool, err := strategy.Resolve(ctx)
		if err != nil && strategy.Local() && errors.Is(err, ErrNotFound) && r.install.shouldTry() {
			if r.install.run(ctx) == nil {
				tool, err = strategy.Resolve(ctx)
			}
		}
		if err != nil {
			r.warnStrategy(strategy, err)
			continue
		}
		r.Deps.Log.Debug(fmt.Sprintf(messages.StrategyResolvedFmt, strategy.Name(), orUnknown(tool.Version)))
		if r.invoke(ctx, tool, files) {
			return true
		}
	}
	return false
}

// invoke concatenates the tool prefix with the file arguments and executes
// it, relaying output: stdout on success, stderr plus stdout on failure.
func (r *Resolver) invoke(ctx context.Context, tool *Tool, files []string) bool {
	argv := append(append([]string{}, tool.Argv...), files...)
	res, err := r.Deps.Runner.Run(ctx, "", 0, argv...)
	if err == nil {
		if len(res.Stdout) > 0 {
			fmt.Fprint(r.Stdout, string(res.Stdout))
		}
		return true
	}
	var exitErr *proc.ExitError
	if errors.As(err, &exitErr) {
		if len(exitErr.Stderr) > 0 {
			fmt.Fprint(r.Stderr, string(exitErr.Stderr))
		}
		if len(exitErr.Stdout) > 0 {
			fmt.Fprint(r.Stdout, string(exitErr.Stdout))
		}
		return false
	}
	r.Deps.Log.Warn(err.Error())
	return false
}

func (r *Resolver) warnStrategy(strategy Strategy, err error) {
	if r.Deps.Cfg.Quiet {
		r.Deps.Log.Debug(fmt.Sprintf(messages.StrategyFailedFmt, strategy.Name(), err))
		return
	}
	r.Deps.Log.Warn(fmt.Sprintf(messages.StrategyFailedFmt, strategy.Name(), err))
}

func orUnknown(version string) string {
	if version == "" {
		return "unknown"
	}
	return version
}
