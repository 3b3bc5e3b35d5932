// Package proc runs external commands and captures their output.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// Result holds the captured outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// System abstracts process execution so tests can substitute a fake.
// This interface is intentionally package-local; other packages that need
// different OS operations define their own System interfaces.
type System interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, argv []string, dir string) (Result, error)
	Environ() []string
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// LookPath searches for an executable in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes argv synchronously and captures both output streams fully.
// A non-zero exit is reported through Result.ExitCode, not an error; the
// error return covers start failures such as a missing executable.
func (RealSystem) Run(ctx context.Context, argv []string, dir string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf(messages.ProcEmptyArgv)
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, err
	}
	return res, nil
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Runner executes commands against an expected exit code.
type Runner struct {
	Sys System
	Log *log.Logger
	// DumpEnv additionally logs the full environment before each command.
	DumpEnv bool
}

// NewRunner returns a Runner backed by the real OS.
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{Sys: RealSystem{}, Log: logger}
}

// Run executes argv in dir and requires the exit code to equal expected.
// On a different exit code it returns an *ExitError carrying both streams.
// A missing executable is reported as an error satisfying IsNotFound.
func (r *Runner) Run(ctx context.Context, dir string, expected int, argv ...string) (Result, error) {
	r.logCommand(argv)
	res, err := r.Sys.Run(ctx, argv, dir)
	if err != nil {
		if isNotFoundCause(err) {
			return res, &NotFoundError{Name: argv[0], Err: err}
		}
		return res, fmt.Errorf(messages.ProcStartFailedFmt, argv[0], err)
	}
	if res.ExitCode != expected {
		return res, &ExitError{
			Argv:         argv,
			ExpectedCode: expected,
			Code:         res.ExitCode,
			Stdout:       res.Stdout,
			Stderr:       res.Stderr,
		}
	}
	return res, nil
}

// Output runs argv expecting exit code 0 and returns captured stdout.
func (r *Runner) Output(ctx context.Context, argv ...string) (string, error) {
	res, err := r.Run(ctx, "", 0, argv...)
	if err != nil {
		return "", err
	}
	return string(res.Stdout), nil
}

func (r *Runner) logCommand(argv []string) {
	if r.Log == nil {
		return
	}
	r.Log.Debug("running command", "argv", argv)
	if r.DumpEnv {
		for _, entry := range r.Sys.Environ() {
			r.Log.Debug("env", "entry", entry)
		}
	}
}
