package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gpsgate/csharpier-hook/internal/config"
	"github.com/gpsgate/csharpier-hook/internal/gitroot"
	"github.com/gpsgate/csharpier-hook/internal/messages"
	"github.com/gpsgate/csharpier-hook/internal/proc"
	"github.com/gpsgate/csharpier-hook/internal/resolve"
	"github.com/gpsgate/csharpier-hook/internal/terminal"
)

var getwd = os.Getwd

func newRootCmd() *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return run(cmd, cfg, stripArgsSeparator(args))
		},
	}

	cmd.Flags().StringVar(&flags.Version, "tool-version", "", messages.FlagToolVersionHelp)
	cmd.Flags().StringVar(&flags.Strategies, "strategies", "", messages.FlagStrategiesHelp)
	cmd.Flags().StringVar(&flags.InstallPolicy, "install-policy", "", messages.FlagInstallPolicyHelp)
	cmd.Flags().StringVar(&flags.DockerImage, "docker-image", "", messages.FlagDockerImageHelp)
	cmd.Flags().CountVarP(&flags.Verbosity, "verbose", "v", messages.FlagVerboseHelp)
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, messages.FlagQuietHelp)

	return cmd
}

// loadConfig resolves the enclosing repository root and assembles the
// configuration once, before any strategy runs.
func loadConfig(flags config.Flags) (*config.Config, error) {
	cwd, err := getwd()
	if err != nil {
		return nil, err
	}
	repoRoot, found, err := gitroot.Find(cwd)
	if err != nil {
		return nil, err
	}
	if !found {
		repoRoot = ""
	}
	return config.Load(repoRoot, flags)
}

// run wires the resolver against the real OS and executes the fallback
// chain for the given files.
func run(cmd *cobra.Command, cfg *config.Config, files []string) error {
	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr, cfg)
	runner := proc.NewRunner(logger)
	runner.DumpEnv = cfg.Verbosity >= 2

	resolver, err := resolve.New(resolve.NewDeps(cfg, runner, logger), cmd.OutOrStdout(), stderr)
	if err != nil {
		return err
	}
	if !resolver.Run(cmd.Context(), files) {
		_, _ = fmt.Fprintln(stderr, failureString(stderr, messages.AllStrategiesFailed))
		return &SilentExitError{Code: 1}
	}
	return nil
}

// newLogger builds the stderr logger at the configured verbosity.
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level := log.WarnLevel
	switch {
	case cfg.Verbosity >= 1:
		level = log.DebugLevel
	case cfg.Quiet:
		level = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{Level: level})
}

// failureString styles the failure message when w is an interactive
// terminal. Redirected writers get the plain text.
func failureString(w io.Writer, msg string) string {
	if f, ok := w.(*os.File); ok && terminal.IsTerminal(f) {
		return color.RedString("%s", msg)
	}
	return msg
}

// stripArgsSeparator removes a standalone "--" and returns the args that
// should be forwarded to the formatter. Arguments before "--" are preserved.
func stripArgsSeparator(args []string) []string {
	passArgs := []string{}
	for i, arg := range args {
		if arg == "--" {
			passArgs = append(passArgs, args[i+1:]...)
			break
		}
		passArgs = append(passArgs, arg)
	}
	return passArgs
}
