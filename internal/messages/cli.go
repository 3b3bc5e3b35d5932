package messages

// CLI help text and user-facing command output.
const (
	RootUse   = "csharpier-hook [flags] [--] [files...]"
	RootShort = "Pre-commit hook wrapper for the CSharpier formatter"
	RootLong  = "csharpier-hook locates or installs the CSharpier formatter and runs it\n" +
		"against the given files. It tries each resolution strategy in order\n" +
		"(dotnet tool, standalone binary, Docker) and exits 0 as soon as one\n" +
		"of them formats successfully."

	VersionTemplate  = "csharpier-hook {{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"

	FlagToolVersionHelp   = "require this exact CSharpier version (e.g. 0.30.2)"
	FlagStrategiesHelp    = "comma-separated strategy order (dotnet-tool, binary, docker)"
	FlagInstallPolicyHelp = "when to install the tool automatically (never, on-version, always)"
	FlagDockerImageHelp   = "Docker image to run the formatter from"
	FlagVerboseHelp       = "verbose logging; repeat to dump the environment with each command"
	FlagQuietHelp         = "suppress strategy fallback warnings"

	AllStrategiesFailed = "no strategy was able to run csharpier; giving up"

	StrategyFailedFmt         = "strategy %s failed: %v"
	StrategyTryingFmt         = "trying strategy %s"
	StrategyResolvedFmt       = "resolved csharpier via %s (version %s)"
	StrategySkippedVersionFmt = "skipping %s: reports version %s, want %s"
)
