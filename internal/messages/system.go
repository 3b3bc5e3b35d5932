package messages

// System messages for internal operations.
const (
	// ProcExecutableNotFoundFmt indicates the command's executable is absent.
	ProcExecutableNotFoundFmt = "executable %q not found"
	ProcEmptyArgv             = "empty command"
	ProcStartFailedFmt        = "start %s: %w"

	// ResolveUnknownStrategyFmt indicates an unrecognized strategy name.
	ResolveUnknownStrategyFmt  = "unknown strategy %q (valid: %s)"
	ResolveNoStrategies        = "no strategies configured"
	ResolveInstallFailedFmt    = "install csharpier %s: %w"
	ResolveVersionProbeFmt     = "probe %s --version: %v"
	ResolveDockerUnavailable   = "docker is not installed"
	ResolveDotnetUnavailable   = "dotnet is not installed"
	ResolveBinaryUnavailable   = "no csharpier binary on the search path"
	ResolveImageTagKeptWarnFmt = "image %s already carries a tag; keeping it instead of :%s"
	ResolveInstallingFmt       = "installing csharpier %s via dotnet tool install"

	// DockerInspectSelfFailed indicates the running container was not visible.
	DockerInspectSelfFailed = "could not inspect own container; using unmapped path"
	DockerNoContainerID     = "failed to find the container id in /proc/1/cgroup"
	DockerReadCgroupFmt     = "read %s: %w"

	// ConfigInvalidTOMLFmt formats config file parse errors.
	ConfigInvalidTOMLFmt          = "invalid %s: %w"
	ConfigUnrecognizedKeysFmt     = "unrecognized keys in %s: %w"
	ConfigInvalidInstallPolicyFmt = "invalid install policy %q (valid: never, on-version, always)"
	ConfigInvalidEnvFileFmt       = "invalid env file %s: %w"

	// GitrootStartPathRequired indicates start path is required for root resolution.
	GitrootStartPathRequired = "start path is required"
	GitrootResolvePathFmt    = "resolve path %s: %w"
	GitrootCheckPathFmt      = "check %s: %w"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"
)
