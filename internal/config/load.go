package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/gpsgate/csharpier-hook/internal/envfile"
	"github.com/gpsgate/csharpier-hook/internal/messages"
)

// FileName is the optional per-repository config file.
const FileName = ".csharpier-hook.toml"

// EnvFileName is the optional per-repository env file. Its values fill in
// environment variables that are not already set in the process.
const EnvFileName = ".csharpier-hook.env"

// fileConfig mirrors the keys of .csharpier-hook.toml.
type fileConfig struct {
	Version       string   `toml:"version"`
	Strategies    []string `toml:"strategies"`
	InstallPolicy string   `toml:"install-policy"`
	DockerImage   string   `toml:"docker-image"`
}

// Load builds the Config for a repository root. repoRoot may be empty when
// no enclosing git repository was found; file lookups are skipped then.
// Precedence: environment, then flags, then the repo config file, then
// built-in defaults.
func Load(repoRoot string, flags Flags) (*Config, error) {
	fileEnv, err := loadEnvFile(repoRoot)
	if err != nil {
		return nil, err
	}
	getenv := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	file, err := loadFile(repoRoot)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Strategies:    DefaultStrategies,
		InstallPolicy: InstallOnVersion,
		DockerImage:   DefaultDockerImage,
		Quiet:         flags.Quiet,
	}

	cfg.Version = firstNonEmpty(getenv(EnvVersion), flags.Version, file.Version)

	switch {
	case getenv(EnvStrategies) != "":
		cfg.Strategies = SplitStrategies(getenv(EnvStrategies))
	case flags.Strategies != "":
		cfg.Strategies = SplitStrategies(flags.Strategies)
	case len(file.Strategies) > 0:
		cfg.Strategies = file.Strategies
	}

	if raw := firstNonEmpty(getenv(EnvInstall), flags.InstallPolicy, file.InstallPolicy); raw != "" {
		policy, err := ParseInstallPolicy(raw)
		if err != nil {
			return nil, err
		}
		cfg.InstallPolicy = policy
	}

	if image := firstNonEmpty(getenv(EnvDockerImage), flags.DockerImage, file.DockerImage); image != "" {
		cfg.DockerImage = image
	}

	cfg.Verbosity = debugLevel(getenv(EnvDebug))
	if cfg.Verbosity == 0 {
		cfg.Verbosity = flags.Verbosity
	}

	return cfg, nil
}

// debugLevel maps the legacy debug variable onto a verbosity level:
// unset is silent, "2" also dumps the environment, any other value logs
// each command.
func debugLevel(raw string) int {
	switch strings.TrimSpace(raw) {
	case "":
		return 0
	case "2":
		return 2
	default:
		return 1
	}
}

// loadFile reads and strictly decodes the repo config file when present.
func loadFile(repoRoot string) (fileConfig, error) {
	var cfg fileConfig
	if repoRoot == "" {
		return cfg, nil
	}
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf(messages.ConfigInvalidTOMLFmt, path, err)
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fileConfig{}, fmt.Errorf(messages.ConfigUnrecognizedKeysFmt, path, err)
		}
		return fileConfig{}, fmt.Errorf(messages.ConfigInvalidTOMLFmt, path, err)
	}
	return cfg, nil
}

// loadEnvFile reads the repo env file when present, restricted to the
// hook's variable namespace.
func loadEnvFile(repoRoot string) (map[string]string, error) {
	if repoRoot == "" {
		return nil, nil
	}
	path := filepath.Join(repoRoot, EnvFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	env, err := envfile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	filtered := make(map[string]string, len(env))
	for key, value := range env {
		if strings.HasPrefix(key, EnvPrefix) {
			filtered[key] = value
		}
	}
	return filtered, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
