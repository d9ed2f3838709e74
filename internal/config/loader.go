package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching rootDir/.sg-mcp. A missing explicit file is an error.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SG_MCP_*)
// 2. Config file (.sg-mcp/config.yml or .sg-mcp/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".sg-mcp"))
	}

	// Enable environment variable overrides, e.g. SG_MCP_ENGINE_BINARY
	v.SetEnvPrefix("SG_MCP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("engine.binary")
	v.BindEnv("engine.timeout")
	v.BindEnv("engine.max_output_bytes")
	v.BindEnv("engine.probe_cache_ttl")
	v.BindEnv("workspace.root")
	v.BindEnv("workspace.deny")
	v.BindEnv("log.level")
	v.BindEnv("log.file")
	v.BindEnv("metrics.addr")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Resolve the workspace root against the directory we were started in
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = l.rootDir
	} else if !filepath.IsAbs(cfg.Workspace.Root) {
		cfg.Workspace.Root = filepath.Join(l.rootDir, cfg.Workspace.Root)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("engine.binary", defaults.Engine.Binary)
	v.SetDefault("engine.timeout", defaults.Engine.Timeout)
	v.SetDefault("engine.max_output_bytes", defaults.Engine.MaxOutputBytes)
	v.SetDefault("engine.probe_cache_ttl", defaults.Engine.ProbeCacheTTL)

	v.SetDefault("workspace.root", defaults.Workspace.Root)
	v.SetDefault("workspace.deny", defaults.Workspace.Deny)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetDefault("metrics.addr", defaults.Metrics.Addr)
}
