package config

import (
	"time"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// Config represents the complete sg-mcp configuration.
// It can be loaded from .sg-mcp/config.yml with environment variable overrides.
type Config struct {
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}

// EngineConfig configures how the ast-grep binary is run.
type EngineConfig struct {
	Binary         string        `yaml:"binary" mapstructure:"binary"`                     // name on PATH or absolute path
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`                   // 0 disables the timeout
	MaxOutputBytes int64         `yaml:"max_output_bytes" mapstructure:"max_output_bytes"` // stdout+stderr ceiling
	ProbeCacheTTL  time.Duration `yaml:"probe_cache_ttl" mapstructure:"probe_cache_ttl"`   // 0 probes on every call
}

// WorkspaceConfig defines where searches run and which paths are off limits.
type WorkspaceConfig struct {
	Root string   `yaml:"root" mapstructure:"root"` // base for relative paths, defaults to the working directory
	Deny []string `yaml:"deny" mapstructure:"deny"` // glob patterns relative to root
}

// LogConfig configures the stderr/file logger.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	File  string `yaml:"file" mapstructure:"file"`   // empty logs to stderr
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"` // e.g. "127.0.0.1:9464"; empty disables
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Binary:         "ast-grep",
			Timeout:        pattern.DefaultExecutionTimeout,
			MaxOutputBytes: pattern.DefaultMaxOutputBytes,
			ProbeCacheTTL:  0,
		},
		Workspace: WorkspaceConfig{
			Root: "", // Empty means the directory the server was started in
			Deny: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
