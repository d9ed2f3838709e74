package config

import (
	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors Config with durations spelled the way the loader
// reads them ("30s" rather than nanoseconds).
type yamlDocument struct {
	Engine struct {
		Binary         string `yaml:"binary"`
		Timeout        string `yaml:"timeout"`
		MaxOutputBytes int64  `yaml:"max_output_bytes"`
		ProbeCacheTTL  string `yaml:"probe_cache_ttl"`
	} `yaml:"engine"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ToYAML renders the effective configuration in config.yml form, so the
// output can be saved as .sg-mcp/config.yml and loaded back unchanged.
func (c *Config) ToYAML() ([]byte, error) {
	var doc yamlDocument
	doc.Engine.Binary = c.Engine.Binary
	doc.Engine.Timeout = c.Engine.Timeout.String()
	doc.Engine.MaxOutputBytes = c.Engine.MaxOutputBytes
	doc.Engine.ProbeCacheTTL = c.Engine.ProbeCacheTTL.String()
	doc.Workspace = c.Workspace
	doc.Log = c.Log
	doc.Metrics = c.Metrics
	if doc.Workspace.Deny == nil {
		doc.Workspace.Deny = []string{}
	}
	return yaml.Marshal(&doc)
}
