package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvp-joe/sg-mcp/internal/config"
	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// pipeline holds the assembled ast-grep stages.
type pipeline struct {
	provider *pattern.AstGrepProvider
	prober   *pattern.VersionProber
}

func (p *pipeline) Close() {
	if p.prober != nil {
		p.prober.Close()
	}
}

// buildPipeline wires validator, prober, executor and formatter from config.
// reg may be nil when metrics are not wanted.
func buildPipeline(cfg *config.Config, reg prometheus.Registerer) (*pipeline, error) {
	validator, err := pattern.NewValidator(cfg.Workspace.Root, cfg.Workspace.Deny)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	executor := pattern.NewProcessExecutor(cfg.Engine.Binary)
	executor.Timeout = cfg.Engine.Timeout
	executor.MaxOutputBytes = cfg.Engine.MaxOutputBytes

	prober, err := pattern.NewVersionProber(executor, cfg.Engine.Binary, cfg.Engine.ProbeCacheTTL)
	if err != nil {
		return nil, err
	}

	var metrics *pattern.Metrics
	if reg != nil {
		metrics, err = pattern.NewMetrics(reg)
		if err != nil {
			prober.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	provider := pattern.NewAstGrepProvider(pattern.ProviderOptions{
		Validator:      validator,
		Prober:         prober,
		Executor:       executor,
		MaxOutputBytes: cfg.Engine.MaxOutputBytes,
		Metrics:        metrics,
	})

	return &pipeline{provider: provider, prober: prober}, nil
}
