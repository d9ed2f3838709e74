package pattern

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AstGrepProvider implements Searcher by driving the ast-grep binary:
// validate, probe, build argv, execute, format. No stage retries.
type AstGrepProvider struct {
	validator      *Validator
	prober         Prober
	executor       Executor
	maxOutputBytes int64
	metrics        *Metrics
}

// ProviderOptions wires the pipeline stages. Metrics may be nil.
type ProviderOptions struct {
	Validator      *Validator
	Prober         Prober
	Executor       Executor
	MaxOutputBytes int64
	Metrics        *Metrics
}

// NewAstGrepProvider creates a provider from its stages.
func NewAstGrepProvider(opts ProviderOptions) *AstGrepProvider {
	maxOutput := opts.MaxOutputBytes
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutputBytes
	}
	return &AstGrepProvider{
		validator:      opts.Validator,
		prober:         opts.Prober,
		executor:       opts.Executor,
		maxOutputBytes: maxOutput,
		metrics:        opts.Metrics,
	}
}

// Search implements the Searcher interface.
func (p *AstGrepProvider) Search(ctx context.Context, req *SearchRequest) (string, error) {
	out, err := p.search(ctx, req)
	if req != nil {
		p.metrics.observeCall(req.EffectiveMode(), err)
	}
	return out, err
}

func (p *AstGrepProvider) search(ctx context.Context, req *SearchRequest) (string, error) {
	log := zerolog.Ctx(ctx)

	// 1. Validate before anything is derived from the request
	if err := p.validator.Validate(req); err != nil {
		return "", err
	}

	// 2. Make sure the engine can run at all
	version, err := p.prober.Probe(ctx)
	if err != nil {
		return "", err
	}
	log.Debug().Str("engine", version).Msg("ast-grep available")

	// 3. Resolve path and build argv
	resolved, dir := p.resolve(req)
	args := BuildCommand(resolved)

	// 4. Execute
	start := time.Now()
	res, err := p.executor.Execute(ctx, args, dir)
	took := time.Since(start)
	if err != nil {
		return "", err
	}
	p.metrics.observeEngine(took, res.Truncated)

	log.Debug().
		Strs("args", args).
		Str("dir", dir).
		Int("exit_code", res.ExitCode).
		Bool("truncated", res.Truncated).
		Dur("took", took).
		Msg("ast-grep finished")

	// Output is only interpreted after a clean exit.
	if res.ExitCode != 0 {
		return "", internalError(nil, "ast-grep exited with code %d: %s",
			res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	// 5. Format
	out := FormatOutput(res.Stdout, resolved)
	if res.Truncated {
		log.Warn().Int64("limit", p.maxOutputBytes).Msg("ast-grep output truncated")
		out += truncationNotice(p.maxOutputBytes)
	}
	return out, nil
}

// resolve returns a copy of req whose path is absolute, together with the
// working directory for the child process. The caller's request is untouched.
func (p *AstGrepProvider) resolve(req *SearchRequest) (*SearchRequest, string) {
	dir := p.validator.Root()
	if req.Path == nil {
		return req, dir
	}

	abs := p.validator.ResolvePath(*req.Path)
	resolved := *req
	resolved.Path = &abs

	// The path was checked during validation; if it vanished since, the
	// engine run reports that on its own.
	if info, err := os.Stat(abs); err == nil {
		if info.IsDir() {
			dir = abs
		} else {
			dir = filepath.Dir(abs)
		}
	}
	return &resolved, dir
}
