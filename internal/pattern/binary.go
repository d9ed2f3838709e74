package pattern

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maypok86/otter"
)

// InstallHint tells the user how to get the engine onto PATH.
const InstallHint = "install ast-grep with `npm install -g @ast-grep/cli`, `brew install ast-grep` or `cargo install ast-grep --locked`"

// Prober checks that the engine binary can be run before it is used.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}

// VersionProber runs `ast-grep --version`. Successful results can optionally
// be remembered for a TTL; failures are never cached.
type VersionProber struct {
	exec  Executor
	key   string
	cache *otter.Cache[string, string]
}

// NewVersionProber creates a prober that runs the version check through exec.
// A positive ttl caches successful probes for that long.
func NewVersionProber(exec Executor, binary string, ttl time.Duration) (*VersionProber, error) {
	p := &VersionProber{exec: exec, key: binary}
	if ttl > 0 {
		cache, err := otter.MustBuilder[string, string](16).WithTTL(ttl).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build probe cache: %w", err)
		}
		p.cache = &cache
	}
	return p, nil
}

// Probe returns the engine version string, or an InternalError naming the
// install remedy when the binary is missing or broken.
func (p *VersionProber) Probe(ctx context.Context) (string, error) {
	if p.cache != nil {
		if version, ok := p.cache.Get(p.key); ok {
			return version, nil
		}
	}

	version, err := p.probe(ctx)
	if err != nil {
		return "", &Error{
			Kind:    KindInternal,
			Message: fmt.Sprintf("ast-grep is not available (%v); %s", err, InstallHint),
			Err:     fmt.Errorf("%w: %w", ErrEngineUnavailable, err),
		}
	}

	if p.cache != nil {
		p.cache.Set(p.key, version)
	}
	return version, nil
}

func (p *VersionProber) probe(ctx context.Context) (string, error) {
	res, err := p.exec.Execute(ctx, []string{flagVersion}, "")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("version check exited with code %d", res.ExitCode)
	}

	// Expected format: "ast-grep 0.39.6"
	out := strings.TrimSpace(res.Stdout)
	if !strings.Contains(out, "ast-grep") {
		return "", fmt.Errorf("unexpected version output: %q", out)
	}
	return out, nil
}

// Close releases the probe cache.
func (p *VersionProber) Close() {
	if p.cache != nil {
		p.cache.Close()
	}
}
