package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyBinary indicates a missing engine binary name
	ErrEmptyBinary = errors.New("empty engine binary")

	// ErrInvalidTimeout indicates a negative engine timeout
	ErrInvalidTimeout = errors.New("invalid engine timeout")

	// ErrInvalidOutputLimit indicates a non-positive output ceiling
	ErrInvalidOutputLimit = errors.New("invalid max output bytes")

	// ErrInvalidCacheTTL indicates a negative probe cache TTL
	ErrInvalidCacheTTL = errors.New("invalid probe cache ttl")

	// ErrInvalidDenyPattern indicates a workspace deny rule that does not compile
	ErrInvalidDenyPattern = errors.New("invalid deny pattern")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateEngine(&cfg.Engine); err != nil {
		errs = append(errs, err)
	}

	if err := validateWorkspace(&cfg.Workspace); err != nil {
		errs = append(errs, err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateEngine(cfg *EngineConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Binary) == "" {
		errs = append(errs, ErrEmptyBinary)
	}

	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %s", ErrInvalidTimeout, cfg.Timeout))
	}

	if cfg.MaxOutputBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be > 0, got %d", ErrInvalidOutputLimit, cfg.MaxOutputBytes))
	}

	if cfg.ProbeCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %s", ErrInvalidCacheTTL, cfg.ProbeCacheTTL))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateWorkspace(cfg *WorkspaceConfig) error {
	var errs []error

	for _, p := range cfg.Deny {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidDenyPattern, p, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLog(cfg *LogConfig) error {
	level := strings.ToLower(cfg.Level)
	if level == "" {
		return nil
	}
	for _, v := range validLogLevels {
		if level == v {
			return nil
		}
	}
	return fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidLogLevel, strings.Join(validLogLevels, ", "), cfg.Level)
}

// validationErrors reports every problem at once and stays matchable with
// errors.Is / errors.As for each of them.
type validationErrors []error

func (e validationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e validationErrors) Unwrap() []error {
	return e
}

func joinErrors(errs []error) error {
	var flat validationErrors
	for _, err := range errs {
		if nested, ok := err.(validationErrors); ok {
			flat = append(flat, nested...)
			continue
		}
		flat = append(flat, err)
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	return flat
}
