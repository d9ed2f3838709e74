package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// formatError swaps the global color.NoColor, so these tests stay serial.
func TestFormatError_PlainError(t *testing.T) {
	out := formatError(errors.New("boom"), true)
	assert.Equal(t, "Error: boom\n", out)
}

func TestFormatError_PipelineErrorShowsKind(t *testing.T) {
	err := &pattern.Error{Kind: pattern.KindTimeout, Message: "ast-grep timed out after 1s"}
	out := formatError(err, true)

	assert.Contains(t, out, "Error: ast-grep timed out after 1s\n")
	assert.Contains(t, out, "Kind:  Timeout\n")
	assert.NotContains(t, out, "Fix:")
}

func TestFormatError_EngineUnavailableShowsFix(t *testing.T) {
	err := &pattern.Error{
		Kind:    pattern.KindInternal,
		Message: "ast-grep is not available",
		Err:     fmt.Errorf("%w: not found", pattern.ErrEngineUnavailable),
	}
	out := formatError(err, true)

	assert.Contains(t, out, "Kind:  InternalError\n")
	assert.Contains(t, out, "Fix:   "+pattern.InstallHint)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitOK, exitCode(nil))
	assert.Equal(t, ExitFailure, exitCode(errors.New("x")))
	assert.Equal(t, ExitInvalidParams, exitCode(&pattern.Error{Kind: pattern.KindInvalidParams}))
	assert.Equal(t, ExitFailure, exitCode(&pattern.Error{Kind: pattern.KindInternal}))
	assert.Equal(t, ExitInvalidParams, exitCode(fmt.Errorf("wrapped: %w", &pattern.Error{Kind: pattern.KindInvalidParams})))
}
