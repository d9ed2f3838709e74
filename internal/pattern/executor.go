package pattern

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultExecutionTimeout is the maximum time allowed for one ast-grep run.
	DefaultExecutionTimeout = 30 * time.Second

	// DefaultMaxOutputBytes caps stdout and stderr combined.
	DefaultMaxOutputBytes int64 = 10 * 1024 * 1024
)

// Executor runs the engine binary with a prepared argv.
// A non-zero exit is not an error at this level; it is reported in
// ExecutionResult.ExitCode and interpreted by the caller.
type Executor interface {
	Execute(ctx context.Context, args []string, dir string) (*ExecutionResult, error)
}

// ProcessExecutor runs ast-grep as a child process.
type ProcessExecutor struct {
	Binary         string
	Timeout        time.Duration // zero disables the timeout
	MaxOutputBytes int64
}

// NewProcessExecutor creates an executor with default timeout and output ceiling.
func NewProcessExecutor(binary string) *ProcessExecutor {
	return &ProcessExecutor{
		Binary:         binary,
		Timeout:        DefaultExecutionTimeout,
		MaxOutputBytes: DefaultMaxOutputBytes,
	}
}

// Execute starts the binary with no stdin, waits for it to exit and returns
// what it printed. Output past MaxOutputBytes is dropped and flagged.
//
// Errors:
// - Timeout: the run exceeded Timeout and the child was killed
// - InternalError: the process could not be started or the context was canceled
func (e *ProcessExecutor) Execute(ctx context.Context, args []string, dir string) (*ExecutionResult, error) {
	execCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	limit := e.MaxOutputBytes
	if limit <= 0 {
		limit = DefaultMaxOutputBytes
	}
	sink := &outputSink{remaining: limit}
	stdout := &sinkWriter{sink: sink}
	stderr := &sinkWriter{sink: sink}

	cmd := exec.CommandContext(execCtx, e.Binary, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()

	if err != nil {
		if ctx.Err() != nil {
			return nil, internalError(ctx.Err(), "ast-grep call canceled: %v", ctx.Err())
		}
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			return nil, &Error{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("ast-grep timed out after %s", e.Timeout),
				Err:     execCtx.Err(),
			}
		}

		var exitErr *exec.ExitError
		exited := errors.As(err, &exitErr) || (errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil)
		if !exited {
			return nil, internalError(err, "failed to start ast-grep: %v", err)
		}
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	return &ExecutionResult{
		ExitCode:  cmd.ProcessState.ExitCode(),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: sink.truncated,
	}, nil
}

// outputSink is the byte budget shared by stdout and stderr.
type outputSink struct {
	mu        sync.Mutex
	remaining int64
	truncated bool
}

// sinkWriter buffers one stream against the shared budget. It always reports
// a full write so the child never sees EPIPE or blocks on a full pipe.
type sinkWriter struct {
	sink *outputSink
	buf  bytes.Buffer
	cut  bool // this stream hit the budget mid-write
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()

	n := int64(len(p))
	if n > w.sink.remaining {
		w.sink.truncated = true
		w.cut = w.cut || w.sink.remaining > 0
		n = w.sink.remaining
	}
	if n > 0 {
		w.buf.Write(p[:n])
		w.sink.remaining -= n
	}
	return len(p), nil
}

// String returns the captured text. A stream cut by the budget is trimmed
// back to its last complete UTF-8 sequence.
func (w *sinkWriter) String() string {
	s := w.buf.String()
	if !w.cut {
		return s
	}
	return trimPartialRune(s)
}

func trimPartialRune(s string) string {
	for i := 1; i <= utf8.UTFMax && i <= len(s); i++ {
		tail := s[len(s)-i:]
		if utf8.RuneStart(tail[0]) {
			if !utf8.FullRuneInString(tail) {
				return s[:len(s)-i]
			}
			return s
		}
	}
	return s
}
