package pattern

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The MCP layer maps each kind to a
// protocol error code; nothing below the façade knows about the transport.
type Kind string

const (
	KindInvalidParams  Kind = "InvalidParams"
	KindMethodNotFound Kind = "MethodNotFound"
	KindInternal       Kind = "InternalError"
	KindTimeout        Kind = "Timeout"
)

// ErrEngineUnavailable is wrapped by every availability probe failure.
var ErrEngineUnavailable = errors.New("ast-grep is not available")

// Error is the single typed failure any pipeline stage may return.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: KindTimeout}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func invalidParams(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParams, Message: fmt.Sprintf(format, args...)}
}

func internalError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewMethodNotFound reports a call to a tool name that is not registered.
func NewMethodNotFound(name string) *Error {
	return &Error{Kind: KindMethodNotFound, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// KindOf returns the kind of a pipeline error. Anything that is not an
// *Error counts as an internal failure.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}
