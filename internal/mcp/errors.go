package mcp

import (
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// ToolError is a protocol-level failure: a JSON-RPC error code plus message.
type ToolError struct {
	Code    int
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// toToolError normalizes any failure into a ToolError. ToolErrors pass
// through unchanged; anything unrecognized becomes an internal error.
func toToolError(err error) *ToolError {
	if err == nil {
		return nil
	}

	var te *ToolError
	if errors.As(err, &te) {
		return te
	}

	var pe *pattern.Error
	if !errors.As(err, &pe) {
		return &ToolError{Code: mcp.INTERNAL_ERROR, Message: err.Error(), Err: err}
	}

	code := mcp.INTERNAL_ERROR
	switch pe.Kind {
	case pattern.KindInvalidParams:
		code = mcp.INVALID_PARAMS
	case pattern.KindMethodNotFound:
		code = mcp.METHOD_NOT_FOUND
	}
	return &ToolError{Code: code, Message: pe.Message, Err: err}
}
