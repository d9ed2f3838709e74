package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

func TestToToolError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, toToolError(nil))

	cases := []struct {
		err  error
		code int
	}{
		{&pattern.Error{Kind: pattern.KindInvalidParams, Message: "bad"}, mcp.INVALID_PARAMS},
		{pattern.NewMethodNotFound("nope"), mcp.METHOD_NOT_FOUND},
		{&pattern.Error{Kind: pattern.KindInternal, Message: "bad"}, mcp.INTERNAL_ERROR},
		{&pattern.Error{Kind: pattern.KindTimeout, Message: "bad"}, mcp.INTERNAL_ERROR},
		{fmt.Errorf("wrapped: %w", &pattern.Error{Kind: pattern.KindInvalidParams, Message: "inner"}), mcp.INVALID_PARAMS},
		{errors.New("plain"), mcp.INTERNAL_ERROR},
	}
	for _, c := range cases {
		te := toToolError(c.err)
		assert.Equal(t, c.code, te.Code, c.err.Error())
		assert.ErrorIs(t, te, c.err)
	}

	typed := &ToolError{Code: mcp.PARSE_ERROR, Message: "raw"}
	assert.Same(t, typed, toToolError(typed))
}
