package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	mcputils "github.com/mvp-joe/sg-mcp/internal/mcp-utils"
	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// ToolName is the only capability this server exposes.
const ToolName = "ast_grep"

const toolDescription = "Structural code search and rewrite with ast-grep. " +
	"Patterns match syntax trees, not text: 'console.log($MSG)' matches every console.log call with one argument. " +
	"Use mode=count for per-file totals. Provide a replacement to rewrite matches; " +
	"changes are only previewed unless dryRun is false."

// Dispatcher routes tool calls to the search pipeline and normalizes every
// failure into a *ToolError. It has no transport dependencies.
type Dispatcher struct {
	searcher pattern.Searcher
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher backed by searcher.
func NewDispatcher(searcher pattern.Searcher, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{searcher: searcher, logger: logger}
}

// Call runs the named tool with raw (untyped) arguments.
func (d *Dispatcher) Call(ctx context.Context, name string, rawArgs any) (string, error) {
	log := d.logger.With().
		Str("request_id", uuid.NewString()).
		Str("tool", name).
		Logger()
	ctx = log.WithContext(ctx)

	start := time.Now()
	out, req, err := d.call(ctx, name, rawArgs)

	var ev *zerolog.Event
	if err != nil {
		ev = log.Warn().Str("error_kind", string(pattern.KindOf(err))).Err(err)
	} else {
		ev = log.Info()
	}
	if req != nil {
		ev = ev.Str("mode", string(req.EffectiveMode()))
	}
	ev.Dur("took", time.Since(start)).Msg("tool call")

	if err != nil {
		return "", toToolError(err)
	}
	return out, nil
}

func (d *Dispatcher) call(ctx context.Context, name string, rawArgs any) (string, *pattern.SearchRequest, error) {
	if name != ToolName {
		return "", nil, pattern.NewMethodNotFound(name)
	}

	req, err := bindRequest(rawArgs)
	if err != nil {
		return "", nil, err
	}

	out, err := d.searcher.Search(ctx, req)
	return out, req, err
}

// bindRequest converts loosely typed call arguments into a SearchRequest.
func bindRequest(rawArgs any) (*pattern.SearchRequest, error) {
	var args map[string]any
	switch v := rawArgs.(type) {
	case nil:
		args = map[string]any{}
	case map[string]any:
		args = v
	default:
		return nil, &ToolError{Code: mcp.INVALID_PARAMS, Message: "invalid arguments format: expected an object"}
	}

	var req pattern.SearchRequest
	if err := mcputils.CoerceBindArguments(argumentMap(args), &req); err != nil {
		return nil, &ToolError{Code: mcp.INVALID_PARAMS, Message: fmt.Sprintf("invalid arguments: %v", err), Err: err}
	}
	return &req, nil
}

type argumentMap map[string]any

func (m argumentMap) GetArguments() map[string]any { return m }

// NewAstGrepTool builds the ast_grep tool definition.
func NewAstGrepTool() (mcp.Tool, error) {
	schema, err := InputSchema()
	if err != nil {
		return mcp.Tool{}, err
	}

	tool := mcp.NewToolWithRawSchema(ToolName, toolDescription, schema)
	tool.Annotations = mcp.ToolAnnotation{
		Title:           "ast-grep structural search",
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(true),
		IdempotentHint:  boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
	return tool, nil
}

// AddAstGrepTool registers the ast_grep tool with an MCP server.
func AddAstGrepTool(s *server.MCPServer, d *Dispatcher) error {
	tool, err := NewAstGrepTool()
	if err != nil {
		return fmt.Errorf("failed to build %s tool: %w", ToolName, err)
	}
	s.AddTool(tool, createAstGrepHandler(d))
	return nil
}

// createAstGrepHandler adapts the dispatcher to mcp-go.
//
// InvalidParams failures are returned as tool results with isError set, so the
// calling model sees the reason and can fix its arguments. Every other failure
// is returned as an error, which mcp-go reports as a JSON-RPC error.
//
// mcp-go reports every handler error with code INTERNAL_ERROR and rejects
// unknown tool names itself before this handler runs. The exact per-kind
// codes (INVALID_PARAMS, METHOD_NOT_FOUND, INTERNAL_ERROR) are only
// guaranteed by Dispatcher.Call.
func createAstGrepHandler(d *Dispatcher) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := d.Call(ctx, request.Params.Name, request.GetRawArguments())
		if err != nil {
			var te *ToolError
			if errors.As(err, &te) && te.Code == mcp.INVALID_PARAMS {
				return mcp.NewToolResultError(te.Message), nil
			}
			return nil, err
		}
		return mcp.NewToolResultText(out), nil
	}
}

func boolPtr(b bool) *bool { return &b }
