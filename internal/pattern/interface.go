package pattern

import "context"

// Searcher runs one ast_grep request end to end and returns the formatted text.
//
// This interface enables:
// - Dependency injection for testing (mock implementations)
// - MCP tool integration without concrete type dependencies
//
// Every failure is a *Error whose Kind the caller maps to its own error surface.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (string, error)
}
