package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

var fieldDescriptions = map[string]string{
	"pattern":     "ast-grep pattern with metavariables ($VAR for one node, $$$VARS for many), e.g. 'console.log($MSG)'",
	"replacement": "Rewrite template using the same metavariables. Its presence switches the call to replace mode.",
	"path":        "File or directory to search. Relative paths resolve against the workspace root (default: working directory).",
	"glob":        "Only include files matching this glob, e.g. 'src/**/*.ts'",
	"language":    "Language of the pattern. ast-grep infers it from file extensions when omitted.",
	"mode":        "search prints matches, count prints match counts per file, replace rewrites matches (also implied by replacement)",
	"context":     "Lines of context to show around each match",
	"dryRun":      "In replace mode, only preview the diff. Set false to write changes to disk.",
	"headLimit":   "Maximum number of matches to report",
}

// InputSchema returns the JSON Schema of the ast_grep tool arguments,
// reflected from pattern.SearchRequest. Unknown properties are not allowed.
func InputSchema() (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
		Anonymous:                 true,
	}
	schema := r.Reflect(&pattern.SearchRequest{})

	for name, desc := range fieldDescriptions {
		prop, ok := schema.Properties.Get(name)
		if !ok {
			return nil, fmt.Errorf("schema has no property %q", name)
		}
		prop.Description = desc
	}

	lang, _ := schema.Properties.Get("language")
	lang.Enum = make([]any, len(pattern.SupportedLanguages))
	for i, l := range pattern.SupportedLanguages {
		lang.Enum[i] = l
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	return raw, nil
}
