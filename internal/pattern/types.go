package pattern

// Mode selects how ast-grep is invoked.
type Mode string

const (
	ModeSearch  Mode = "search"
	ModeReplace Mode = "replace"
	ModeCount   Mode = "count"
)

// ValidModes lists the declared modes accepted by the ast_grep tool.
var ValidModes = []Mode{ModeSearch, ModeReplace, ModeCount}

// SearchRequest represents an MCP ast_grep request.
// Optional fields are pointers so that "absent" and "zero" stay distinguishable.
type SearchRequest struct {
	Pattern     string  `json:"pattern" mapstructure:"pattern" jsonschema:"minLength=1"`
	Replacement *string `json:"replacement,omitempty" mapstructure:"replacement"`
	Path        *string `json:"path,omitempty" mapstructure:"path"`
	Glob        *string `json:"glob,omitempty" mapstructure:"glob"`
	Language    *string `json:"language,omitempty" mapstructure:"language"`
	Mode        *Mode   `json:"mode,omitempty" mapstructure:"mode" jsonschema:"enum=search,enum=replace,enum=count,default=search"`
	Context     *int    `json:"context,omitempty" mapstructure:"context" jsonschema:"minimum=0,maximum=20"`
	DryRun      *bool   `json:"dryRun,omitempty" mapstructure:"dryRun" jsonschema:"default=true"`
	HeadLimit   *int    `json:"headLimit,omitempty" mapstructure:"headLimit" jsonschema:"minimum=1,maximum=1000"`
}

// EffectiveMode returns the mode actually used for the invocation.
// A replacement always forces replace, whatever the declared mode says.
func (r *SearchRequest) EffectiveMode() Mode {
	if r.Replacement != nil {
		return ModeReplace
	}
	if r.Mode != nil && *r.Mode != "" {
		return *r.Mode
	}
	return ModeSearch
}

// IsDryRun reports whether a replace should only be previewed.
// Only an explicit dryRun=false makes replace destructive.
func (r *SearchRequest) IsDryRun() bool {
	return r.DryRun == nil || *r.DryRun
}

// ExecutionResult is the captured outcome of one engine invocation.
type ExecutionResult struct {
	ExitCode  int
	Stdout    string
	Stderr    string
	Truncated bool
}
