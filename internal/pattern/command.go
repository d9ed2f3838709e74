package pattern

import "strconv"

// ast-grep run flags.
const (
	flagPattern   = "-p"
	flagRewrite   = "-r"
	flagUpdateAll = "--update-all"
	flagGlobs     = "--globs"
	flagLang      = "-l"
	flagContext   = "-C"
	flagMaxCount  = "--max-count"
	flagCount     = "-c"
	flagVersion   = "--version"
)

// BuildCommand constructs the argv for an ast-grep invocation.
// The result is passed to exec directly and is never joined into a shell
// string, so pattern and replacement need no quoting.
// The request must already have passed validation.
func BuildCommand(req *SearchRequest) []string {
	mode := req.EffectiveMode()

	args := []string{flagPattern, req.Pattern}
	// A replace without a rewrite template never reaches the engine, so the
	// destructive flag is tied to the template itself.
	if mode == ModeReplace && req.Replacement != nil {
		args = append(args, flagRewrite, *req.Replacement)
		// Without --update-all ast-grep only prints the diff.
		if !req.IsDryRun() {
			args = append(args, flagUpdateAll)
		}
	}

	if req.Glob != nil {
		args = append(args, flagGlobs, *req.Glob)
	}
	if req.Language != nil {
		args = append(args, flagLang, *req.Language)
	}
	if req.Context != nil {
		args = append(args, flagContext, strconv.Itoa(*req.Context))
	}
	if req.HeadLimit != nil {
		args = append(args, flagMaxCount, strconv.Itoa(*req.HeadLimit))
	}
	if mode == ModeCount {
		args = append(args, flagCount)
	}

	if req.Path != nil {
		args = append(args, *req.Path)
	}

	return args
}
