package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [PATH]",
	Short: "Run one ast_grep call from the terminal",
	Long: `Run a single ast_grep call through the same validation, execution and
formatting the MCP tool uses, and print the tool's text result.

Rewrites are previews unless --apply is given.

Examples:
  sg-mcp run -p 'console.log($$$ARGS)' -l javascript src
  sg-mcp run -p 'fmt.Println($A)' -r 'log.Println($A)' -l go --apply
  sg-mcp run -p 'TODO' --mode count`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

type runFlags struct {
	pattern  string
	rewrite  string
	lang     string
	globs    string
	context  int
	maxCount int
	mode     string
	apply    bool
}

var runOpts runFlags

func init() {
	bindRunFlags(runCmd.Flags(), &runOpts)
	rootCmd.AddCommand(runCmd)
}

func bindRunFlags(f *pflag.FlagSet, opts *runFlags) {
	f.StringVarP(&opts.pattern, "pattern", "p", "", "structural pattern to match (required)")
	f.StringVarP(&opts.rewrite, "rewrite", "r", "", "replacement template; implies --mode replace")
	f.StringVarP(&opts.lang, "lang", "l", "", "language of the files to search")
	f.StringVar(&opts.globs, "globs", "", "glob filter for files to include")
	f.IntVarP(&opts.context, "context", "C", 0, "lines of context around each match (0-20)")
	f.IntVar(&opts.maxCount, "max-count", 0, "maximum number of results (1-1000)")
	f.StringVar(&opts.mode, "mode", "", "search, replace or count")
	f.BoolVar(&opts.apply, "apply", false, "write rewrites to disk instead of previewing them")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, cleanup, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx = logger.WithContext(ctx)

	p, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	req := requestFromFlags(cmd.Flags(), runOpts, args)
	return executeRun(ctx, cmd.OutOrStdout(), p.provider, req)
}

// requestFromFlags maps only the flags the user set, so unset options keep
// the tool's defaults.
func requestFromFlags(flags *pflag.FlagSet, opts runFlags, args []string) *pattern.SearchRequest {
	req := &pattern.SearchRequest{Pattern: opts.pattern}

	if flags.Changed("rewrite") {
		req.Replacement = &opts.rewrite
	}
	if flags.Changed("lang") {
		req.Language = &opts.lang
	}
	if flags.Changed("globs") {
		req.Glob = &opts.globs
	}
	if flags.Changed("context") {
		req.Context = &opts.context
	}
	if flags.Changed("max-count") {
		req.HeadLimit = &opts.maxCount
	}
	if flags.Changed("mode") {
		mode := pattern.Mode(opts.mode)
		req.Mode = &mode
	}
	if flags.Changed("apply") {
		dryRun := !opts.apply
		req.DryRun = &dryRun
	}
	if len(args) == 1 {
		req.Path = &args[0]
	}

	return req
}

func executeRun(ctx context.Context, out io.Writer, searcher pattern.Searcher, req *pattern.SearchRequest) error {
	text, err := searcher.Search(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}
