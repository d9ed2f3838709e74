package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/sg-mcp/internal/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sg-mcp",
	Short: "sg-mcp - structural code search and rewrite over MCP",
	Long: `sg-mcp exposes the ast-grep CLI as a single MCP tool named ast_grep.

Coding assistants send a structural pattern, optionally with a rewrite, and
receive ast-grep's matches, diffs or per-file counts as text.

Run "sg-mcp serve" from your MCP client configuration, or "sg-mcp run" to
try a pattern from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err, noColor))
		os.Exit(exitCode(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sg-mcp/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored error output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig reads .sg-mcp/config.yml from the working directory, or the
// file named by --config, with SG_MCP_* overrides applied.
func loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	if cfgFile != "" {
		return config.NewFileLoader(wd, cfgFile).Load()
	}
	return config.NewLoader(wd).Load()
}
