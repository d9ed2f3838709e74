package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the ast-grep binary can be run",
	Long: `Run the configured ast-grep binary with --version and report the result.
Exits non-zero with install instructions when the binary is missing.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	executor := pattern.NewProcessExecutor(cfg.Engine.Binary)
	executor.Timeout = cfg.Engine.Timeout

	prober, err := pattern.NewVersionProber(executor, cfg.Engine.Binary, 0)
	if err != nil {
		return err
	}
	defer prober.Close()

	return executeProbe(ctx, cmd.OutOrStdout(), prober, cfg.Engine.Binary)
}

func executeProbe(ctx context.Context, out io.Writer, prober pattern.Prober, binary string) error {
	version, err := prober.Probe(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Binary:  %s\n", binary)
	fmt.Fprintf(out, "Version: %s\n", version)
	return nil
}
