package configcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/api"
	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured remote server",
		Long:  `Test that the server at remote_url is reachable and accepts the configured API key.`,
		Example: `  # Test connection
  bbfmt config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, noColor := cmdutil.OutputFlags(cmd)
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), cfg, noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runTest(ctx context.Context, cfg *config.Config, noColor bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if noColor {
		color.NoColor = true
	}

	if err := cfg.ValidateRemote(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'bbfmt init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(w, "Testing connection to %s...\n", cfg.RemoteURL)

	if err := cmdutil.CheckRemote(ctx, api.NewClient(cfg.RemoteURL, cfg.APIKey)); err != nil {
		_, _ = red.Fprintln(w, "✗", err)
		fmt.Fprintln(w, "\nCheck your settings with: bbfmt config show")
		fmt.Fprintln(w, "Reconfigure with: bbfmt init")
		return err
	}

	_, _ = green.Fprintln(w, "✓ Server reachable")
	_, _ = green.Fprintln(w, "✓ API key accepted")

	return nil
}
