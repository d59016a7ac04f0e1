// Package serve provides the serve command.
package serve

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
	"github.com/open-cli-collective/bbfmt/internal/server"
)

// NewCmdServe creates the serve command.
func NewCmdServe() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the formatting HTTP service",
		Long: `Run an HTTP service that formats posts.

Clients POST the post as the request body to /?api_key=<key> and receive
the formatted post. GET /healthz reports liveness. The API key comes from
api_key in the config file or the BBFMT_API_KEY (or API_KEY) environment
variable.`,
		Example: `  # Serve on the configured listen_addr
  bbfmt serve

  # Override the address
  BBFMT_API_KEY=secret bbfmt serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides listen_addr)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logOut io.Writer) error {
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'bbfmt init' to configure)", err)
	}

	srv := server.New(server.Options{
		Addr:         cfg.Addr(),
		APIKey:       cfg.APIKey,
		MaxBodyBytes: cfg.BodyLimit(),
		Logger:       log.New(logOut, "bbfmt: ", log.LstdFlags),
	}, cmdutil.NewProcessor(cfg, logOut))

	return srv.ListenAndServe(ctx)
}
