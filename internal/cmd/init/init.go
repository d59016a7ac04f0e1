// Package init provides the init command for bbfmt.
package init

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/api"
	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
)

const apiKeyBytes = 32

type initOptions struct {
	listenAddr string
	remoteURL  string
	noVerify   bool
	configPath string
	stdout     io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bbfmt configuration",
		Long: `Initialize bbfmt with the settings for the formatting server and client.

This command asks for the address bbfmt serve listens on, the API key that
clients must send, and optionally the URL of a remote bbfmt server used by
bbfmt format --remote. Leave the API key empty to generate a random one.
The configuration is saved to ~/.config/bbfmt/config.yml.`,
		Example: `  # Interactive setup
  bbfmt init

  # Pre-populate the remote server
  bbfmt init --remote-url https://fmt.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runInit(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.listenAddr, "listen-addr", "", "Address for bbfmt serve (e.g., :8080)")
	cmd.Flags().StringVar(&opts.remoteURL, "remote-url", "", "URL of a remote bbfmt server")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip remote server verification")

	return cmd
}

func runInit(ctx context.Context, opts *initOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.stdout
	if out == nil {
		out = os.Stdout
	}

	// Check if config already exists
	if _, err := os.Stat(opts.configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", opts.configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		ListenAddr: opts.listenAddr,
		RemoteURL:  opts.remoteURL,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = config.DefaultListenAddr
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Description("Address bbfmt serve listens on").
				Placeholder(config.DefaultListenAddr).
				Value(&cfg.ListenAddr),

			huh.NewInput().
				Title("API Key").
				Description("Key clients send as ?api_key=. Leave empty to generate one").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIKey),

			huh.NewInput().
				Title("Remote server (optional)").
				Description("bbfmt server used by bbfmt format --remote").
				Placeholder("https://fmt.example.com").
				Value(&cfg.RemoteURL),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	generated, err := finalize(cfg)
	if err != nil {
		return err
	}

	// Verify the remote server unless skipped
	if cfg.RemoteURL != "" && !opts.noVerify {
		fmt.Fprint(out, "Verifying remote server... ")
		if err := cmdutil.CheckRemote(ctx, api.NewClient(cfg.RemoteURL, cfg.APIKey)); err != nil {
			fmt.Fprintln(out, "failed!")
			return fmt.Errorf("remote verification failed: %w", err)
		}
		fmt.Fprintln(out, "success!")
	}

	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", opts.configPath)
	if generated {
		fmt.Fprintf(out, "Generated API key: %s\n", cfg.APIKey)
	}
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  bbfmt format post.txt")
	fmt.Fprintln(out, "  bbfmt serve")

	return nil
}

// finalize fills in a generated API key when none was entered and validates
// the result. It reports whether a key was generated.
func finalize(cfg *config.Config) (bool, error) {
	generated := false
	if cfg.APIKey == "" {
		key, err := generateAPIKey()
		if err != nil {
			return false, err
		}
		cfg.APIKey = key
		generated = true
	}

	if err := cfg.Validate(); err != nil {
		return false, fmt.Errorf("invalid configuration: %w", err)
	}
	return generated, nil
}

func generateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
