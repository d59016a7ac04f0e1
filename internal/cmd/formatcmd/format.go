// Package formatcmd provides the format command.
package formatcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/api"
	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
	"github.com/open-cli-collective/bbfmt/internal/process"
)

// ErrWouldReformat is returned by --check when the input is not formatted.
var ErrWouldReformat = errors.New("input is not formatted")

type formatOptions struct {
	write   bool
	check   bool
	remote  bool
	noColor bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewCmdFormat creates the format command.
func NewCmdFormat() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format the code blocks of a post",
		Long: `Format every [code] block of a post with the formatter registered for its
language. Text outside code blocks is written back byte for byte.

The post is read from the file argument or from stdin.`,
		Example: `  # Format a post to stdout
  bbfmt format post.txt

  # Rewrite the file in place
  bbfmt format --write post.txt

  # Fail when formatting would change anything
  bbfmt format --check post.txt

  # Use a running bbfmt server
  cat post.txt | bbfmt format --remote`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts.noColor = cmdutil.OutputFlags(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runFormat(cmd.Context(), path, cfg, opts, nil)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Rewrite the file in place")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Exit non-zero if formatting would change the input")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Format with the server at remote_url")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runFormat(ctx context.Context, path string, cfg *config.Config, opts *formatOptions, client *api.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.write && opts.check {
		return errors.New("--write and --check cannot be used together")
	}
	if opts.write && path == "" {
		return errors.New("--write requires a file argument")
	}

	r, err := cmdutil.NewRenderer("", opts.noColor, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	input, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}

	var (
		out   string
		stats *process.Stats
	)
	if opts.remote {
		if client == nil {
			if err := cfg.ValidateRemote(); err != nil {
				return fmt.Errorf("invalid config: %w (run 'bbfmt init' to configure)", err)
			}
			client = api.NewClient(cfg.RemoteURL, cfg.APIKey)
		}
		out, err = client.Format(ctx, input)
		if err != nil {
			return fmt.Errorf("remote formatting failed: %w", err)
		}
	} else {
		var s process.Stats
		out, s = cmdutil.NewProcessor(cfg, opts.stderr).ProcessWithStats(ctx, input)
		stats = &s
	}

	name := path
	if name == "" {
		name = "<stdin>"
	}
	changed := out != input

	switch {
	case opts.check:
		if changed {
			r.Error(fmt.Sprintf("%s would be reformatted", name))
			return ErrWouldReformat
		}
		r.Success(fmt.Sprintf("%s is formatted", name))
	case opts.write:
		if changed {
			if err := writeFile(path, out); err != nil {
				return err
			}
			r.Success(fmt.Sprintf("Formatted %s%s", name, summary(stats)))
		} else {
			r.Success(fmt.Sprintf("%s unchanged%s", name, summary(stats)))
		}
	default:
		if _, err := io.WriteString(opts.stdout, out); err != nil {
			return err
		}
	}

	if stats != nil && stats.Failed > 0 {
		r.Warning(fmt.Sprintf("%d of %d code blocks failed to format", stats.Failed, stats.Blocks()))
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// writeFile replaces path, keeping its permissions.
func writeFile(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func summary(stats *process.Stats) string {
	if stats == nil {
		return ""
	}
	return fmt.Sprintf(" (%d formatted, %d unchanged, %d skipped, %d failed)",
		stats.Formatted, stats.Unchanged, stats.Skipped, stats.Failed)
}
