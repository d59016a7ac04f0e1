// Package formatters provides the formatters command.
package formatters

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
	"github.com/open-cli-collective/bbfmt/internal/formatter"
)

const builtin = "(built-in)"

type formattersOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
	stderr  io.Writer
}

// NewCmdFormatters creates the formatters command.
func NewCmdFormatters() *cobra.Command {
	opts := &formattersOptions{}

	cmd := &cobra.Command{
		Use:   "formatters",
		Short: "List languages and their formatters",
		Long: `List every language that has a formatter, the command that runs for it,
and whether that command is available in PATH. Code blocks in other
languages are left untouched.`,
		Example: `  # List formatters
  bbfmt formatters

  # As JSON
  bbfmt formatters -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, opts.noColor = cmdutil.OutputFlags(cmd)
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runFormatters(cfg, opts)
		},
	}

	return cmd
}

// execInfo is implemented by formatters backed by an external command.
type execInfo interface {
	CommandLine() string
	Available() bool
}

func runFormatters(cfg *config.Config, opts *formattersOptions) error {
	r, err := cmdutil.NewRenderer(opts.output, opts.noColor, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	reg := cmdutil.NewRegistry(cfg)
	headers := []string{"LANGUAGE", "FORMATTER", "COMMAND", "AVAILABLE"}
	var rows [][]string
	for _, lang := range reg.Languages() {
		f, _ := reg.Lookup(lang)
		rows = append(rows, row(lang, f))
	}

	r.RenderTable(headers, rows)
	return nil
}

func row(lang string, f formatter.Formatter) []string {
	command, available := builtin, "yes"
	if e, ok := f.(execInfo); ok {
		command = e.CommandLine()
		if !e.Available() {
			available = "no"
		}
	}
	return []string{lang, f.Name(), command, available}
}
