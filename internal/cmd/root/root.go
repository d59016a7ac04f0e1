// Package root provides the root command for the bbfmt CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/cmd/completion"
	"github.com/open-cli-collective/bbfmt/internal/cmd/configcmd"
	"github.com/open-cli-collective/bbfmt/internal/cmd/formatcmd"
	"github.com/open-cli-collective/bbfmt/internal/cmd/formatters"
	initcmd "github.com/open-cli-collective/bbfmt/internal/cmd/init"
	"github.com/open-cli-collective/bbfmt/internal/cmd/inspect"
	"github.com/open-cli-collective/bbfmt/internal/cmd/serve"
	"github.com/open-cli-collective/bbfmt/internal/version"
)

// NewCmdRoot creates the root command for bbfmt.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbfmt",
		Short: "Format the code blocks of forum posts",
		Long: `bbfmt formats [code] blocks in bracket-tag markup posts.

Each [code=lang] block is run through the formatter registered for its
language; everything else in the post is left exactly as written.
Posts can be formatted locally or through a bbfmt server.

Get started by running: bbfmt init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/bbfmt/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate("bbfmt version " + version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(formatcmd.NewCmdFormat())
	cmd.AddCommand(inspect.NewCmdInspect())
	cmd.AddCommand(serve.NewCmdServe())
	cmd.AddCommand(formatters.NewCmdFormatters())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
