// Package cmdutil holds helpers shared by the bbfmt commands.
package cmdutil

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/config"
	"github.com/open-cli-collective/bbfmt/internal/formatter"
	"github.com/open-cli-collective/bbfmt/internal/process"
	"github.com/open-cli-collective/bbfmt/internal/view"
	"github.com/open-cli-collective/bbfmt/pkg/bbcode"
)

// ConfigPath returns the --config flag value, or the default path.
func ConfigPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return config.ResolvePath(path)
}

// LoadConfig loads the config named by --config with environment overrides.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'bbfmt init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// OutputFlags returns the global --output and --no-color values.
func OutputFlags(cmd *cobra.Command) (string, bool) {
	output, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return output, noColor
}

// Commands returns the formatter commands of cfg, or the defaults when
// none are configured.
func Commands(cfg *config.Config) []formatter.Command {
	if len(cfg.Formatters) == 0 {
		return formatter.DefaultCommands()
	}
	cmds := make([]formatter.Command, 0, len(cfg.Formatters))
	for _, f := range cfg.Formatters {
		cmds = append(cmds, formatter.Command{
			Name:      f.Name,
			Command:   f.Command,
			Args:      f.Args,
			Languages: f.Languages,
		})
	}
	return cmds
}

// NewRegistry builds the formatter registry described by cfg.
func NewRegistry(cfg *config.Config) *formatter.Registry {
	return formatter.NewRegistryFromCommands(Commands(cfg), cfg.FormatTimeout())
}

// NewProcessor builds a processor for cfg that logs to w.
func NewProcessor(cfg *config.Config, w io.Writer) *process.Processor {
	return process.New(NewRegistry(cfg), process.Options{
		Logger: log.New(w, "bbfmt: ", 0),
		Parse:  bbcode.ParseOptions{MaxDepth: cfg.MaxDepth},
	})
}

// NewRenderer validates format and returns a renderer writing to out and
// status messages to errOut.
func NewRenderer(format string, noColor bool, out, errOut io.Writer) (*view.Renderer, error) {
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}
	r := view.NewRenderer(view.Format(format), noColor)
	r.SetWriter(out)
	r.SetStatusWriter(errOut)
	return r, nil
}
