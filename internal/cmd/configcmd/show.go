package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/config"
	"github.com/open-cli-collective/bbfmt/pkg/bbcode"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective bbfmt configuration with the source of each value.`,
		Example: `  # Show current config
  bbfmt config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, noColor := cmdutil.OutputFlags(cmd)
			return runShow(cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	// source names where value came from: an env var, the file, or "-"
	source := func(value, fileValue string, envVars ...string) string {
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				return envVar
			}
		}
		if fileErr == nil && fileValue == value {
			return "config"
		}
		return "-"
	}

	printField := func(label, display, src string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if display == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, display)
		_, _ = dim.Fprintf(w, "  (source: %s)\n", src)
	}

	printField("Listen addr", cfg.ListenAddr, source(cfg.ListenAddr, fileCfg.ListenAddr, "BBFMT_LISTEN_ADDR"))
	printField("API key", maskKey(cfg.APIKey), source(cfg.APIKey, fileCfg.APIKey, "BBFMT_API_KEY", "API_KEY"))
	printField("Remote URL", cfg.RemoteURL, source(cfg.RemoteURL, fileCfg.RemoteURL, "BBFMT_REMOTE_URL"))

	depth := bbcode.DefaultMaxDepth
	if cfg.MaxDepth > 0 {
		depth = cfg.MaxDepth
	}
	formatters := "defaults"
	if n := len(cfg.Formatters); n > 0 {
		formatters = fmt.Sprintf("%d configured", n)
	}

	printField("Max body", strconv.FormatInt(cfg.BodyLimit(), 10)+" bytes", setOrDefault(cfg.MaxBodyBytes > 0))
	printField("Timeout", cfg.FormatTimeout().String(), setOrDefault(cfg.Timeout != ""))
	printField("Max depth", strconv.Itoa(depth), setOrDefault(cfg.MaxDepth > 0))
	printField("Formatters", formatters, setOrDefault(len(cfg.Formatters) > 0))

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func setOrDefault(set bool) string {
	if set {
		return "config"
	}
	return "default"
}

// maskKey hides all but the first and last four characters of a key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
