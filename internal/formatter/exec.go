package formatter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// filePlaceholder in a command argument is replaced with FileName(lang).
const filePlaceholder = "{file}"

// Command describes an external formatter that reads stdin and writes stdout.
type Command struct {
	Name      string
	Command   string
	Args      []string
	Languages []string
}

// DefaultCommands returns the formatters used when none are configured.
func DefaultCommands() []Command {
	return []Command{
		{
			Name:      "clang-format",
			Command:   "clang-format",
			Args:      []string{"--style=file", "--assume-filename=" + filePlaceholder},
			Languages: []string{"c", "cpp", "csharp", "java", "objectivec"},
		},
		{
			Name:      "prettier",
			Command:   "prettier",
			Args:      []string{"--log-level", "silent", "--stdin-filepath", filePlaceholder},
			Languages: []string{"css", "html", "javascript", "json", "less", "scss", "yaml"},
		},
		{
			Name:      "gofmt",
			Command:   "gofmt",
			Languages: []string{"go"},
		},
		{
			Name:      "black",
			Command:   "black",
			Args:      []string{"--quiet", "-"},
			Languages: []string{"python"},
		},
	}
}

// ExecFormatter runs an external command per code block.
type ExecFormatter struct {
	cmd     Command
	timeout time.Duration
}

// NewExecFormatter creates a formatter for cmd. A zero timeout disables the limit.
func NewExecFormatter(cmd Command, timeout time.Duration) *ExecFormatter {
	if cmd.Name == "" {
		cmd.Name = cmd.Command
	}
	return &ExecFormatter{cmd: cmd, timeout: timeout}
}

// Name returns the formatter name.
func (f *ExecFormatter) Name() string {
	return f.cmd.Name
}

// Languages returns the languages handled by the command.
func (f *ExecFormatter) Languages() []string {
	return f.cmd.Languages
}

// CommandLine returns the command with its unexpanded arguments.
func (f *ExecFormatter) CommandLine() string {
	return strings.Join(append([]string{f.cmd.Command}, f.cmd.Args...), " ")
}

// Available reports whether the command can be found in PATH.
func (f *ExecFormatter) Available() bool {
	_, err := exec.LookPath(f.cmd.Command)
	return err == nil
}

// Format pipes src through the command and returns its stdout.
func (f *ExecFormatter) Format(ctx context.Context, lang, src string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := make([]string, len(f.cmd.Args))
	for i, arg := range f.cmd.Args {
		args[i] = strings.ReplaceAll(arg, filePlaceholder, FileName(lang))
	}

	cmd := exec.CommandContext(ctx, f.cmd.Command, args...)
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", f.cmd.Name, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", f.cmd.Name, err)
	}

	return stdout.String(), nil
}

// NewRegistryFromCommands builds a registry of exec formatters followed by
// the in-process markdown formatter. Commands override the markdown
// formatter when they list "markdown" explicitly.
func NewRegistryFromCommands(cmds []Command, timeout time.Duration) *Registry {
	r := NewRegistry(NewMarkdownFormatter())
	for _, c := range cmds {
		r.Register(NewExecFormatter(c, timeout))
	}
	return r
}
