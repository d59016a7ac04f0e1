package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "format", "inspect", "serve", "formatters", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_GlobalFlags(t *testing.T) {
	cmd := NewCmdRoot()
	for _, name := range []string{"config", "output", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "bbfmt version dev (commit: unknown, built: unknown)\n", buf.String())
}

func TestNewCmdRoot_FormatStdin(t *testing.T) {
	t.Setenv("BBFMT_API_KEY", "")
	t.Setenv("API_KEY", "")

	cmd := NewCmdRoot()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("[b]hi[/b] [code=unknownlang]x[/code]"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"format", "--no-color", "-c", filepath.Join(t.TempDir(), "none.yml")})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[b]hi[/b] [code=unknownlang]x[/code]", out.String())
}

func TestNewCmdRoot_InspectPlain(t *testing.T) {
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("[plain]p[/plain]"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"inspect", "-o", "plain", "--no-color", "-c", filepath.Join(t.TempDir(), "none.yml")})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0\telem\tplain\t-\t-\tfalse\tp\n", out.String())
}
