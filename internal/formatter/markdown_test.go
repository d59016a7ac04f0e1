package formatter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFormatter_Format(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format(context.Background(), "markdown", "Title\n=====\n\nSome   *emphasis*   here.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "emphasis")
	assert.NotContains(t, out, "=====")
	assert.True(t, len(out) > 0 && out[len(out)-1] == '\n')
}

func TestMarkdownFormatter_NoTrailingNewline(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format(context.Background(), "markdown", "# Heading")
	require.NoError(t, err)
	assert.Equal(t, "# Heading", out)
}

func TestMarkdownFormatter_Blank(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format(context.Background(), "markdown", "  \n")
	require.NoError(t, err)
	assert.Equal(t, "  \n", out)
}

func TestMarkdownFormatter_CanceledContext(t *testing.T) {
	f := NewMarkdownFormatter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Format(ctx, "markdown", "# x")
	require.Error(t, err)
}
