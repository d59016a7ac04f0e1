package formatter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownFormatter normalizes markdown in-process by rendering it to HTML
// and converting the HTML back to markdown.
type MarkdownFormatter struct {
	md goldmark.Markdown
}

// NewMarkdownFormatter creates a markdown formatter with GFM tables enabled.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Name returns the formatter name.
func (f *MarkdownFormatter) Name() string {
	return "markdown"
}

// Languages returns the languages handled in-process.
func (f *MarkdownFormatter) Languages() []string {
	return []string{"markdown", "md"}
}

// Format normalizes src. Surrounding blank lines are dropped and a single
// trailing newline is kept if src had one.
func (f *MarkdownFormatter) Format(ctx context.Context, _ string, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(src) == "" {
		return src, nil
	}

	var buf bytes.Buffer
	if err := f.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	out, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert html to markdown: %w", err)
	}

	out = strings.TrimSpace(out)
	if strings.HasSuffix(src, "\n") {
		out += "\n"
	}
	return out, nil
}
