// Package process formats the code blocks of a post and re-renders it.
package process

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/open-cli-collective/bbfmt/internal/formatter"
	"github.com/open-cli-collective/bbfmt/pkg/bbcode"
)

// Options configures a Processor.
type Options struct {
	Logger *log.Logger         // defaults to log.Default()
	Parse  bbcode.ParseOptions // parser limits
}

// Stats counts what happened to the code blocks of one post.
type Stats struct {
	Formatted int // formatter succeeded and changed the body
	Unchanged int // formatter succeeded without changes
	Skipped   int // no formatter for the language
	Failed    int // formatter returned an error
}

// Blocks returns the number of code blocks seen.
func (s Stats) Blocks() int {
	return s.Formatted + s.Unchanged + s.Skipped + s.Failed
}

// Processor walks parsed posts and formats [code] bodies.
type Processor struct {
	registry *formatter.Registry
	logger   *log.Logger
	parse    bbcode.ParseOptions
}

// New creates a processor using registry for formatter lookup.
func New(registry *formatter.Registry, opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		registry: registry,
		logger:   logger,
		parse:    opts.Parse,
	}
}

// Process formats every code block of text. It never fails: blocks that
// cannot be formatted keep their original body.
func (p *Processor) Process(ctx context.Context, text string) string {
	out, _ := p.ProcessWithStats(ctx, text)
	return out
}

// ProcessWithStats is Process and also reports per-block outcomes.
func (p *Processor) ProcessWithStats(ctx context.Context, text string) (string, Stats) {
	var (
		sb    strings.Builder
		stats Stats
	)
	for node := range bbcode.ParseTextWithOptions(text, p.parse) {
		sb.WriteString(p.processNode(ctx, node, &stats))
	}
	return sb.String(), stats
}

// ProcessFile reads path and formats its contents.
func (p *Processor) ProcessFile(ctx context.Context, path string) (string, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to read file: %w", err)
	}
	out, stats := p.ProcessWithStats(ctx, string(data))
	return out, stats, nil
}

func (p *Processor) processNode(ctx context.Context, node bbcode.Node, stats *Stats) string {
	if !node.IsElem() || !node.Elem.IsCode() {
		return bbcode.Export(node)
	}

	elem := node.Elem
	if elem.IsRich() {
		var sb strings.Builder
		for _, child := range elem.Children {
			sb.WriteString(p.processNode(ctx, child, stats))
		}
		body := sb.String()
		return bbcode.ExportNode(node, &body)
	}

	lang, _ := elem.Lang()
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = formatter.DefaultLang
	}

	formatted, err := p.registry.Format(ctx, lang, elem.Body)
	if err == nil && formatted == "" && strings.TrimSpace(elem.Body) != "" {
		err = fmt.Errorf("formatter returned no output for %d bytes of input", len(elem.Body))
	}
	switch {
	case errors.Is(err, formatter.ErrNotFound):
		stats.Skipped++
		return bbcode.Export(node)
	case err != nil:
		stats.Failed++
		p.logger.Printf("WARN: formatting %s block failed: %v", lang, err)
		return bbcode.Export(node)
	}

	if formatted == elem.Body {
		stats.Unchanged++
	} else {
		stats.Formatted++
	}
	return bbcode.ExportNode(node, &formatted)
}
