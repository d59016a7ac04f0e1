// Package inspect provides the inspect command.
package inspect

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbfmt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbfmt/internal/view"
	"github.com/open-cli-collective/bbfmt/pkg/bbcode"
)

const previewLen = 40

type inspectOptions struct {
	output   string
	noColor  bool
	maxDepth int
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// NewCmdInspect creates the inspect command.
func NewCmdInspect() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the parsed node tree of a post",
		Long: `Parse a post and print its nodes: text runs and [code]/[plain] elements
with their attributes. Nested content of rich [code] elements is listed
under the parent's path.`,
		Example: `  # Inspect a post
  bbfmt inspect post.txt

  # Full tree as JSON
  echo '[code=go]x[/code]' | bbfmt inspect -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, opts.noColor = cmdutil.OutputFlags(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.maxDepth = cfg.MaxDepth

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runInspect(path, opts)
		},
	}

	return cmd
}

// nodeJSON is the JSON shape of one node.
type nodeJSON struct {
	Kind     string            `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Name     string            `json:"name,omitempty"`
	Match    string            `json:"match,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Lang     string            `json:"lang,omitempty"`
	Rich     bool              `json:"rich,omitempty"`
	Closed   bool              `json:"closed,omitempty"`
	Body     string            `json:"body,omitempty"`
	Children []nodeJSON        `json:"children,omitempty"`
}

func runInspect(path string, opts *inspectOptions) error {
	r, err := cmdutil.NewRenderer(opts.output, opts.noColor, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	nodes, err := parseInput(path, opts)
	if err != nil {
		return err
	}

	if r.Format() == view.FormatJSON {
		return r.RenderJSON(toJSON(nodes))
	}

	headers := []string{"PATH", "KIND", "NAME", "LANG", "ATTRS", "RICH", "BODY"}
	var rows [][]string
	appendRows(&rows, "", nodes)
	r.RenderTable(headers, rows)
	return nil
}

func parseInput(path string, opts *inspectOptions) (bbcode.NodeList, error) {
	popts := bbcode.ParseOptions{MaxDepth: opts.maxDepth}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open file: %s: %w", path, err)
		}
		return slices.Collect(bbcode.ParseTextWithOptions(string(data), popts)), nil
	}

	stdin := opts.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return slices.Collect(bbcode.ParseTextWithOptions(string(data), popts)), nil
}

func appendRows(rows *[][]string, prefix string, nodes bbcode.NodeList) {
	for i, node := range nodes {
		p := prefix + strconv.Itoa(i)
		if node.IsText() {
			*rows = append(*rows, []string{p, node.Kind.String(), "-", "-", "-", "-", view.Preview(node.Text, previewLen)})
			continue
		}

		e := node.Elem
		lang, ok := e.Lang()
		if !ok {
			lang = "-"
		}
		attrs := e.Attrs.Match
		if attrs == "" {
			attrs = "-"
		}
		body := view.Preview(e.Body, previewLen)
		if e.IsRich() {
			body = fmt.Sprintf("(%d nodes)", len(e.Children))
		}
		*rows = append(*rows, []string{p, node.Kind.String(), e.Name, lang, attrs, strconv.FormatBool(e.IsRich()), body})

		if e.IsRich() {
			appendRows(rows, p+".", e.Children)
		}
	}
}

func toJSON(nodes bbcode.NodeList) []nodeJSON {
	out := make([]nodeJSON, 0, len(nodes))
	for _, node := range nodes {
		if node.IsText() {
			out = append(out, nodeJSON{Kind: node.Kind.String(), Text: node.Text})
			continue
		}

		e := node.Elem
		lang, _ := e.Lang()
		n := nodeJSON{
			Kind:   node.Kind.String(),
			Name:   e.Name,
			Match:  e.Attrs.Match,
			Attrs:  e.Attrs.Pairs,
			Lang:   lang,
			Rich:   e.IsRich(),
			Closed: e.Closed(),
		}
		if e.IsRich() {
			n.Children = toJSON(e.Children)
		} else {
			n.Body = e.Body
		}
		out = append(out, n)
	}
	return out
}
