// Package dot converts an IR graph to Graphviz DOT, for callers that want
// Graphviz's own layout and rendering engines rather than the pipeline's
// positions - useful for visually diffing the pipeline's layout against
// Graphviz's, or for producing a PNG/PDF export via Graphviz's renderer.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes layer/order in node labels. When false, only the
	// node's display label is shown.
	Detailed bool
	// IncludeDummyNodes draws virtualizer-inserted dummy nodes as small
	// grey point shapes instead of omitting them.
	IncludeDummyNodes bool
}

// ToDOT renders g as a Graphviz DOT document. Graphviz computes its own
// layout from the graph topology; only node labels and edge direction are
// carried over; the pipeline's own coordinates are not (Graphviz would
// discard them when recomputing its layout).
func ToDOT[T ir.Coord](g ir.Graph[T], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		if n.Dummy && !opts.IncludeDummyNodes {
			continue
		}
		label := n.Label
		if n.Dummy {
			label = "·" // dummy nodes carry no caller label
		}
		if opts.Detailed {
			label = fmt.Sprintf("%s\\nlayer %d, order %d", label, n.Layer, n.Order)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if n.Dummy {
			attrs = append(attrs, "shape=point", "width=0.08", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{}
		if e.Reversed {
			attrs = append(attrs, "style=dashed")
		}
		if e.Label != nil && !e.Label.InLegend {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label.Text))
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out and renders a DOT document to SVG using Graphviz's own
// layout engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderInternal, err, "initialising graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderInternal, err, "parsing dot document")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderInternal, err, "rendering via graphviz")
	}
	return buf.Bytes(), nil
}
