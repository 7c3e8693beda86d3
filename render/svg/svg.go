// Package svg renders an IR graph as a standalone SVG document: one <rect>
// per node, one <path> per routed edge, and <text> elements for node and
// edge labels.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/layerflow/pkg/ir"
)

// Option configures a Render call.
type Option func(*svgRenderer)

type svgRenderer struct {
	cellSize   float64
	showDummy  bool
	nodeFill   string
	edgeStroke string
}

func newSVGRenderer(opts ...Option) svgRenderer {
	r := svgRenderer{cellSize: 1, nodeFill: "#e8e8e8", edgeStroke: "#333333"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithCellSize scales every IR coordinate by size pixels per cell. The IR
// is in abstract cells; this is the renderer-side pixel multiplier the
// spec leaves to each renderer to apply.
func WithCellSize(size float64) Option { return func(r *svgRenderer) { r.cellSize = size } }

// WithDummyNodes draws dummy nodes as small circles instead of omitting
// them entirely.
func WithDummyNodes() Option { return func(r *svgRenderer) { r.showDummy = true } }

// WithNodeFill overrides the default node box fill color.
func WithNodeFill(color string) Option { return func(r *svgRenderer) { r.nodeFill = color } }

// WithEdgeStroke overrides the default edge line color.
func WithEdgeStroke(color string) Option { return func(r *svgRenderer) { r.edgeStroke = color } }

// Render draws g as a complete SVG document.
func Render(g ir.Graph[float64], opts ...Option) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	width, height := (g.Width+2)*r.cellSize, (g.Height+2)*r.cellSize
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	renderDefs(&buf, r)

	for _, e := range g.Edges {
		renderEdge(&buf, e, r)
	}
	for _, n := range g.Nodes {
		if n.Dummy {
			if r.showDummy {
				renderDummy(&buf, n, r)
			}
			continue
		}
		renderNode(&buf, n, r)
	}
	for _, e := range g.Edges {
		if e.Label == nil || e.Label.InLegend {
			continue
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="10" fill="#000000">%s</text>`+"\n",
			e.Label.Point.X*r.cellSize, e.Label.Point.Y*r.cellSize, escape(e.Label.Text))
	}

	if len(g.Legend) > 0 {
		y := height - float64(len(g.Legend))*12 - 4
		for _, l := range g.Legend {
			fmt.Fprintf(&buf, `  <text x="4" y="%.1f" font-size="10" fill="#555555">%s</text>`+"\n", y, escape(l))
			y += 12
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, r svgRenderer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrow" markerWidth="8" markerHeight="8" refX="6" refY="3" orient="auto">
      <path d="M0,0 L6,3 L0,6 Z" fill="%s"/>
    </marker>
  </defs>`+"\n", r.edgeStroke)
}

func renderNode(buf *bytes.Buffer, n ir.Node[float64], r svgRenderer) {
	x, y := n.X*r.cellSize, n.Y*r.cellSize
	w, h := n.Width*r.cellSize, n.Height*r.cellSize
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000" rx="2"/>`+"\n",
		x, y, w, h, r.nodeFill)
	if n.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x+w/2, y+h/2, escape(n.Label))
	}
}

func renderDummy(buf *bytes.Buffer, n ir.Node[float64], r svgRenderer) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="2" fill="#999999"/>`+"\n", n.X*r.cellSize, n.Y*r.cellSize)
}

func renderEdge(buf *bytes.Buffer, e ir.Edge[float64], r svgRenderer) {
	if len(e.Path.Waypoints) == 0 {
		return
	}
	d := pathData(e.Path, r.cellSize)
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="1" marker-end="url(#arrow)"/>`+"\n", d, r.edgeStroke)
}

func pathData(p ir.EdgePath[float64], cellSize float64) string {
	var b bytes.Buffer
	// PathSpline is always a single cubic Bezier: two waypoints (start,
	// end) and exactly two control points.
	if p.Kind == ir.PathSpline && len(p.Waypoints) == 2 && len(p.Controls) == 2 {
		start, end := p.Waypoints[0], p.Waypoints[1]
		cp1, cp2 := p.Controls[0], p.Controls[1]
		fmt.Fprintf(&b, "M %.1f %.1f C %.1f %.1f %.1f %.1f %.1f %.1f",
			start.X*cellSize, start.Y*cellSize,
			cp1.X*cellSize, cp1.Y*cellSize, cp2.X*cellSize, cp2.Y*cellSize,
			end.X*cellSize, end.Y*cellSize)
		return b.String()
	}

	fmt.Fprintf(&b, "M %.1f %.1f", p.Waypoints[0].X*cellSize, p.Waypoints[0].Y*cellSize)
	for _, w := range p.Waypoints[1:] {
		fmt.Fprintf(&b, " L %.1f %.1f", w.X*cellSize, w.Y*cellSize)
	}
	return b.String()
}

func escape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
