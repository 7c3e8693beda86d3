// Package unicode renders an IR graph as a Unicode box-drawing grid for
// terminals: every node becomes a bracketed box, every routed edge a run
// of line-drawing glyphs through its waypoints, and labels are written
// either inline or collected into a trailing legend.
package unicode

import (
	"strings"

	"github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// MaxCells bounds the total buffer size this renderer will allocate,
// matching the pipeline's own 100M-cell (~400MB) exhaustion cap.
const MaxCells = 100_000_000

// Option configures a Render call.
type Option func(*renderer)

type renderer struct {
	showDummies bool
}

// WithDummyNodes draws dummy nodes as a single glyph at their waypoint
// instead of leaving the cell to the edge line passing through it.
func WithDummyNodes() Option { return func(r *renderer) { r.showDummies = true } }

type grid struct {
	width, height int
	cells         [][]rune
}

func newGrid(width, height int) (*grid, error) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if int64(width)*int64(height) > MaxCells {
		return nil, errors.New(errors.ErrCodeRenderTooLarge, "grid of %dx%d exceeds the %d cell cap", width, height, MaxCells)
	}
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &grid{width: width, height: height, cells: cells}, nil
}

func (g *grid) inBounds(x, y int) bool { return x >= 0 && x < g.width && y >= 0 && y < g.height }

func (g *grid) set(x, y int, r rune) {
	if g.inBounds(x, y) {
		g.cells[y][x] = r
	}
}

// setIfBlank only draws over a blank cell, so node boxes always win over a
// crossing edge line drawn first or after.
func (g *grid) setIfBlank(x, y int, r rune) {
	if g.inBounds(x, y) && g.cells[y][x] == ' ' {
		g.cells[y][x] = r
	}
}

func (g *grid) writeString(x, y int, s string) {
	for i, r := range s {
		g.set(x+i, y, r)
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws g onto a Unicode grid sized to its Width/Height and returns
// the text.
func Render(g ir.Graph[int], opts ...Option) (string, error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	grd, err := newGrid(g.Width+2, g.Height+2)
	if err != nil {
		return "", err
	}

	// Edges first, via setIfBlank: node boxes are then drawn on top with
	// set, so a line that happens to cross under a box never punches
	// through its border.
	for _, e := range g.Edges {
		drawPath(grd, e.Path)
	}

	for _, n := range g.Nodes {
		if n.Dummy {
			if r.showDummies {
				grd.set(n.X, n.Y, '*')
			}
			continue
		}
		drawNode(grd, n)
	}

	for _, e := range g.Edges {
		if e.Label == nil || e.Label.InLegend {
			continue
		}
		grd.writeString(e.Label.Point.X, e.Label.Point.Y, "\""+e.Label.Text+"\"")
	}

	out := grd.String()
	if len(g.Legend) > 0 {
		var b strings.Builder
		b.WriteString(out)
		b.WriteString("\nlegend:\n")
		for _, l := range g.Legend {
			b.WriteString("  ")
			b.WriteString(l)
			b.WriteByte('\n')
		}
		out = b.String()
	}
	return out, nil
}

func drawNode(g *grid, n ir.Node[int]) {
	x0, y0, w, h := n.X, n.Y, n.Width, n.Height
	if w < 2 {
		w = 2
	}
	if h < 1 {
		h = 1
	}
	g.set(x0, y0, '┌')
	g.set(x0+w-1, y0, '┐')
	g.set(x0, y0+h-1, '└')
	g.set(x0+w-1, y0+h-1, '┘')
	for x := x0 + 1; x < x0+w-1; x++ {
		g.set(x, y0, '─')
		g.set(x, y0+h-1, '─')
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		g.set(x0, y, '│')
		g.set(x0+w-1, y, '│')
	}
	label := n.Label
	maxLabel := w - 2
	if maxLabel > 0 && len([]rune(label)) > maxLabel {
		label = string([]rune(label)[:maxLabel])
	}
	midY := y0 + h/2
	g.writeString(x0+1, midY, label)
}

func drawPath(g *grid, p ir.EdgePath[int]) {
	if p.Kind == ir.PathSpline {
		drawSpline(g, p)
		return
	}
	for i := 0; i+1 < len(p.Waypoints); i++ {
		drawSegment(g, p.Waypoints[i].X, p.Waypoints[i].Y, p.Waypoints[i+1].X, p.Waypoints[i+1].Y)
	}
}

// drawSegment draws a single orthogonal leg (horizontal or vertical) using
// the box-drawing line glyph that matches its direction.
func drawSegment(g *grid, x0, y0, x1, y1 int) {
	switch {
	case y0 == y1:
		lo, hi := x0, x1
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			g.setIfBlank(x, y0, '─')
		}
	case x0 == x1:
		lo, hi := y0, y1
		if lo > hi {
			lo, hi = hi, lo
		}
		for y := lo; y <= hi; y++ {
			g.setIfBlank(x0, y, '│')
		}
	default:
		// Neither axis-aligned (shouldn't occur for orthogonal routing,
		// but a stray diagonal is drawn as its two axis-aligned legs
		// rather than silently dropped).
		drawSegment(g, x0, y0, x1, y0)
		drawSegment(g, x1, y0, x1, y1)
	}
}

// drawSpline approximates a cubic Bezier with a handful of sampled points
// connected by straight legs, since the grid has no curved glyphs.
func drawSpline(g *grid, p ir.EdgePath[int]) {
	const samples = 12
	for i := 0; i+1 < len(p.Waypoints); i++ {
		p0 := p.Waypoints[i]
		p3 := p.Waypoints[i+1]
		p1, p2 := p0, p3
		if i < len(p.Controls) {
			p1 = p.Controls[i]
		}
		if i+1 < len(p.Controls) {
			p2 = p.Controls[i+1]
		}
		prevX, prevY := p0.X, p0.Y
		for s := 1; s <= samples; s++ {
			t := float64(s) / float64(samples)
			x, y := bezierPoint(p0, p1, p2, p3, t)
			drawSegment(g, prevX, prevY, x, y)
			prevX, prevY = x, y
		}
	}
}

func bezierPoint(p0, p1, p2, p3 ir.Point[int], t float64) (int, int) {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	x := a*float64(p0.X) + b*float64(p1.X) + c*float64(p2.X) + d*float64(p3.X)
	y := a*float64(p0.Y) + b*float64(p1.Y) + c*float64(p2.Y) + d*float64(p3.Y)
	return round(x), round(y)
}

func round(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
