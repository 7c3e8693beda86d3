package pipeline

import (
	"fmt"

	"github.com/matzehuels/layerflow/layout/crossing"
	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/layout/force"
	"github.com/matzehuels/layerflow/layout/label"
	"github.com/matzehuels/layerflow/layout/route"
	"github.com/matzehuels/layerflow/layout/virtualize"
	"github.com/matzehuels/layerflow/pkg/graph"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// placeLabels builds one label.EdgeLabel per labelled edge from its routed
// path and hands them to label.Place over a buffer large enough to cover
// every drawn node and waypoint.
func placeLabels(v *graph.View, cb cyclebreak.Result, geo map[string]route.Geometry, paths []ir.EdgePath[int]) ([]label.Placement, []label.LegendEntry) {
	maxX, maxY := bounds(geo, paths)
	buf := label.NewBuffer(maxX+2, maxY+2)

	edges := v.Edges()
	labels := make([]label.EdgeLabel, 0, len(edges))
	for i, e := range edges {
		if e.Label == "" {
			continue
		}
		p := paths[i]
		el := label.EdgeLabel{EdgeIndex: i, FromID: e.From, ToID: e.To, Text: e.Label}

		switch {
		case e.From == e.To:
			el.SelfLoop = true
			el.LoopGlyphX = p.Waypoints[1].X
			el.LoopGlyphY = p.Waypoints[1].Y
		case cb.IsReversed(i):
			el.Reversed = true
			el.ChannelX = p.Waypoints[1].X
			el.FromY = p.Waypoints[0].Y
			el.ToY = p.Waypoints[len(p.Waypoints)-1].Y
			el.MidY = (el.FromY + el.ToY) / 2
		default:
			first, last := p.Waypoints[0], p.Waypoints[len(p.Waypoints)-1]
			el.MidX = (first.X + last.X) / 2
			el.FromY = first.Y
			el.ToY = last.Y
			el.MidY = (first.Y + last.Y) / 2
		}
		labels = append(labels, el)
	}

	return label.Place(buf, labels)
}

func bounds(geo map[string]route.Geometry, paths []ir.EdgePath[int]) (maxX, maxY int) {
	for _, g := range geo {
		if r := g.X + g.Width; r > maxX {
			maxX = r
		}
		if b := g.Y + g.Height; b > maxY {
			maxY = b
		}
	}
	for _, p := range paths {
		for _, w := range p.Waypoints {
			if w.X > maxX {
				maxX = w.X
			}
			if w.Y > maxY {
				maxY = w.Y
			}
		}
	}
	return maxX, maxY
}

// assembleIR assembles the final Sugiyama-path IR from every pass's
// output: node boxes, routed paths, and label placements (on-edge or
// bumped to the legend).
func assembleIR(
	v *graph.View,
	cb cyclebreak.Result,
	nodeLayers map[string]int,
	levels crossing.Levels,
	virt virtualize.Result,
	geo map[string]route.Geometry,
	paths []ir.EdgePath[int],
	placements []label.Placement,
	legend []label.LegendEntry,
	opts Options,
) *ir.Graph[int] {
	g := &ir.Graph[int]{Version: ir.CurrentVersion}

	orderOf := make(map[string]int)
	for _, lvl := range levels {
		for i, id := range lvl {
			orderOf[id] = i
		}
	}

	for _, n := range v.Nodes() {
		gm := geo[n.ID]
		g.Nodes = append(g.Nodes, ir.Node[int]{
			ID: n.ID, Label: n.Label,
			X: gm.X, Y: gm.Y, Width: gm.Width, Height: gm.Height,
			Layer: nodeLayers[n.ID], Order: orderOf[n.ID],
		})
	}

	// Dummy nodes stay in the IR regardless of opts.ShowDummyNodes: the
	// router may need their positions when stitching splines at render
	// time. ShowDummyNodes/IncludeDummyNodes are render-time hints a
	// renderer reads off its own options to decide whether to draw them,
	// not a pipeline-assembly gate.
	for _, d := range virt.Dummies {
		gm := geo[d.ID]
		g.Nodes = append(g.Nodes, ir.Node[int]{
			ID: d.ID, X: gm.X, Y: gm.Y, Width: gm.Width, Height: gm.Height,
			Layer: d.Layer, Order: orderOf[d.ID], Dummy: true, EdgeIndex: d.EdgeIndex,
		})
	}

	labelByEdge := make(map[int]label.Placement, len(placements))
	for _, p := range placements {
		labelByEdge[p.EdgeIndex] = p
	}

	edges := v.Edges()
	for i, e := range edges {
		ed := ir.Edge[int]{From: e.From, To: e.To, Reversed: cb.IsReversed(i), Path: paths[i]}
		if p, ok := labelByEdge[i]; ok {
			ed.Label = &ir.LabelPlacement[int]{Text: p.Text, Point: ir.Point[int]{X: p.X, Y: p.Y}}
		}
		g.Edges = append(g.Edges, ed)
	}

	for _, e := range legend {
		g.Legend = append(g.Legend, fmt.Sprintf("%s -> %s: %s", e.FromID, e.ToID, e.Text))
	}

	maxX, maxY := bounds(geo, paths)
	g.Width, g.Height = maxX, maxY

	// Attach legend-ref indices to edges whose label was bumped, in the
	// same order legend entries were appended.
	legendIndex := make(map[string]int, len(legend))
	for i, e := range legend {
		legendIndex[e.FromID+"\x00"+e.ToID+"\x00"+e.Text] = i
	}
	for i, e := range edges {
		if e.Label == "" || g.Edges[i].Label != nil {
			continue
		}
		if idx, ok := legendIndex[e.From+"\x00"+e.To+"\x00"+e.Label]; ok {
			g.Edges[i].Label = &ir.LabelPlacement[int]{Text: e.Label, InLegend: true, LegendRef: idx}
		}
	}

	return g
}

// assembleFlatIR assembles the force-directed path's single-level IR.
func assembleFlatIR(v *graph.View, g *ir.Graph[int], paths []ir.EdgePath[int], placements []label.Placement, legend []label.LegendEntry, result force.Result) *ir.Graph[int] {
	labelByEdge := make(map[int]label.Placement, len(placements))
	for _, p := range placements {
		labelByEdge[p.EdgeIndex] = p
	}

	edges := v.Edges()
	noReversal := cyclebreak.Result{Reversed: make([]bool, len(edges))}
	for i, e := range edges {
		ed := ir.Edge[int]{From: e.From, To: e.To, Reversed: noReversal.IsReversed(i), Path: paths[i]}
		if p, ok := labelByEdge[i]; ok {
			ed.Label = &ir.LabelPlacement[int]{Text: p.Text, Point: ir.Point[int]{X: p.X, Y: p.Y}}
		}
		g.Edges = append(g.Edges, ed)
	}

	legendIndex := make(map[string]int, len(legend))
	for i, e := range legend {
		legendIndex[e.FromID+"\x00"+e.ToID+"\x00"+e.Text] = i
		g.Legend = append(g.Legend, fmt.Sprintf("%s -> %s: %s", e.FromID, e.ToID, e.Text))
	}
	for i, e := range edges {
		if e.Label == "" || g.Edges[i].Label != nil {
			continue
		}
		if idx, ok := legendIndex[e.From+"\x00"+e.To+"\x00"+e.Label]; ok {
			g.Edges[i].Label = &ir.LabelPlacement[int]{Text: e.Label, InLegend: true, LegendRef: idx}
		}
	}

	g.Width, g.Height = result.Width, result.Height
	return g
}
