// Package route implements the sixth pass of the layout pipeline: turning
// positioned nodes and dummy chains into one drawable path per original
// edge.
package route

import (
	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/layout/virtualize"
	"github.com/matzehuels/layerflow/pkg/graph"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// Style selects the drawing style Route uses for non-side-channel,
// non-self-loop edges.
type Style string

const (
	// StyleDirect draws orthogonal straight/corner/multi-segment paths.
	StyleDirect Style = "direct"
	// StyleSpline draws cubic Bezier curves.
	StyleSpline Style = "spline"
)

const defaultTension = 0.5

// Options configures Route.
type Options struct {
	Style Style
	// NodeSpacing is reused to size the gap between the main grid and the
	// first side-channel column.
	NodeSpacing int
	// Tension scales the vertical displacement of spline control points;
	// zero selects the default of 0.5.
	Tension float64
}

// Geometry is a node's final box, already computed by the layer and
// position passes: X,Y is the top-left corner.
type Geometry struct {
	X, Y, Width, Height int
}

// Route computes one EdgePath per edge in v.Edges(), in the same order,
// threading orthogonal or spline segments through the dummy chain virt
// built for long edges, and routing reversed edges through a dedicated
// side channel to the right of the grid.
func Route(v *graph.View, cb cyclebreak.Result, virt virtualize.Result, geo map[string]Geometry, opts Options) []ir.EdgePath[int] {
	tension := opts.Tension
	if tension == 0 {
		tension = defaultTension
	}

	channelX := sideChannelBase(geo, opts.NodeSpacing)
	channelSpacing := opts.NodeSpacing
	if channelSpacing <= 0 {
		channelSpacing = 20
	}
	nextChannel := 0

	edges := v.Edges()
	paths := make([]ir.EdgePath[int], len(edges))

	for i, e := range edges {
		if e.From == e.To {
			paths[i] = selfLoopPath(geo[e.From])
			continue
		}

		if cb.IsReversed(i) {
			column := nextChannel
			nextChannel++
			paths[i] = sideChannelPath(geo[e.From], geo[e.To], channelX+column*channelSpacing, column)
			continue
		}

		chain := virt.ChainFor(i).DummyIDs
		if len(chain) == 0 {
			if opts.Style == StyleSpline {
				paths[i] = splineDirect(geo[e.From], geo[e.To], tension)
			} else {
				paths[i] = directOrCorner(geo[e.From], geo[e.To])
			}
			continue
		}

		ids := make([]string, 0, len(chain)+2)
		ids = append(ids, e.From)
		ids = append(ids, chain...)
		ids = append(ids, e.To)

		if opts.Style == StyleSpline {
			paths[i] = splineGuided(ids, geo, tension)
		} else {
			paths[i] = multiSegment(ids, geo)
		}
	}

	return paths
}

func bottomCenter(g Geometry) ir.Point[int] {
	return ir.Point[int]{X: g.X + g.Width/2, Y: g.Y + g.Height}
}

func topCenter(g Geometry) ir.Point[int] {
	return ir.Point[int]{X: g.X + g.Width/2, Y: g.Y}
}

// directOrCorner draws a single straight segment when the two nodes share
// a centre-x, or a down/across/down corner through the horizontal
// midpoint otherwise.
func directOrCorner(from, to Geometry) ir.EdgePath[int] {
	start, end := bottomCenter(from), topCenter(to)
	if start.X == end.X {
		return ir.EdgePath[int]{Kind: ir.PathDirect, Waypoints: []ir.Point[int]{start, end}}
	}

	midY := (start.Y + end.Y) / 2
	return ir.EdgePath[int]{
		Kind: ir.PathCorner,
		Waypoints: []ir.Point[int]{
			start,
			{X: start.X, Y: midY},
			{X: end.X, Y: midY},
			end,
		},
	}
}

// multiSegment builds an orthogonal path from source down through every
// dummy node's centre at its own level-y, across to align, finally down
// into the target - one bend per dummy on the chain.
func multiSegment(ids []string, geo map[string]Geometry) ir.EdgePath[int] {
	waypoints := make([]ir.Point[int], 0, len(ids)*2)
	waypoints = append(waypoints, bottomCenter(geo[ids[0]]))

	for i := 1; i < len(ids)-1; i++ {
		g := geo[ids[i]]
		center := ir.Point[int]{X: g.X + g.Width/2, Y: g.Y + g.Height/2}
		last := waypoints[len(waypoints)-1]
		if last.X != center.X {
			waypoints = append(waypoints, ir.Point[int]{X: center.X, Y: last.Y})
		}
		waypoints = append(waypoints, center)
	}

	end := topCenter(geo[ids[len(ids)-1]])
	last := waypoints[len(waypoints)-1]
	if last.X != end.X {
		waypoints = append(waypoints, ir.Point[int]{X: end.X, Y: last.Y})
	}
	waypoints = append(waypoints, end)

	return ir.EdgePath[int]{Kind: ir.PathMultiSegment, Waypoints: waypoints}
}

// sideChannelBase returns the x position just to the right of the widest
// drawn node, where the first side channel starts.
func sideChannelBase(geo map[string]Geometry, nodeSpacing int) int {
	max := 0
	for _, g := range geo {
		if right := g.X + g.Width; right > max {
			max = right
		}
	}
	margin := nodeSpacing
	if margin <= 0 {
		margin = 20
	}
	return max + margin
}

// sideChannelPath routes a reversed edge straight down (or up) a dedicated
// vertical column well clear of the main grid.
func sideChannelPath(from, to Geometry, channelX, column int) ir.EdgePath[int] {
	start := ir.Point[int]{X: from.X + from.Width, Y: from.Y + from.Height/2}
	end := ir.Point[int]{X: to.X + to.Width, Y: to.Y + to.Height/2}
	return ir.EdgePath[int]{
		Kind: ir.PathSideChannel,
		Waypoints: []ir.Point[int]{
			start,
			{X: channelX, Y: start.Y},
			{X: channelX, Y: end.Y},
			end,
		},
		Column: column,
	}
}

const selfLoopExtent = 24

// selfLoopPath draws a small rectangular loop out to the right of the
// node and back, the degenerate path renderers special-case for
// self-referencing edges.
func selfLoopPath(g Geometry) ir.EdgePath[int] {
	top := g.Y + g.Height/3
	bottom := g.Y + 2*g.Height/3
	right := g.X + g.Width
	out := right + selfLoopExtent

	return ir.EdgePath[int]{
		Kind: ir.PathMultiSegment,
		Waypoints: []ir.Point[int]{
			{X: right, Y: top},
			{X: out, Y: top},
			{X: out, Y: bottom},
			{X: right, Y: bottom},
		},
	}
}
