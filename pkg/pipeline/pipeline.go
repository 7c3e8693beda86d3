// Package pipeline orchestrates the layout passes into a single call:
// cycle breaking, layering, virtualization, crossing reduction,
// positioning, routing and label placement for the Sugiyama path, or the
// force-directed solver for the peer path. Either path ends in the same
// renderer-ready IR.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerflow/layout/crossing"
	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/layout/force"
	"github.com/matzehuels/layerflow/layout/label"
	"github.com/matzehuels/layerflow/layout/layer"
	"github.com/matzehuels/layerflow/layout/position"
	"github.com/matzehuels/layerflow/layout/route"
	"github.com/matzehuels/layerflow/layout/virtualize"
	"github.com/matzehuels/layerflow/pkg/cache"
	lferrors "github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/graph"
	"github.com/matzehuels/layerflow/pkg/ir"
	"github.com/matzehuels/layerflow/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and library callers
// =============================================================================

const (
	// DefaultNodeSpacing is the minimum horizontal gap between nodes
	// sharing a level, in grid cells.
	DefaultNodeSpacing = 4
	// DefaultLevelSpacing is the vertical distance between consecutive
	// layers, in grid cells.
	DefaultLevelSpacing = 3
	// DefaultMinNodeWidth floors a node's box width regardless of how
	// short its label is.
	DefaultMinNodeWidth = 6
	// DefaultNodeHeight is every node box's fixed height: one row of
	// label text plus a top and bottom border row. There are no font
	// metrics in this pipeline, so height never varies with label length.
	DefaultNodeHeight = 3
	// DefaultSeed seeds the force-directed solver's initial placement.
	DefaultSeed = int64(42)
	// DefaultForceIterations is the force solver's iteration cap absent
	// an explicit override.
	DefaultForceIterations = 200
)

// Algorithm selects the overall layout path.
type Algorithm string

const (
	// Sugiyama runs the full layered pipeline: cycle breaking through
	// label placement.
	Sugiyama Algorithm = "sugiyama"
	// ForceDirected runs Fruchterman-Reingold with exact O(n^2) repulsion.
	ForceDirected Algorithm = "fruchterman_reingold"
	// ForceDirectedFast runs Fruchterman-Reingold with Barnes-Hut
	// repulsion.
	ForceDirectedFast Algorithm = "fruchterman_reingold_fast"
)

// CycleBreaking selects whether the cycle-breaking pass runs at all.
type CycleBreaking string

const (
	// CycleBreakingNone skips cycle breaking entirely; callers that pick
	// this must guarantee their input is already acyclic, or layering
	// will treat every edge as forward and may misbehave on a cycle.
	CycleBreakingNone CycleBreaking = "none"
	// CycleBreakingDepthFirst runs the three-colour DFS feedback-edge
	// search.
	CycleBreakingDepthFirst CycleBreaking = "depth_first"
)

// Options configures a Run. The zero value is not directly usable - call
// ValidateAndSetDefaults or rely on Run to do so.
type Options struct {
	// Algorithm selects the overall layout path.
	Algorithm Algorithm

	// Layering selects the layering algorithm for the Sugiyama path.
	Layering layer.Algorithm
	// MaxSimplexIterations caps network-simplex pivoting; zero selects
	// 8 * node count.
	MaxSimplexIterations int

	// CycleBreaking selects whether cycles are broken before layering.
	CycleBreaking CycleBreaking

	// CrossingPreset selects the built-in crossing-reducer sequence.
	CrossingPreset crossing.Preset

	// Positioning selects the positioning strategy.
	Positioning position.Strategy
	// BarycentricPasses bounds barycentric nudging sweeps; zero selects 4.
	BarycentricPasses int

	// Routing selects the edge-drawing style.
	Routing route.Style
	// Tension scales spline control-point displacement; zero selects 0.5.
	Tension float64

	// Seed seeds the force-directed solver's initial placement.
	Seed int64
	// Iterations caps the force-directed solver; zero selects
	// DefaultForceIterations.
	Iterations int
	// Theta is the Barnes-Hut opening angle for the fast force-directed
	// path; zero selects 0.8.
	Theta float64

	// NodeSpacing is the minimum horizontal gap between nodes in the same
	// level (Sugiyama) or the margin around a force-directed layout.
	NodeSpacing int
	// LevelSpacing is the vertical distance between consecutive layers.
	LevelSpacing int
	// MinNodeWidth floors every node box's width.
	MinNodeWidth int

	// ShowDummyNodes and IncludeDummyNodes are renderer-facing toggles,
	// not an IR-assembly gate: dummy nodes are always present in the IR
	// (Dummy=true entries) since a router may need their positions when
	// stitching splines at render time. A renderer decides whether to
	// draw them using its own render options.
	ShowDummyNodes    bool
	IncludeDummyNodes bool
	// SkipValidation disables the post-reduction level-integrity
	// verifier. Leave false in production; only tests that deliberately
	// exercise an invalid state should set this.
	SkipValidation bool

	// Logger receives one Debug line per completed pass and one Error
	// line for a failed pass; defaults to a discard logger when nil.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults fills in every zero-valued field with its
// documented default and validates enum fields. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	switch o.Algorithm {
	case "":
		o.Algorithm = Sugiyama
	case Sugiyama, ForceDirected, ForceDirectedFast:
	default:
		return lferrors.New(lferrors.ErrCodeLayoutAlgoInvalid, "unknown algorithm %q", o.Algorithm)
	}

	switch o.Layering {
	case "":
		o.Layering = layer.LongestPath
	case layer.LongestPath, layer.NetworkSimplex:
	default:
		return lferrors.New(lferrors.ErrCodeLayoutOptionInvalid, "unknown layering %q", o.Layering)
	}

	switch o.CycleBreaking {
	case "":
		o.CycleBreaking = CycleBreakingDepthFirst
	case CycleBreakingNone, CycleBreakingDepthFirst:
	default:
		return lferrors.New(lferrors.ErrCodeLayoutOptionInvalid, "unknown cycle_breaking %q", o.CycleBreaking)
	}

	if o.CrossingPreset == "" {
		o.CrossingPreset = crossing.PresetBalanced
	}

	switch o.Positioning {
	case "":
		o.Positioning = position.Compact
	case position.Compact, position.Barycentric, position.BrandesKopf:
	default:
		return lferrors.New(lferrors.ErrCodeLayoutOptionInvalid, "unknown positioning %q", o.Positioning)
	}

	switch o.Routing {
	case "":
		o.Routing = route.StyleDirect
	case route.StyleDirect, route.StyleSpline:
	default:
		return lferrors.New(lferrors.ErrCodeLayoutOptionInvalid, "unknown routing %q", o.Routing)
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultForceIterations
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.LevelSpacing == 0 {
		o.LevelSpacing = DefaultLevelSpacing
	}
	if o.MinNodeWidth == 0 {
		o.MinNodeWidth = DefaultMinNodeWidth
	}
	if o.IncludeDummyNodes {
		o.ShowDummyNodes = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options describing a layout computed
// with these options, for callers that wrap Run with a cache.Cache.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:        string(o.Algorithm),
		CrossingPreset:   string(o.CrossingPreset),
		PositionStrategy: string(o.Positioning),
		RouteStyle:       string(o.Routing),
		Seed:             uint64(o.Seed),
	}
}

// Run executes the configured layout path over v and returns the
// renderer-ready IR, or the first error any pass returns. No partial IR
// is ever returned alongside an error.
func Run(ctx context.Context, v *graph.View, opts Options) (*ir.Graph[int], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	switch opts.Algorithm {
	case ForceDirected, ForceDirectedFast:
		return runForceDirected(ctx, v, opts)
	default:
		return runSugiyama(ctx, v, opts)
	}
}

func runPass(ctx context.Context, opts Options, name string, v *graph.View, fn func() error) error {
	observability.Pipeline().OnPassStart(ctx, name, v.NodeCount(), v.EdgeCount())
	start := time.Now()
	err := fn()
	observability.Pipeline().OnPassComplete(ctx, name, time.Since(start), err)
	if err != nil {
		opts.Logger.Error("pass failed", "pass", name, "err", err)
		return err
	}
	opts.Logger.Debug("pass complete", "pass", name, "duration", time.Since(start))
	return nil
}

func checkCanceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func runSugiyama(ctx context.Context, v *graph.View, opts Options) (*ir.Graph[int], error) {
	var cb cyclebreak.Result
	if opts.CycleBreaking == CycleBreakingDepthFirst {
		if err := runPass(ctx, opts, "cyclebreak", v, func() error {
			cb = cyclebreak.Break(v)
			return nil
		}); err != nil {
			return nil, err
		}
	} else {
		cb = cyclebreak.Result{Reversed: make([]bool, v.EdgeCount())}
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	var nodeLayers map[string]int
	if err := runPass(ctx, opts, "layer", v, func() error {
		nodeLayers = layer.Assign(v, cb, layer.Options{
			Algorithm:            opts.Layering,
			MaxSimplexIterations: opts.MaxSimplexIterations,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	var virt virtualize.Result
	if err := runPass(ctx, opts, "virtualize", v, func() error {
		virt = virtualize.Virtualize(v, cb, nodeLayers)
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	widths := nodeWidths(v, opts.MinNodeWidth)

	var levels crossing.Levels
	var segs []crossing.Segment
	if err := runPass(ctx, opts, "crossing", v, func() error {
		levels = crossing.BuildLevels(v, nodeLayers, virt)
		segs = crossing.BuildSegments(v, cb, nodeLayers, virt)
		before := cloneLevels(levels)
		crossing.Run(levels, segs, crossing.Reducers(opts.CrossingPreset))
		if !opts.SkipValidation {
			if err := crossing.Verify(before, levels); err != nil {
				return err
			}
		}
		observability.Pipeline().OnCrossingsRemaining(ctx, crossing.CountLayerCrossings(levels, segs))
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	var xs map[string]int
	if err := runPass(ctx, opts, "position", v, func() error {
		xs = position.Position(levels, segs, widths, position.Options{
			Strategy:          opts.Positioning,
			NodeSpacing:       opts.NodeSpacing,
			BarycentricPasses: opts.BarycentricPasses,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	dummyLayer := make(map[string]int, len(virt.Dummies))
	for _, d := range virt.Dummies {
		dummyLayer[d.ID] = d.Layer
	}

	geo := make(map[string]route.Geometry, len(xs))
	for id, x := range xs {
		l, ok := nodeLayers[id]
		if !ok {
			l = dummyLayer[id]
		}
		w := widths[id]
		geo[id] = route.Geometry{
			X:      x,
			Y:      l * opts.LevelSpacing,
			Width:  w,
			Height: DefaultNodeHeight,
		}
	}

	var paths []ir.EdgePath[int]
	if err := runPass(ctx, opts, "route", v, func() error {
		paths = route.Route(v, cb, virt, geo, route.Options{
			Style:       opts.Routing,
			NodeSpacing: opts.NodeSpacing,
			Tension:     opts.Tension,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	var placements []label.Placement
	var legend []label.LegendEntry
	if err := runPass(ctx, opts, "label", v, func() error {
		placements, legend = placeLabels(v, cb, geo, paths)
		return nil
	}); err != nil {
		return nil, err
	}

	return assembleIR(v, cb, nodeLayers, levels, virt, geo, paths, placements, legend, opts), nil
}

func runForceDirected(ctx context.Context, v *graph.View, opts Options) (*ir.Graph[int], error) {
	var result force.Result
	if err := runPass(ctx, opts, "force", v, func() error {
		result = force.Solve(v, force.Options{
			Seed:       opts.Seed,
			Iterations: opts.Iterations,
			Theta:      opts.Theta,
			Exact:      opts.Algorithm == ForceDirected,
			Margin:     opts.NodeSpacing,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	widths := nodeWidths(v, opts.MinNodeWidth)
	g := &ir.Graph[int]{Version: ir.CurrentVersion}

	for i, n := range v.Nodes() {
		p := result.Positions[n.ID]
		g.Nodes = append(g.Nodes, ir.Node[int]{
			ID: n.ID, Label: n.Label,
			X: int(p.X.Float()), Y: int(p.Y.Float()),
			Width: widths[n.ID], Height: DefaultNodeHeight,
			Layer: 0, Order: i,
		})
	}

	geo := make(map[string]route.Geometry, len(g.Nodes))
	for _, n := range g.Nodes {
		geo[n.ID] = route.Geometry{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
	}

	noReversal := cyclebreak.Result{Reversed: make([]bool, v.EdgeCount())}
	paths := route.Route(v, noReversal, virtualize.Result{}, geo, route.Options{Style: opts.Routing, NodeSpacing: opts.NodeSpacing})

	placements, legend := placeLabels(v, noReversal, geo, paths)
	return assembleFlatIR(v, g, paths, placements, legend, result), nil
}

// nodeWidths sizes every real node's box from its label length; there are
// no font metrics, so width is purely a character count.
func nodeWidths(v *graph.View, minWidth int) map[string]int {
	widths := make(map[string]int, v.NodeCount())
	for _, n := range v.Nodes() {
		w := len([]rune(n.Label)) + 2
		if w < minWidth {
			w = minWidth
		}
		widths[n.ID] = w
	}
	return widths
}

func cloneLevels(levels crossing.Levels) crossing.Levels {
	out := make(crossing.Levels, len(levels))
	for i, l := range levels {
		out[i] = append([]string(nil), l...)
	}
	return out
}
