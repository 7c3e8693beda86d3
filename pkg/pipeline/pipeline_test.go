package pipeline

import (
	"context"
	"testing"

	"github.com/matzehuels/layerflow/layout/crossing"
	"github.com/matzehuels/layerflow/layout/position"
	"github.com/matzehuels/layerflow/layout/route"
	"github.com/matzehuels/layerflow/pkg/graph"
)

type testEdge struct {
	from, to, label string
}

func buildView(t *testing.T, nodes []string, edges []testEdge) *graph.View {
	t.Helper()
	b := graph.NewBuilder()
	for _, id := range nodes {
		if err := b.AddNode(graph.Node{ID: id, Label: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := b.AddEdge(graph.Edge{From: e.from, To: e.to, Label: e.label}); err != nil {
			t.Fatalf("AddEdge(%s,%s): %v", e.from, e.to, err)
		}
	}
	v, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return v
}

func TestRunSugiyamaProducesCompleteIR(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c", "d"}, []testEdge{
		{"a", "b", "edge-ab"}, {"a", "c", ""}, {"b", "d", ""}, {"c", "d", ""},
	})

	g, err := Run(context.Background(), v, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(g.Nodes) < 4 {
		t.Fatalf("expected at least 4 nodes (real), got %d", len(g.Nodes))
	}
	if len(g.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(g.Edges))
	}
	for _, n := range g.Nodes {
		if n.X < 0 || n.Y < 0 {
			t.Errorf("node %s has negative coordinate: %+v", n.ID, n)
		}
	}

	var sawLabel bool
	for _, e := range g.Edges {
		if e.From == "a" && e.To == "b" {
			if e.Label == nil || e.Label.Text != "edge-ab" {
				t.Errorf("expected edge a->b to carry its label, got %+v", e.Label)
			}
			sawLabel = true
		}
	}
	if !sawLabel {
		t.Fatal("did not find edge a->b in output")
	}
}

func TestRunSugiyamaSkipsLongestPathReordering(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c"}, []testEdge{{"a", "c"}, {"b", "c"}})
	g, err := Run(context.Background(), v, Options{Layering: "longest-path"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
}

func TestRunBreaksCycles(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c"}, []testEdge{{"a", "b", ""}, {"b", "c", ""}, {"c", "a", ""}})
	g, err := Run(context.Background(), v, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var sawReversed bool
	for _, e := range g.Edges {
		if e.Reversed {
			sawReversed = true
		}
	}
	if !sawReversed {
		t.Error("expected at least one edge marked reversed to break the cycle")
	}
}

func TestRunCycleBreakingNoneLeavesCycleIntact(t *testing.T) {
	v := buildView(t, []string{"a", "b"}, []testEdge{{"a", "b", ""}, {"b", "a", ""}})
	g, err := Run(context.Background(), v, Options{CycleBreaking: CycleBreakingNone})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, e := range g.Edges {
		if e.Reversed {
			t.Error("CycleBreakingNone should never mark an edge reversed")
		}
	}
}

func TestRunSelfLoopDoesNotPanic(t *testing.T) {
	v := buildView(t, []string{"a", "b"}, []testEdge{{"a", "a", "loop"}, {"a", "b", ""}})
	g, err := Run(context.Background(), v, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(g.Edges))
	}
}

func TestRunForceDirectedIsDeterministicForSeed(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c"}, []testEdge{{"a", "b", ""}, {"b", "c", ""}})

	g1, err := Run(context.Background(), v, Options{Algorithm: ForceDirected, Seed: 7})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	g2, err := Run(context.Background(), v, Options{Algorithm: ForceDirected, Seed: 7})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := range g1.Nodes {
		if g1.Nodes[i].X != g2.Nodes[i].X || g1.Nodes[i].Y != g2.Nodes[i].Y {
			t.Errorf("force-directed run not deterministic for node %s", g1.Nodes[i].ID)
		}
	}
	for _, n := range g1.Nodes {
		if n.Layer != 0 {
			t.Errorf("force-directed node %s should have layer 0, got %d", n.ID, n.Layer)
		}
	}
}

func TestRunForceDirectedFastPath(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c", "d"}, []testEdge{
		{"a", "b", ""}, {"b", "c", ""}, {"c", "d", ""}, {"d", "a", ""},
	})
	g, err := Run(context.Background(), v, Options{Algorithm: ForceDirectedFast, Seed: 3, Iterations: 40})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(g.Nodes))
	}
}

func TestRunInvalidAlgorithmReturnsError(t *testing.T) {
	v := buildView(t, []string{"a"}, nil)
	_, err := Run(context.Background(), v, Options{Algorithm: "bogus"})
	if err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}

func TestValidateAndSetDefaultsIsIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	opts.NodeSpacing = 99 // simulate a caller mutating post-validation
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.NodeSpacing != 99 {
		t.Errorf("second call should be a no-op, NodeSpacing changed to %d", opts.NodeSpacing)
	}
}

func TestLayoutKeyOptsReflectsFields(t *testing.T) {
	opts := Options{
		Algorithm:      Sugiyama,
		CrossingPreset: crossing.PresetQuality,
		Positioning:    position.BrandesKopf,
		Routing:        route.StyleSpline,
		Seed:           42,
	}
	k := opts.LayoutKeyOpts()
	if k.Algorithm != "sugiyama" || k.PositionStrategy != "brandes_kopf" || k.RouteStyle != "spline" || k.Seed != 42 {
		t.Errorf("unexpected key opts: %+v", k)
	}
}

func TestRunLabelFallsBackToLegendWhenCrowded(t *testing.T) {
	v := buildView(t, []string{"a", "b"}, []testEdge{{"a", "b", "this-label-is-much-longer-than-the-gap"}})
	g, err := Run(context.Background(), v, Options{NodeSpacing: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	e := g.Edges[0]
	if e.Label == nil {
		t.Fatal("expected a label placement, even if bumped to the legend")
	}
}
