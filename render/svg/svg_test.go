package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/layerflow/pkg/ir"
)

func sampleGraph() ir.Graph[float64] {
	return ir.Graph[float64]{
		Version: ir.CurrentVersion,
		Width:   10, Height: 8,
		Nodes: []ir.Node[float64]{
			{ID: "a", Label: "a", X: 0, Y: 0, Width: 6, Height: 3},
			{ID: "b", Label: "b", X: 0, Y: 5, Width: 6, Height: 3},
		},
		Edges: []ir.Edge[float64]{
			{From: "a", To: "b", Path: ir.EdgePath[float64]{Kind: ir.PathDirect, Waypoints: []ir.Point[float64]{{X: 3, Y: 3}, {X: 3, Y: 5}}}},
		},
	}
}

func TestRenderProducesValidSVGDocument(t *testing.T) {
	out := string(Render(sampleGraph()))
	if !strings.HasPrefix(out, "<svg") {
		t.Fatalf("expected document to start with <svg, got: %s", out[:20])
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("expected a closing </svg> tag")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("expected at least one node rect")
	}
	if !strings.Contains(out, "<path") {
		t.Error("expected at least one edge path")
	}
}

func TestRenderEscapesLabelText(t *testing.T) {
	g := sampleGraph()
	g.Nodes[0].Label = `<script>&"x"`
	out := string(Render(g))
	if strings.Contains(out, "<script>") {
		t.Errorf("expected label to be escaped, got: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag in output: %s", out)
	}
}

func TestRenderWithCellSizeScalesCoordinates(t *testing.T) {
	small := string(Render(sampleGraph(), WithCellSize(1)))
	large := string(Render(sampleGraph(), WithCellSize(10)))
	if len(large) < len(small) {
		t.Errorf("expected larger cell size to produce a longer document")
	}
}

func TestRenderHidesDummyNodesByDefault(t *testing.T) {
	g := sampleGraph()
	g.Nodes = append(g.Nodes, ir.Node[float64]{ID: "dummy-0", X: 3, Y: 4, Dummy: true})
	out := string(Render(g))
	if strings.Contains(out, "<circle") {
		t.Error("dummy nodes should not render a circle by default")
	}
}

func TestRenderShowDummyNodesOption(t *testing.T) {
	g := sampleGraph()
	g.Nodes = append(g.Nodes, ir.Node[float64]{ID: "dummy-0", X: 3, Y: 4, Dummy: true})
	out := string(Render(g, WithDummyNodes()))
	if !strings.Contains(out, "<circle") {
		t.Error("expected a circle for the dummy node with WithDummyNodes")
	}
}

func TestRenderSplinePath(t *testing.T) {
	g := sampleGraph()
	g.Edges[0].Path = ir.EdgePath[float64]{
		Kind:      ir.PathSpline,
		Waypoints: []ir.Point[float64]{{X: 3, Y: 3}, {X: 3, Y: 5}},
		Controls:  []ir.Point[float64]{{X: 3, Y: 3.5}, {X: 3, Y: 4.5}},
	}
	out := string(Render(g))
	if !strings.Contains(out, " C ") {
		t.Errorf("expected a cubic Bezier path command, got: %s", out)
	}
}

func TestRenderAppendsLegendText(t *testing.T) {
	g := sampleGraph()
	g.Legend = []string{"a -> b: overflow"}
	out := string(Render(g))
	if !strings.Contains(out, "overflow") {
		t.Error("expected legend text in output")
	}
}
