package unicode

import (
	"strings"
	"testing"

	"github.com/matzehuels/layerflow/pkg/ir"
)

func twoNodeGraph() ir.Graph[int] {
	return ir.Graph[int]{
		Version: ir.CurrentVersion,
		Width:   10, Height: 8,
		Nodes: []ir.Node[int]{
			{ID: "a", Label: "a", X: 0, Y: 0, Width: 6, Height: 3},
			{ID: "b", Label: "b", X: 0, Y: 5, Width: 6, Height: 3},
		},
		Edges: []ir.Edge[int]{
			{From: "a", To: "b", Path: ir.EdgePath[int]{Kind: ir.PathDirect, Waypoints: []ir.Point[int]{{X: 2, Y: 2}, {X: 2, Y: 5}}}},
		},
	}
}

func TestRenderDrawsNodeBoxesAndEdge(t *testing.T) {
	out, err := Render(twoNodeGraph())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┐") {
		t.Errorf("expected box-drawing corners in output:\n%s", out)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("expected node labels in output:\n%s", out)
	}
	if !strings.Contains(out, "│") {
		t.Errorf("expected a vertical edge glyph in output:\n%s", out)
	}
}

func TestRenderAppendsLegend(t *testing.T) {
	g := twoNodeGraph()
	g.Legend = []string{"a -> b: overflow label"}
	out, err := Render(g)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "legend:") || !strings.Contains(out, "overflow label") {
		t.Errorf("expected legend section in output:\n%s", out)
	}
}

func TestRenderHidesDummyNodesByDefault(t *testing.T) {
	g := twoNodeGraph()
	g.Nodes = append(g.Nodes, ir.Node[int]{ID: "dummy-0", X: 2, Y: 3, Dummy: true})
	out, err := Render(g)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "*") {
		t.Errorf("dummy nodes should not draw a glyph by default:\n%s", out)
	}
}

func TestRenderShowDummyNodesOption(t *testing.T) {
	g := twoNodeGraph()
	g.Nodes = append(g.Nodes, ir.Node[int]{ID: "dummy-0", X: 8, Y: 6, Dummy: true})
	out, err := Render(g, WithDummyNodes())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "*") {
		t.Errorf("expected dummy glyph with WithDummyNodes:\n%s", out)
	}
}

func TestRenderRejectsOversizedGrid(t *testing.T) {
	g := ir.Graph[int]{Version: ir.CurrentVersion, Width: 200000, Height: 200000}
	if _, err := Render(g); err == nil {
		t.Fatal("expected an error for an oversized grid")
	}
}

func TestRenderSelfLoopDoesNotPanic(t *testing.T) {
	g := ir.Graph[int]{
		Version: ir.CurrentVersion,
		Width:   10, Height: 5,
		Nodes: []ir.Node[int]{{ID: "a", Label: "a", X: 0, Y: 0, Width: 6, Height: 3}},
		Edges: []ir.Edge[int]{
			{From: "a", To: "a", Reversed: true, Path: ir.EdgePath[int]{Kind: ir.PathCorner, Waypoints: []ir.Point[int]{{X: 7, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 2}, {X: 7, Y: 2}}}},
		},
	}
	if _, err := Render(g); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
