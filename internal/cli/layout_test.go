package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/layerflow/pkg/ir"
)

func sampleIR() ir.Graph[int] {
	return ir.Graph[int]{
		Version: ir.CurrentVersion,
		Width:   10,
		Height:  4,
		Nodes: []ir.Node[int]{
			{ID: "a", Label: "A", X: 0, Y: 0, Width: 3, Height: 3, Layer: 0, Order: 0},
			{ID: "b", Label: "B", X: 6, Y: 0, Width: 3, Height: 3, Layer: 1, Order: 0},
		},
		Edges: []ir.Edge[int]{
			{From: "a", To: "b", Path: ir.EdgePath[int]{Kind: ir.PathDirect, Waypoints: []ir.Point[int]{{X: 3, Y: 1}, {X: 6, Y: 1}}}},
		},
	}
}

func TestRenderDispatchesByFormat(t *testing.T) {
	g := sampleIR()
	for _, format := range []string{"json", "unicode", "svg", "dot"} {
		out, err := render(g, layoutOpts{format: format, cellSize: 1})
		if err != nil {
			t.Fatalf("render(%q): %v", format, err)
		}
		if len(out) == 0 {
			t.Errorf("render(%q) produced no output", format)
		}
	}
}

func TestRenderUnknownFormatErrors(t *testing.T) {
	_, err := render(sampleIR(), layoutOpts{format: "pdf"})
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error should mention the unsupported format, got: %v", err)
	}
}
