package cyclebreak

import (
	"testing"

	"github.com/matzehuels/layerflow/pkg/graph"
)

func buildView(t *testing.T, nodes []string, edges [][2]string) *graph.View {
	t.Helper()
	b := graph.NewBuilder()
	for _, id := range nodes {
		if err := b.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := b.AddEdge(graph.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s,%s): %v", e[0], e[1], err)
		}
	}
	v, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return v
}

func TestBreakNoCycle(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	r := Break(v)
	for i, rev := range r.Reversed {
		if rev {
			t.Errorf("edge %d unexpectedly marked reversed in acyclic graph", i)
		}
	}
}

func TestBreakSimpleCycle(t *testing.T) {
	v := buildView(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	r := Break(v)

	count := 0
	for _, rev := range r.Reversed {
		if rev {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 reversed edge for a 3-cycle, got %d", count)
	}
}

func TestBreakSelfLoop(t *testing.T) {
	v := buildView(t, []string{"a"}, [][2]string{{"a", "a"}})
	r := Break(v)
	if !r.IsReversed(0) {
		t.Error("self-loop should be marked reversed")
	}
}

func TestBreakPreservesEdgeEndpoints(t *testing.T) {
	v := buildView(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	r := Break(v)

	edges := v.Edges()
	reversedCount := 0
	for i, e := range edges {
		if r.IsReversed(i) {
			reversedCount++
		}
		// endpoints must be untouched regardless of reversal
		if e.From == "" || e.To == "" {
			t.Fatalf("edge %d has empty endpoint", i)
		}
	}
	if reversedCount != 1 {
		t.Errorf("expected exactly 1 reversed edge in a 2-cycle, got %d", reversedCount)
	}
}

func TestIsReversedOutOfRange(t *testing.T) {
	r := Result{Reversed: []bool{true}}
	if r.IsReversed(-1) || r.IsReversed(5) {
		t.Error("IsReversed should return false for out-of-range indices")
	}
}
