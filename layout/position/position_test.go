package position

import (
	"testing"

	"github.com/matzehuels/layerflow/layout/crossing"
)

func TestCompactPackLeftAligns(t *testing.T) {
	levels := crossing.Levels{{"a", "b", "c"}}
	widths := map[string]int{"a": 10, "b": 20, "c": 5}

	x := Position(levels, nil, widths, Options{Strategy: Compact, NodeSpacing: 4})
	if x["a"] != 0 {
		t.Errorf("x[a] = %d, want 0", x["a"])
	}
	if x["b"] != 14 { // 0 + 10 + 4
		t.Errorf("x[b] = %d, want 14", x["b"])
	}
	if x["c"] != 38 { // 14 + 20 + 4
		t.Errorf("x[c] = %d, want 38", x["c"])
	}
}

func TestCompactPackNoOverlap(t *testing.T) {
	levels := crossing.Levels{{"a", "b", "c", "d"}}
	widths := map[string]int{"a": 10, "b": 20, "c": 5, "d": 30}

	x := Position(levels, nil, widths, Options{Strategy: Compact, NodeSpacing: 2})
	order := levels[0]
	for i := 0; i+1 < len(order); i++ {
		left, right := order[i], order[i+1]
		if x[right] < x[left]+widths[left]+2 {
			t.Errorf("%s and %s overlap: x[%s]=%d width=%d x[%s]=%d", left, right, left, x[left], widths[left], right, x[right])
		}
	}
}

func TestBarycentricNoOverlapAndNonNegative(t *testing.T) {
	levels := crossing.Levels{
		{"a", "b"},
		{"x", "y", "z"},
	}
	segs := []crossing.Segment{
		{Top: "a", Bottom: "y"},
		{Top: "b", Bottom: "y"},
		{Top: "b", Bottom: "z"},
	}
	widths := map[string]int{"a": 10, "b": 10, "x": 8, "y": 8, "z": 8}

	x := Position(levels, segs, widths, Options{Strategy: Barycentric, NodeSpacing: 2, BarycentricPasses: 3})
	for _, level := range levels {
		for i, id := range level {
			if x[id] < 0 {
				t.Errorf("x[%s] = %d is negative", id, x[id])
			}
			if i > 0 {
				prev := level[i-1]
				if x[id] < x[prev]+widths[prev]+2 {
					t.Errorf("%s overlaps %s: %d vs %d", prev, id, x[prev], x[id])
				}
			}
		}
	}
}

func TestBrandesKopfNonNegativeAndOrdered(t *testing.T) {
	levels := crossing.Levels{
		{"a", "b"},
		{"dummy-1", "c"},
		{"d", "e"},
	}
	segs := []crossing.Segment{
		{Top: "a", Bottom: "dummy-1"},
		{Top: "dummy-1", Bottom: "d"},
		{Top: "b", Bottom: "c"},
		{Top: "c", Bottom: "e"},
	}
	widths := map[string]int{"a": 10, "b": 10, "c": 10, "d": 10, "e": 10, "dummy-1": 0}

	x := Position(levels, segs, widths, Options{Strategy: BrandesKopf, NodeSpacing: 4})
	for _, level := range levels {
		for i, id := range level {
			if x[id] < 0 {
				t.Errorf("x[%s] = %d is negative", id, x[id])
			}
			if i > 0 {
				prev := level[i-1]
				if x[id] < x[prev]+widths[prev]+4 {
					t.Errorf("brandes-kopf overlap: %s (%d) vs %s (%d)", prev, x[prev], id, x[id])
				}
			}
		}
	}
}

func TestMedianIntEvenAndOdd(t *testing.T) {
	if got := medianInt([]int{1, 2, 3}); got != 2 {
		t.Errorf("medianInt odd = %d, want 2", got)
	}
	if got := medianInt([]int{1, 2, 3, 4}); got != 2 {
		t.Errorf("medianInt even = %d, want 2", got)
	}
}

func TestIsDummyID(t *testing.T) {
	if !isDummyID("dummy-abc123") {
		t.Error("expected dummy- prefix to be recognised")
	}
	if isDummyID("node-abc123") {
		t.Error("did not expect non-dummy id to be recognised as dummy")
	}
}
