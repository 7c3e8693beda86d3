// Package crossing implements the fourth pass of the layout pipeline:
// reordering the node sequence within each level to reduce the number of
// edge crossings between adjacent levels. It operates purely on level
// orderings and inter-level segments; it never changes layer membership or
// inserts/removes nodes.
package crossing

import (
	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/layout/virtualize"
	"github.com/matzehuels/layerflow/pkg/graph"
)

// Levels holds the ordered node sequence for each layer, indexed by layer
// number. Levels[i] is the node order at layer i.
type Levels [][]string

// Segment is a single edge or dummy-chain link connecting a node at layer
// i to a node at layer i+1.
type Segment struct {
	Top    string // node id at the shallower layer
	Bottom string // node id at layer Top's layer + 1
}

// BuildLevels groups every real and dummy node by layer, in a stable
// order: real nodes first in the view's insertion order, then dummy nodes
// in the order the virtualizer created them.
func BuildLevels(v *graph.View, layers map[string]int, virt virtualize.Result) Levels {
	maxLayer := 0
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	for _, d := range virt.Dummies {
		if d.Layer > maxLayer {
			maxLayer = d.Layer
		}
	}

	out := make(Levels, maxLayer+1)
	for _, n := range v.Nodes() {
		l := layers[n.ID]
		out[l] = append(out[l], n.ID)
	}
	for _, d := range virt.Dummies {
		out[d.Layer] = append(out[d.Layer], d.ID)
	}
	return out
}

// BuildSegments expands every edge (respecting cyclebreak reversal) into
// the chain of adjacent-layer links it actually occupies after
// virtualization: a direct edge becomes one segment, a long edge becomes
// one segment per hop through its dummy chain. Self-loops contribute no
// segments.
func BuildSegments(v *graph.View, cb cyclebreak.Result, layers map[string]int, virt virtualize.Result) []Segment {
	var segs []Segment
	for i, e := range v.Edges() {
		upper, lower := e.From, e.To
		if cb.IsReversed(i) {
			upper, lower = e.To, e.From
		}
		if upper == lower {
			continue
		}

		chain := virt.ChainFor(i).DummyIDs
		nodes := make([]string, 0, len(chain)+2)
		nodes = append(nodes, upper)
		nodes = append(nodes, chain...)
		nodes = append(nodes, lower)

		for j := 0; j < len(nodes)-1; j++ {
			segs = append(segs, Segment{Top: nodes[j], Bottom: nodes[j+1]})
		}
	}
	return segs
}

// neighborIndex maps each node to the ids it connects to on the layer
// above (layer-1) and the layer below (layer+1).
type neighborIndex struct {
	above map[string][]string
	below map[string][]string
}

func buildNeighborIndex(segs []Segment) neighborIndex {
	idx := neighborIndex{above: map[string][]string{}, below: map[string][]string{}}
	for _, s := range segs {
		idx.below[s.Top] = append(idx.below[s.Top], s.Bottom)
		idx.above[s.Bottom] = append(idx.above[s.Bottom], s.Top)
	}
	return idx
}

// posMap returns the index of each node id within order.
func posMap(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}

// CountLayerCrossings returns the total number of edge crossings between
// every pair of adjacent levels under the current ordering.
func CountLayerCrossings(levels Levels, segs []Segment) int {
	total := 0
	for l := 0; l+1 < len(levels); l++ {
		total += countPairCrossings(levels[l], levels[l+1], segs)
	}
	return total
}

// countPairCrossings counts crossings between exactly one adjacent pair of
// levels by filtering segments whose Top is in top and Bottom in bottom.
func countPairCrossings(top, bottom []string, segs []Segment) int {
	topPos := posMap(top)
	bottomPos := posMap(bottom)

	// pairs must be sorted by top position for the inversion count below
	// to correspond to actual line crossings.
	type pair = struct{ topPos, bottomPos int }
	pairs := make([]pair, 0, len(segs))
	for _, s := range segs {
		tp, topOK := topPos[s.Top]
		bp, bottomOK := bottomPos[s.Bottom]
		if !topOK || !bottomOK {
			continue
		}
		pairs = append(pairs, pair{tp, bp})
	}
	sortPairsByTop(pairs)
	ordered := make([]int, len(pairs))
	for i, p := range pairs {
		ordered[i] = p.bottomPos
	}
	return CountCrossingsIdx(ordered, len(bottom))
}

func sortPairsByTop(pairs []struct{ topPos, bottomPos int }) {
	// insertion sort: segment counts per level pair are small relative to
	// level width in the graphs this pipeline targets, and this keeps the
	// function allocation-free beyond the slice itself.
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && pairs[j-1].topPos > pairs[j].topPos {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
			j--
		}
	}
}

// CountCrossingsIdx counts the number of inversions in ordered - the
// bottom-level positions of segments already sorted by top-level position
// - using a Fenwick (binary indexed) tree, in O(E log V). Two segments
// cross iff their relative top-order and bottom-order disagree, which is
// exactly an inversion in this sequence.
func CountCrossingsIdx(ordered []int, bottomWidth int) int {
	if bottomWidth <= 0 {
		return 0
	}
	tree := make([]int, bottomWidth+1)

	add := func(i int) {
		for i++; i <= bottomWidth; i += i & (-i) {
			tree[i]++
		}
	}
	sumTo := func(i int) int {
		s := 0
		for i++; i > 0; i -= i & (-i) {
			s += tree[i]
		}
		return s
	}

	crossings := 0
	for _, pos := range ordered {
		// count how many already-inserted positions are strictly greater
		// than pos: each is an inversion against the current element.
		inserted := sumTo(bottomWidth-1) - sumTo(pos)
		crossings += inserted
		add(pos)
	}
	return crossings
}
