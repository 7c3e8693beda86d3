// Package cyclebreak implements the first pass of the layout pipeline:
// finding every directed cycle in the input graph and marking one edge per
// cycle as reversed so the remaining passes can treat the graph as
// acyclic without discarding any edge.
package cyclebreak

import "github.com/matzehuels/layerflow/pkg/graph"

// Result is the outcome of breaking cycles in a graph: the set of edges
// (identified by index into view.Edges()) that must be treated as
// reversed by every downstream pass. The edge's semantic From/To is left
// untouched; reversal only affects which direction the layerer and router
// treat as "forward".
type Result struct {
	Reversed []bool // indexed the same as view.Edges()
}

// IsReversed reports whether the edge at the given index was marked
// reversed.
func (r Result) IsReversed(edgeIndex int) bool {
	return edgeIndex >= 0 && edgeIndex < len(r.Reversed) && r.Reversed[edgeIndex]
}

// Break finds a feedback edge set via three-colour DFS and marks each back
// edge (including self-loops) as reversed. The DFS visits nodes in the
// order given by view.Nodes(), so the result is deterministic for a given
// View.
//
// This mirrors the classic "reverse, don't remove" cycle-breaking
// strategy: a back edge discovered while a node is still gray (on the
// current DFS stack) means the edge closes a cycle; flipping its
// orientation for layering purposes breaks the cycle while keeping the
// edge's original endpoints intact for the IR.
func Break(v *graph.View) Result {
	const (
		white = iota
		gray
		black
	)

	edges := v.Edges()
	reversed := make([]bool, len(edges))

	// index edges by source node so the DFS can walk them in the same
	// order view.Edges() enumerates them, keeping edge-index bookkeeping
	// simple.
	outEdges := make(map[string][]int)
	for i, e := range edges {
		if e.From == e.To {
			reversed[i] = true
			continue
		}
		outEdges[e.From] = append(outEdges[e.From], i)
	}

	color := make(map[string]int, v.NodeCount())

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, ei := range outEdges[id] {
			e := edges[ei]
			switch color[e.To] {
			case white:
				dfs(e.To)
			case gray:
				reversed[ei] = true
			}
		}
		color[id] = black
	}

	for _, n := range v.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return Result{Reversed: reversed}
}
