// Package layer assigns each node in the graph to an integer layer
// (vertical rank), the second pass of the layout pipeline. Two algorithms
// are offered: a fast longest-path assignment, and a network-simplex
// refinement that tends to produce more compact, more balanced layerings
// at higher cost.
package layer

import (
	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/pkg/graph"
)

// Algorithm selects which layering strategy Assign uses.
type Algorithm string

const (
	// LongestPath assigns each node the length of the longest path from
	// any source to it, via a topological (Kahn's algorithm) sweep. O(V+E).
	LongestPath Algorithm = "longest-path"
	// NetworkSimplex refines the longest-path layering by minimizing total
	// weighted edge length, subject to an iteration cap.
	NetworkSimplex Algorithm = "network-simplex"
)

// Options configures Assign.
type Options struct {
	Algorithm Algorithm
	// MaxSimplexIterations caps network-simplex pivoting. Zero selects the
	// default of 8 * node count.
	MaxSimplexIterations int
}

// forwardEdge is an edge reoriented so From always points toward
// increasing layer, undoing cycle-breaker reversals for layering purposes
// only; the IR keeps the original From/To and a Reversed flag separately.
type forwardEdge struct {
	From, To string
}

func forwardEdges(v *graph.View, cb cyclebreak.Result) []forwardEdge {
	edges := v.Edges()
	out := make([]forwardEdge, len(edges))
	for i, e := range edges {
		if cb.IsReversed(i) {
			out[i] = forwardEdge{From: e.To, To: e.From}
		} else {
			out[i] = forwardEdge{From: e.From, To: e.To}
		}
	}
	return out
}

// Assign computes a layer number for every node in v. Layer 0 is the top;
// layers increase downward. Nodes with no path between them may end up on
// the same layer.
func Assign(v *graph.View, cb cyclebreak.Result, opts Options) map[string]int {
	fwd := forwardEdges(v, cb)
	layers := longestPath(v, fwd)

	switch opts.Algorithm {
	case NetworkSimplex:
		maxIter := opts.MaxSimplexIterations
		if maxIter == 0 {
			maxIter = 8 * v.NodeCount()
		}
		return networkSimplex(v, fwd, layers, maxIter)
	default:
		return layers
	}
}

// longestPath assigns layers via a Kahn's-algorithm topological sweep:
// each node's layer is one more than the maximum layer of its in-edge
// sources, computed in topological order so every predecessor is final
// before a node is visited.
//
// Cycles have already been broken by the cyclebreak pass, so fwd is
// guaranteed acyclic; any node that never reaches in-degree zero here
// indicates a cyclebreak bug, not a graph property Assign needs to guard
// against.
func longestPath(v *graph.View, fwd []forwardEdge) map[string]int {
	inDegree := make(map[string]int, v.NodeCount())
	outgoing := make(map[string][]string)
	for _, n := range v.Nodes() {
		inDegree[n.ID] = 0
	}
	for _, e := range fwd {
		inDegree[e.To]++
		outgoing[e.From] = append(outgoing[e.From], e.To)
	}

	layers := make(map[string]int, v.NodeCount())
	queue := make([]string, 0, v.NodeCount())
	for _, n := range v.Nodes() {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
			layers[n.ID] = 0
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range outgoing[id] {
			if layers[id]+1 > layers[child] {
				layers[child] = layers[id] + 1
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}
