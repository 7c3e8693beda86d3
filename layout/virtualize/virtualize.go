// Package virtualize implements the third pass of the layout pipeline:
// inserting a chain of dummy nodes for every edge that spans more than one
// layer, so that every edge in the virtualized graph connects adjacent
// layers. Downstream passes (crossing reduction, positioning, routing) all
// operate on this layer-adjacent form.
package virtualize

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/layerflow/layout/cyclebreak"
	"github.com/matzehuels/layerflow/pkg/graph"
)

// DummyNode is a synthetic node inserted to subdivide one long edge at a
// single intermediate layer.
type DummyNode struct {
	ID        string
	Layer     int
	EdgeIndex int // index into the original view.Edges() this dummy belongs to
}

// Chain describes how one original edge was subdivided: the sequence of
// dummy node ids introduced between its endpoints, in layer order from the
// edge's layering-forward side to its layering-forward-to side. An edge
// that already connects adjacent layers has an empty chain.
type Chain struct {
	EdgeIndex int
	DummyIDs  []string
}

// Result is the virtualizer's output: every dummy node created, and the
// chain of dummies (if any) for each original edge.
type Result struct {
	Dummies []DummyNode
	Chains  []Chain // indexed the same as view.Edges()
}

// newDummyID mints an id outside the caller's id space using a random
// UUID, so a dummy node can never collide with a caller-supplied node id
// regardless of what naming convention the caller used.
func newDummyID() string {
	return "dummy-" + uuid.NewString()
}

// Virtualize inserts one dummy node per skipped layer for every edge whose
// endpoints are not on adjacent layers (after accounting for the
// cyclebreaker's reversal marks, which determine which endpoint is
// layering-upstream). Edges already spanning adjacent layers, and
// reversed self-loops, are left alone.
func Virtualize(v *graph.View, cb cyclebreak.Result, layers map[string]int) Result {
	var res Result
	edges := v.Edges()
	res.Chains = make([]Chain, len(edges))

	for i, e := range edges {
		res.Chains[i] = Chain{EdgeIndex: i}

		upper, lower := e.From, e.To
		if cb.IsReversed(i) {
			upper, lower = e.To, e.From
		}
		if upper == lower {
			continue // self-loop, routed separately by the router
		}

		upperLayer, lowerLayer := layers[upper], layers[lower]
		span := lowerLayer - upperLayer
		if span <= 1 {
			continue // adjacent layers already, no dummy needed
		}

		var chainIDs []string
		for layer := upperLayer + 1; layer < lowerLayer; layer++ {
			id := newDummyID()
			res.Dummies = append(res.Dummies, DummyNode{ID: id, Layer: layer, EdgeIndex: i})
			chainIDs = append(chainIDs, id)
		}
		res.Chains[i].DummyIDs = chainIDs
	}

	return res
}

// ChainFor returns the dummy chain for the edge at edgeIndex, or an empty
// chain if none was needed.
func (r Result) ChainFor(edgeIndex int) Chain {
	if edgeIndex < 0 || edgeIndex >= len(r.Chains) {
		return Chain{}
	}
	return r.Chains[edgeIndex]
}

// DummyLabel returns a human-readable label for a dummy node, useful for
// debugging output; dummy nodes never carry a caller-visible label in the
// IR itself.
func DummyLabel(d DummyNode) string {
	return fmt.Sprintf("dummy(edge=%d,layer=%d)", d.EdgeIndex, d.Layer)
}
