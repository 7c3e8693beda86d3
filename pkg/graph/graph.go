// Package graph defines the input graph view that the layout pipeline
// consumes: plain nodes and directed edges, with no layer or position
// information attached yet. Computing layers, positions and routes is the
// job of the layout package; this package only builds and validates the
// immutable view those passes read.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"sort"
)

// DefaultMaxNodes and DefaultMaxEdges bound the size of a graph a Builder
// will accept, matching the pipeline's own resource caps so an oversized
// graph is rejected at construction time rather than partway through a
// pass.
const (
	DefaultMaxNodes = 100000
	DefaultMaxEdges = 500000
)

// Metadata stores arbitrary key-value pairs attached to a node or edge.
// Metadata maps are never nil on a built View - they are initialized to
// empty maps when needed.
type Metadata map[string]any

// Node is a single vertex of the input graph, before any layer or position
// has been assigned.
type Node struct {
	ID    string
	Label string
	Meta  Metadata
}

// Edge is a directed connection between two nodes. Unlike a layered
// adjacency list, edges are not required to connect adjacent layers here -
// layering is computed downstream, not supplied.
type Edge struct {
	From  string
	To    string
	Label string
	Meta  Metadata
}

// View is an immutable snapshot of a graph, ready to be fed into the
// layout pipeline. Build one with Builder.
type View struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	order    []string // insertion order, for deterministic iteration
}

// Nodes returns all nodes in insertion order.
func (v *View) Nodes() []*Node {
	out := make([]*Node, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.nodes[id])
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (v *View) Edges() []Edge { return slices.Clone(v.edges) }

// NodeCount returns the number of nodes in the view.
func (v *View) NodeCount() int { return len(v.nodes) }

// EdgeCount returns the number of edges in the view.
func (v *View) EdgeCount() int { return len(v.edges) }

// Node returns the node with the given ID and true, or nil and false.
func (v *View) Node(id string) (*Node, bool) {
	n, ok := v.nodes[id]
	return n, ok
}

// Children returns the IDs this node has outgoing edges to.
func (v *View) Children(id string) []string { return v.outgoing[id] }

// Parents returns the IDs that have outgoing edges to this node.
func (v *View) Parents(id string) []string { return v.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (v *View) OutDegree(id string) int { return len(v.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (v *View) InDegree(id string) int { return len(v.incoming[id]) }

// Sources returns nodes with no incoming edges.
func (v *View) Sources() []*Node {
	var out []*Node
	for _, id := range v.order {
		if len(v.incoming[id]) == 0 {
			out = append(out, v.nodes[id])
		}
	}
	return out
}

// Sinks returns nodes with no outgoing edges.
func (v *View) Sinks() []*Node {
	var out []*Node
	for _, id := range v.order {
		if len(v.outgoing[id]) == 0 {
			out = append(out, v.nodes[id])
		}
	}
	return out
}

// ContentHash returns a deterministic SHA-256 hash of the view's nodes and
// edges, suitable as a cache key component. Node/edge order does not
// affect the hash: both are sorted before hashing.
func (v *View) ContentHash() string {
	type kv struct {
		K string
		V Metadata
	}
	nodes := make([]kv, 0, len(v.nodes))
	for id, n := range v.nodes {
		nodes = append(nodes, kv{id + "\x00" + n.Label, n.Meta})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].K < nodes[j].K })

	edges := slices.Clone(v.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	data, _ := json.Marshal(struct {
		Nodes []kv
		Edges []Edge
	}{nodes, edges})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PosMap creates a position lookup map from a slice of node IDs: each ID
// maps to its index in the slice. This is the common input format for
// crossing-count and positioning passes.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
