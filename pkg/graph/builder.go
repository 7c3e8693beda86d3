package graph

import lferrors "github.com/matzehuels/layerflow/pkg/errors"

// Builder constructs a validated View incrementally. The zero value is not
// usable; create one with NewBuilder.
type Builder struct {
	nodes    map[string]*Node
	edges    []Edge
	order    []string
	maxNodes int
	maxEdges int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMaxNodes overrides the default node-count cap.
func WithMaxNodes(n int) BuilderOption {
	return func(b *Builder) { b.maxNodes = n }
}

// WithMaxEdges overrides the default edge-count cap.
func WithMaxEdges(n int) BuilderOption {
	return func(b *Builder) { b.maxEdges = n }
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		nodes:    make(map[string]*Node),
		maxNodes: DefaultMaxNodes,
		maxEdges: DefaultMaxEdges,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddNode adds a node to the graph being built. Returns a
// Graph.Node.Missing error if the ID is empty, Graph.Node.Duplicate if it
// is already present, or
// Graph.Resource.TooLarge if the node-count cap would be exceeded.
func (b *Builder) AddNode(n Node) error {
	if n.ID == "" {
		return lferrors.New(lferrors.ErrCodeGraphNodeMissing, "node ID must not be empty")
	}
	if _, exists := b.nodes[n.ID]; exists {
		return lferrors.New(lferrors.ErrCodeGraphNodeDuplicate, "duplicate node ID %q", n.ID)
	}
	if len(b.nodes) >= b.maxNodes {
		return lferrors.New(lferrors.ErrCodeGraphTooLarge, "graph exceeds max_nodes=%d", b.maxNodes)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	b.nodes[node.ID] = node
	b.order = append(b.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two already-added nodes. Returns a
// Graph.Node.Missing error if either endpoint is unknown, or
// Graph.Resource.TooLarge if the edge-count cap would be exceeded.
func (b *Builder) AddEdge(e Edge) error {
	if _, ok := b.nodes[e.From]; !ok {
		return lferrors.New(lferrors.ErrCodeGraphNodeMissing, "unknown source node %q", e.From)
	}
	if _, ok := b.nodes[e.To]; !ok {
		return lferrors.New(lferrors.ErrCodeGraphNodeMissing, "unknown target node %q", e.To)
	}
	if len(b.edges) >= b.maxEdges {
		return lferrors.New(lferrors.ErrCodeGraphTooLarge, "graph exceeds max_edges=%d", b.maxEdges)
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	b.edges = append(b.edges, e)
	return nil
}

// Build finalizes the graph into an immutable View. The Builder remains
// usable afterwards; further AddNode/AddEdge calls do not affect Views
// already built.
func (b *Builder) Build() (*View, error) {
	v := &View{
		nodes:    make(map[string]*Node, len(b.nodes)),
		edges:    append([]Edge(nil), b.edges...),
		outgoing: make(map[string][]string, len(b.nodes)),
		incoming: make(map[string][]string, len(b.nodes)),
		order:    append([]string(nil), b.order...),
	}
	for id, n := range b.nodes {
		cp := *n
		v.nodes[id] = &cp
	}
	for _, e := range v.edges {
		v.outgoing[e.From] = append(v.outgoing[e.From], e.To)
		v.incoming[e.To] = append(v.incoming[e.To], e.From)
	}
	return v, nil
}
