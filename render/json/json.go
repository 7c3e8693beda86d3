// Package json renders an IR graph into the external, bit-stable JSON
// document renderers and tooling outside this module can depend on: integer
// node/edge indices, an explicit "kind" tag on every node and "type" tag on
// every path, and a
// schema version a consumer can branch on. This is distinct from the
// internal ir.Graph.ToJSON encoding, which is a Go-native round-trip format
// keyed by node ID rather than index.
package json

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// SchemaVersion is the version string written to every document this
// package produces.
const SchemaVersion = "1.1"

// fixedNodeHeight matches pipeline.DefaultNodeHeight: every node box is
// border/label/border, regardless of label length.
const fixedNodeHeight = 3

// Option configures a Render call.
type Option func(*renderer)

type renderer struct {
	pretty bool
}

// WithPrettyPrint indents the output for human readability. Off by default,
// since the JSON IR is primarily a machine-to-machine interchange format.
func WithPrettyPrint() Option { return func(r *renderer) { r.pretty = true } }

// Render encodes g as the external JSON IR document described by the wire
// schema: integer-indexed nodes and edges, a "kind" tag per node
// (explicit/implicit/dummy), and one of five tagged path-object shapes per
// edge.
func Render(g ir.Graph[int], opts ...Option) ([]byte, error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	indexOf := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		indexOf[n.ID] = i
	}

	doc := document{
		Version:    SchemaVersion,
		Width:      g.Width,
		Height:     g.Height,
		LevelCount: levelCount(g.Nodes),
		Nodes:      make([]wireNode, len(g.Nodes)),
		Edges:      make([]wireEdge, len(g.Edges)),
	}

	for i, n := range g.Nodes {
		// Builder.AddNode requires every node to be declared explicitly
		// before it can appear as an edge endpoint, so "implicit" (a node
		// materialised only because an edge referenced it) never occurs
		// here; only "explicit" and "dummy" are produced.
		kind := "explicit"
		if n.Dummy {
			kind = "dummy"
		}
		wn := wireNode{
			ID: i, Label: n.Label, X: n.X, Y: n.Y, Width: n.Width,
			CenterX: n.X + n.Width/2, Level: n.Layer, LevelPosition: n.Order, Kind: kind,
		}
		if n.Dummy {
			idx := n.EdgeIndex
			wn.EdgeIndex = &idx
		}
		doc.Nodes[i] = wn
	}

	for i, e := range g.Edges {
		fromIdx, toIdx := indexOf[e.From], indexOf[e.To]
		fromNode, toNode := g.Nodes[fromIdx], g.Nodes[toIdx]
		we := wireEdge{
			From: fromIdx, To: toIdx,
			FromX: fromNode.X, FromY: fromNode.Y, ToX: toNode.X, ToY: toNode.Y,
			EdgeIndex: i, Directed: true, Reversed: e.Reversed,
			Path: encodePath(e.Path),
		}
		if e.Label != nil {
			we.Label = e.Label.Text
			if !e.Label.InLegend {
				we.LabelX, we.LabelY = &e.Label.Point.X, &e.Label.Point.Y
			}
		}
		doc.Edges[i] = we
	}

	if r.pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func levelCount(nodes []ir.Node[int]) int {
	max := -1
	for _, n := range nodes {
		if n.Layer > max {
			max = n.Layer
		}
	}
	return max + 1
}

// Parse decodes an external JSON IR document back into an ir.Graph, keyed
// by ID rather than index, for callers that want to feed a previously
// rendered document back into the Go-native representation. Unrecognised
// schema versions are rejected.
func Parse(data []byte) (ir.Graph[int], error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ir.Graph[int]{}, errors.Wrap(errors.ErrCodeJSONMalformed, err, "decoding external json ir")
	}
	if doc.Version != "1.0" && doc.Version != "1.1" {
		return ir.Graph[int]{}, errors.New(errors.ErrCodeJSONVersion, "unsupported version %q", doc.Version)
	}

	g := ir.Graph[int]{Version: ir.CurrentVersion, Width: doc.Width, Height: doc.Height}
	idOf := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		id := n.Label
		if id == "" {
			id = syntheticID(i)
		}
		idOf[i] = id
		// The wire schema carries no per-node height: every node box is a
		// fixed 3 rows tall (border/label/border), so it is never written.
		node := ir.Node[int]{
			ID: id, Label: n.Label, X: n.X, Y: n.Y, Width: n.Width,
			Height: fixedNodeHeight, Layer: n.Level, Order: n.LevelPosition,
			Dummy: n.Kind == "dummy",
		}
		if n.EdgeIndex != nil {
			node.EdgeIndex = *n.EdgeIndex
		}
		g.Nodes = append(g.Nodes, node)
	}

	for _, e := range doc.Edges {
		if e.From < 0 || e.From >= len(idOf) || e.To < 0 || e.To >= len(idOf) {
			return ir.Graph[int]{}, errors.New(errors.ErrCodeJSONEdgeInvalid, "edge references out-of-range node index")
		}
		edge := ir.Edge[int]{From: idOf[e.From], To: idOf[e.To], Reversed: e.Reversed, Path: decodePath(e.Path)}
		if e.Label != "" {
			lp := ir.LabelPlacement[int]{Text: e.Label}
			if e.LabelX != nil && e.LabelY != nil {
				lp.Point = ir.Point[int]{X: *e.LabelX, Y: *e.LabelY}
			} else {
				lp.InLegend = true
			}
			edge.Label = &lp
		}
		g.Edges = append(g.Edges, edge)
	}

	return g, nil
}

func syntheticID(i int) string {
	return "n" + strconv.Itoa(i)
}
