package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/graph"
)

// parseGraph reads a plain-text graph description into a graph.View.
//
// Each non-blank, non-comment ("#") line is one of:
//
//	node <id> [label words...]
//	edge <from> <to> [label words...]
//
// This is the CLI's own input format, not part of the layout IR: it exists
// only to get a small graph into pkg/graph.Builder from a file without
// requiring a caller to write Go code.
func parseGraph(r io.Reader) (*graph.View, error) {
	b := graph.NewBuilder()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "node":
			if len(fields) < 2 {
				return nil, errors.New(errors.ErrCodeGraphNodeMissing, "line %d: node requires an id", lineNo)
			}
			label := strings.Join(fields[2:], " ")
			if label == "" {
				label = fields[1]
			}
			if err := b.AddNode(graph.Node{ID: fields[1], Label: label}); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "edge":
			if len(fields) < 3 {
				return nil, errors.New(errors.ErrCodeGraphEdgeInvalid, "line %d: edge requires from and to", lineNo)
			}
			label := strings.Join(fields[3:], " ")
			if err := b.AddEdge(graph.Edge{From: fields[1], To: fields[2], Label: label}); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		default:
			return nil, errors.New(errors.ErrCodeGraphEdgeInvalid, "line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return b.Build()
}
