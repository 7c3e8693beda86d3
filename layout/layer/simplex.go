package layer

import "github.com/matzehuels/layerflow/pkg/graph"

// treeEdge is a tree edge together with the direction it runs relative to
// fwd (always tail -> head in the forward-edge orientation).
type treeEdge struct {
	tail, head string
}

// networkSimplex refines an initial feasible layering (longest-path
// ranks) by building a tight spanning tree and repeatedly exchanging the
// tree edge with the most negative cut value for a minimum-slack
// replacement, the classical approach described by Gansner et al. for
// rank assignment. Iteration is capped at maxIter so a pathological graph
// degrades to "closer than longest-path" rather than looping indefinitely.
func networkSimplex(v *graph.View, fwd []forwardEdge, ranks map[string]int, maxIter int) map[string]int {
	nodes := v.Nodes()
	if len(nodes) == 0 || len(fwd) == 0 {
		return ranks
	}

	r := make(map[string]int, len(ranks))
	for k, val := range ranks {
		r[k] = val
	}

	tree, adj := feasibleTree(nodes, fwd, r)
	if len(tree) == 0 {
		return r
	}

	for iter := 0; iter < maxIter; iter++ {
		leave, leaveIdx, tailComp := mostNegativeCutEdge(tree, adj, fwd, r)
		if leaveIdx < 0 {
			break // no negative cut value edge: locally optimal
		}

		enter, found := minSlackReplacement(fwd, r, tailComp, leave)
		if !found {
			break // no valid replacement: stop rather than loop forever
		}

		delta := slack(r, enter)
		if tailComp[enter.From] {
			shiftComponent(r, tailComp, delta)
		} else {
			shiftComponent(r, tailComp, -delta)
		}

		tree[leaveIdx] = treeEdge{tail: enter.From, head: enter.To}
		adj = buildAdjacency(tree)
	}

	normalize(r, nodes)
	return r
}

func slack(r map[string]int, e forwardEdge) int {
	return r[e.To] - r[e.From] - 1
}

// feasibleTree grows a spanning tree of tight (zero-slack) edges starting
// from an arbitrary node, repeatedly shifting whichever side of the
// current tree has the smaller incident slack so the next edge becomes
// tight, until every node is included.
func feasibleTree(nodes []*graph.Node, fwd []forwardEdge, r map[string]int) ([]treeEdge, map[string][]int) {
	inTree := make(map[string]bool, len(nodes))
	inTree[nodes[0].ID] = true
	var tree []treeEdge

	for len(tree) < len(nodes)-1 {
		bestIdx := -1
		bestSlack := -1
		for i, e := range fwd {
			if inTree[e.From] == inTree[e.To] {
				continue // both in or both out: doesn't grow the tree
			}
			s := slack(r, e)
			if bestIdx == -1 || s < bestSlack {
				bestIdx, bestSlack = i, s
			}
		}
		if bestIdx == -1 {
			break // graph component exhausted (disconnected graph)
		}

		e := fwd[bestIdx]
		if bestSlack > 0 {
			// shift whichever endpoint is outside the tree so this edge
			// becomes tight without disturbing already-tight tree edges.
			if inTree[e.From] {
				shiftNode(r, e.To, bestSlack, inTree)
			} else {
				shiftNode(r, e.From, -bestSlack, inTree)
			}
		}
		inTree[e.From] = true
		inTree[e.To] = true
		tree = append(tree, treeEdge{tail: e.From, head: e.To})
	}

	return tree, buildAdjacency(tree)
}

// shiftNode moves a single not-yet-tree node's rank; used only while
// growing the initial tree, before components have edges to carry along.
func shiftNode(r map[string]int, id string, delta int, inTree map[string]bool) {
	if !inTree[id] {
		r[id] += delta
	}
}

func buildAdjacency(tree []treeEdge) map[string][]int {
	adj := make(map[string][]int, len(tree)*2)
	for i, e := range tree {
		adj[e.tail] = append(adj[e.tail], i)
		adj[e.head] = append(adj[e.head], i)
	}
	return adj
}

// mostNegativeCutEdge computes, for every tree edge, the cut value (sum of
// forward-edge weights crossing the cut from tail-side to head-side minus
// the reverse) and returns the edge with the most negative value along
// with the set of node ids on its tail side.
func mostNegativeCutEdge(tree []treeEdge, adj map[string][]int, fwd []forwardEdge, r map[string]int) (treeEdge, int, map[string]bool) {
	bestIdx := -1
	bestVal := 0
	var bestComp map[string]bool

	for i, te := range tree {
		comp := componentWithoutEdge(tree, adj, i, te.tail)
		cut := 0
		for _, e := range fwd {
			tailIn := comp[e.From]
			headIn := comp[e.To]
			if tailIn && !headIn {
				cut++
			} else if !tailIn && headIn {
				cut--
			}
		}
		if cut < bestVal {
			bestVal = cut
			bestIdx = i
			bestComp = comp
		}
	}

	if bestIdx == -1 {
		return treeEdge{}, -1, nil
	}
	return tree[bestIdx], bestIdx, bestComp
}

// componentWithoutEdge returns the set of node ids reachable from start
// using tree edges, excluding edge index skip (removing it splits the
// tree into exactly two components).
func componentWithoutEdge(tree []treeEdge, adj map[string][]int, skip int, start string) map[string]bool {
	comp := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, ei := range adj[id] {
			if ei == skip {
				continue
			}
			te := tree[ei]
			var other string
			if te.tail == id {
				other = te.head
			} else if te.head == id {
				other = te.tail
			} else {
				continue
			}
			if !comp[other] {
				comp[other] = true
				queue = append(queue, other)
			}
		}
	}
	return comp
}

// minSlackReplacement finds the minimum-slack non-tree edge that crosses
// from the head-side component back into tailComp, in the direction that
// would replace the removed tree edge while keeping the tree connected.
func minSlackReplacement(fwd []forwardEdge, r map[string]int, tailComp map[string]bool, leave treeEdge) (forwardEdge, bool) {
	best := forwardEdge{}
	bestSlack := -1
	found := false

	for _, e := range fwd {
		if e.From == leave.tail && e.To == leave.head {
			continue
		}
		tailIn := tailComp[e.From]
		headIn := tailComp[e.To]
		if tailIn == headIn {
			continue // doesn't cross the cut
		}
		if tailIn {
			continue // only consider edges running head-side -> tail-side
		}
		s := slack(r, e)
		if !found || s < bestSlack {
			best, bestSlack, found = e, s, true
		}
	}
	return best, found
}

func shiftComponent(r map[string]int, comp map[string]bool, delta int) {
	for id := range comp {
		r[id] += delta
	}
}

func normalize(r map[string]int, nodes []*graph.Node) {
	if len(nodes) == 0 {
		return
	}
	min := r[nodes[0].ID]
	for _, n := range nodes {
		if r[n.ID] < min {
			min = r[n.ID]
		}
	}
	if min == 0 {
		return
	}
	for _, n := range nodes {
		r[n.ID] -= min
	}
}
