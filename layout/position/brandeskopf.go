package position

import (
	"sort"
	"strings"

	"github.com/matzehuels/layerflow/layout/crossing"
)

// direction is the vertical sweep direction used while building alignment
// chains: dirDown processes levels top to bottom, aligning each node to
// the level above it; dirUp does the reverse.
type direction int

const (
	dirDown direction = iota
	dirUp
)

// bias picks which of a tied median pair an alignment favours, and which
// side of the level a block is packed against during compaction.
type bias int

const (
	biasLeft bias = iota
	biasRight
)

// brandesKopf computes four independent alignments (down/left, down/right,
// up/left, up/right), compacts each into x-coordinates, and returns the
// per-node median of the four as the final position.
func brandesKopf(levels crossing.Levels, segs []crossing.Segment, widths map[string]int, spacing int) map[string]int {
	posInLevel := make(map[string]int)
	for _, level := range levels {
		for i, id := range level {
			posInLevel[id] = i
		}
	}

	above, below := neighborIndexes(segs)
	conflicts := markType1Conflicts(levels, segs)

	var alignments []map[string]int
	for _, dir := range []direction{dirDown, dirUp} {
		for _, b := range []bias{biasLeft, biasRight} {
			root, align := verticalAlign(levels, above, below, posInLevel, conflicts, dir, b)
			alignments = append(alignments, horizontalCompact(levels, root, align, widths, spacing))
		}
	}

	final := make(map[string]int, len(posInLevel))
	for id := range posInLevel {
		vals := make([]int, len(alignments))
		for i, a := range alignments {
			vals[i] = a[id]
		}
		final[id] = medianInt(vals)
	}
	normalizeNonNegative(levels, final)
	return final
}

// isDummyID recognises a virtualizer-minted dummy node by its id prefix.
func isDummyID(id string) bool {
	return strings.HasPrefix(id, "dummy-")
}

// markType1Conflicts flags every segment that is part of a crossing
// between an "inner" segment (both endpoints dummy nodes, i.e. part of a
// long edge's chain) and a segment with at least one real endpoint -
// the classical Brandes-Köpf type-1 conflict, which alignment must not
// cross so long edges stay visually straight.
func markType1Conflicts(levels crossing.Levels, segs []crossing.Segment) map[crossing.Segment]bool {
	conflicts := map[crossing.Segment]bool{}
	for l := 0; l+1 < len(levels); l++ {
		top, bottom := levels[l], levels[l+1]
		topPos := posMap(top)
		bottomPos := posMap(bottom)

		var pairSegs []crossing.Segment
		for _, s := range segs {
			if _, ok := topPos[s.Top]; !ok {
				continue
			}
			if _, ok := bottomPos[s.Bottom]; !ok {
				continue
			}
			pairSegs = append(pairSegs, s)
		}

		for i := 0; i < len(pairSegs); i++ {
			for j := i + 1; j < len(pairSegs); j++ {
				a, b := pairSegs[i], pairSegs[j]
				aInner := isDummyID(a.Top) && isDummyID(a.Bottom)
				bInner := isDummyID(b.Top) && isDummyID(b.Bottom)
				if aInner == bInner {
					continue // a type-1 conflict needs exactly one inner segment
				}
				aTop, aBot := topPos[a.Top], bottomPos[a.Bottom]
				bTop, bBot := topPos[b.Top], bottomPos[b.Bottom]
				if (aTop < bTop && aBot > bBot) || (aTop > bTop && aBot < bBot) {
					conflicts[a] = true
					conflicts[b] = true
				}
			}
		}
	}
	return conflicts
}

// verticalAlign builds alignment chains for one (direction, bias)
// combination. root[id] names the topmost (in sweep order) member of id's
// chain; align[id] names the next node down the chain. A node with no
// eligible neighbour is its own singleton chain.
func verticalAlign(levels crossing.Levels, above, below map[string][]string, posInLevel map[string]int, conflicts map[crossing.Segment]bool, dir direction, b bias) (root, align map[string]string) {
	root = map[string]string{}
	align = map[string]string{}
	for _, level := range levels {
		for _, id := range level {
			root[id] = id
			align[id] = id
		}
	}

	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if dir == dirUp {
		reverseInts(order)
	}

	for sweepIdx, li := range order {
		if sweepIdx == 0 {
			continue // nothing above/below this level to align to yet
		}
		level := levels[li]
		nodeOrder := append([]string(nil), level...)
		if b == biasRight {
			reverseStrings(nodeOrder)
		}

		claimed := -1
		claimedSet := false
		for _, id := range nodeOrder {
			var neighbours []string
			if dir == dirDown {
				neighbours = above[id]
			} else {
				neighbours = below[id]
			}
			if len(neighbours) == 0 {
				continue
			}

			med := medianNeighbour(neighbours, posInLevel, b)
			if med == "" {
				continue
			}
			seg := conflictSegment(id, med, dir)
			if conflicts[seg] {
				continue
			}

			medPos := posInLevel[med]
			improves := !claimedSet ||
				(b == biasLeft && medPos > claimed) ||
				(b == biasRight && medPos < claimed)
			if !improves {
				continue
			}

			align[med] = id
			root[id] = root[med]
			align[id] = root[id]
			claimed, claimedSet = medPos, true
		}
	}
	return root, align
}

func conflictSegment(id, neighbour string, dir direction) crossing.Segment {
	if dir == dirDown {
		return crossing.Segment{Top: neighbour, Bottom: id}
	}
	return crossing.Segment{Top: id, Bottom: neighbour}
}

// medianNeighbour returns the median-positioned neighbour, breaking an
// even-count tie toward the lower position for a left bias and the
// higher position for a right bias - the mechanism that makes the four
// alignments actually differ from one another.
func medianNeighbour(neighbours []string, posInLevel map[string]int, b bias) string {
	if len(neighbours) == 0 {
		return ""
	}
	sorted := append([]string(nil), neighbours...)
	sort.Slice(sorted, func(i, j int) bool { return posInLevel[sorted[i]] < posInLevel[sorted[j]] })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	if b == biasLeft {
		return sorted[n/2-1]
	}
	return sorted[n/2]
}

// horizontalCompact assigns an x to every chain root by recursively
// packing each block tight against its predecessor block in the same
// level, then propagates that x to every member of the chain.
func horizontalCompact(levels crossing.Levels, root, align map[string]string, widths map[string]int, spacing int) map[string]int {
	posInLevel := make(map[string]int)
	layerOf := make(map[string]int)
	for li, level := range levels {
		for i, id := range level {
			posInLevel[id] = i
			layerOf[id] = li
		}
	}

	x := map[string]int{}
	var place func(v string)
	place = func(v string) {
		if _, done := x[v]; done {
			return
		}
		x[v] = 0
		w := v
		for {
			pos, li := posInLevel[w], layerOf[w]
			if pos > 0 {
				pred := levels[li][pos-1]
				predRoot := root[pred]
				place(predRoot)
				if minX := x[predRoot] + widths[pred] + spacing; minX > x[v] {
					x[v] = minX
				}
			}
			w = align[w]
			if w == v {
				break
			}
		}
	}

	for _, level := range levels {
		for _, id := range level {
			place(root[id])
		}
	}
	for _, level := range levels {
		for _, id := range level {
			x[id] = x[root[id]]
		}
	}
	return x
}

func medianInt(vals []int) int {
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func normalizeNonNegative(levels crossing.Levels, x map[string]int) {
	min := 0
	first := true
	for _, level := range levels {
		for _, id := range level {
			if first || x[id] < min {
				min, first = x[id], false
			}
		}
	}
	if min >= 0 {
		return
	}
	for _, level := range levels {
		for _, id := range level {
			x[id] -= min
		}
	}
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
