// Package position implements the fifth pass of the layout pipeline:
// assigning an x coordinate to every node (real and dummy) in the
// reducer-ordered level lists, without reordering any level.
package position

import "github.com/matzehuels/layerflow/layout/crossing"

// Strategy selects which positioning algorithm Position uses.
type Strategy string

const (
	// Compact left-packs every level. Fastest, guarantees no overlap,
	// produces left-biased layouts.
	Compact Strategy = "compact"
	// Barycentric starts from Compact and nudges nodes toward the average
	// centre-x of their neighbours in adjacent levels.
	Barycentric Strategy = "barycentric"
	// BrandesKopf computes four independent alignments and takes their
	// per-node median, producing symmetric, parent-centred layouts.
	BrandesKopf Strategy = "brandes_kopf"
)

// Options configures Position.
type Options struct {
	Strategy Strategy
	// NodeSpacing is the minimum gap enforced between adjacent nodes
	// within a level.
	NodeSpacing int
	// BarycentricPasses bounds the number of nudging sweeps; zero selects
	// the default of 4.
	BarycentricPasses int
}

// Position computes an x coordinate for every node appearing in levels.
// widths supplies each node's rendered width; a node absent from widths
// (typically a dummy node) is treated as zero-width. All returned
// coordinates are non-negative.
func Position(levels crossing.Levels, segs []crossing.Segment, widths map[string]int, opts Options) map[string]int {
	x := compactPack(levels, widths, opts.NodeSpacing)

	switch opts.Strategy {
	case Barycentric:
		passes := opts.BarycentricPasses
		if passes == 0 {
			passes = 4
		}
		barycentric(levels, segs, widths, opts.NodeSpacing, x, passes)
		return x
	case BrandesKopf:
		return brandesKopf(levels, segs, widths, opts.NodeSpacing)
	default:
		return x
	}
}

// compactPack left-packs every level independently: the first node sits
// at x=0, each subsequent node at the previous node's x plus its width
// plus the spacing.
func compactPack(levels crossing.Levels, widths map[string]int, spacing int) map[string]int {
	x := make(map[string]int)
	for _, level := range levels {
		cursor := 0
		for _, id := range level {
			x[id] = cursor
			cursor += widths[id] + spacing
		}
	}
	return x
}

// barycentric nudges x in place: for each pass, every node moves toward
// the average centre-x of its neighbours in the level above and below,
// clipped so it never overlaps its left or right neighbour within the
// same level.
func barycentric(levels crossing.Levels, segs []crossing.Segment, widths map[string]int, spacing int, x map[string]int, passes int) {
	above, below := neighborIndexes(segs)

	for pass := 0; pass < passes; pass++ {
		for _, level := range levels {
			desired := make(map[string]float64, len(level))
			for _, id := range level {
				sum, n := 0.0, 0
				for _, nb := range above[id] {
					sum += centerX(x, widths, nb)
					n++
				}
				for _, nb := range below[id] {
					sum += centerX(x, widths, nb)
					n++
				}
				if n == 0 {
					desired[id] = centerX(x, widths, id)
				} else {
					desired[id] = sum / float64(n)
				}
			}
			applyClipped(level, widths, spacing, x, desired)
		}
	}
}

func centerX(x map[string]int, widths map[string]int, id string) float64 {
	return float64(x[id]) + float64(widths[id])/2
}

// applyClipped moves every node in level toward its desired centre-x, in
// left-to-right order clipping against the already-placed left neighbour,
// then in a right-to-left pass clipping against the right neighbour, so
// the minimum spacing invariant holds after the nudge.
func applyClipped(level []string, widths map[string]int, spacing int, x map[string]int, desired map[string]float64) {
	for i, id := range level {
		newX := int(desired[id] - float64(widths[id])/2)
		if i > 0 {
			prev := level[i-1]
			if minX := x[prev] + widths[prev] + spacing; newX < minX {
				newX = minX
			}
		}
		if newX < 0 {
			newX = 0
		}
		x[id] = newX
	}
	for i := len(level) - 2; i >= 0; i-- {
		id, next := level[i], level[i+1]
		if maxX := x[next] - widths[id] - spacing; x[id] > maxX {
			x[id] = maxX
		}
		if x[id] < 0 {
			x[id] = 0
		}
	}
}

func neighborIndexes(segs []crossing.Segment) (above, below map[string][]string) {
	above = map[string][]string{}
	below = map[string][]string{}
	for _, s := range segs {
		below[s.Top] = append(below[s.Top], s.Bottom)
		above[s.Bottom] = append(above[s.Bottom], s.Top)
	}
	return above, below
}

func posMap(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}
