// Package force implements the peer layout path: a Fruchterman-Reingold
// force-directed solver producing a flat (single-level) placement instead
// of the Sugiyama layered pipeline.
package force

import (
	"math"
	"math/rand"

	"github.com/matzehuels/layerflow/pkg/graph"
)

// defaultIterationCap is the solver's fixed iteration budget absent an
// explicit Options.Iterations.
const defaultIterationCap = 200

// Options configures Solve.
type Options struct {
	Seed       int64
	Iterations int // zero selects defaultIterationCap
	Theta      float64 // zero selects 0.8
	Exact      bool    // true forces O(n^2) repulsion instead of Barnes-Hut
	Margin     int
}

// Result is the solver's flat placement: one position per node id, plus
// the frame dimensions those positions were computed against.
type Result struct {
	Positions map[string]Vec2
	Width     int
	Height    int
}

// Solve runs Fruchterman-Reingold over v, returning deterministic node
// positions for the given seed. Every node ends up at level 0 in the
// caller's eventual IR; this package only computes (x,y).
func Solve(v *graph.View, opts Options) Result {
	nodes := v.Nodes()
	n := len(nodes)
	if n == 0 {
		return Result{Positions: map[string]Vec2{}}
	}

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = defaultIterationCap
	}
	theta := opts.Theta
	if theta == 0 {
		theta = 0.8
	}

	area := 10000.0 * float64(n)
	side := math.Sqrt(area)
	k := math.Sqrt(area / float64(n))

	rng := rand.New(rand.NewSource(opts.Seed))
	ids := make([]string, n)
	pos := make([]Vec2, n)
	index := make(map[string]int, n)
	for i, nd := range nodes {
		ids[i] = nd.ID
		index[nd.ID] = i
		pos[i] = vecFromFloat(rng.Float64()*side, rng.Float64()*side)
	}

	edges := v.Edges()
	edgeIdx := make([][2]int, 0, len(edges))
	for _, e := range edges {
		if e.From == e.To {
			continue // self-loops contribute no attractive force
		}
		a, aok := index[e.From]
		b, bok := index[e.To]
		if aok && bok {
			edgeIdx = append(edgeIdx, [2]int{a, b})
		}
	}

	for iter := 0; iter < iterations; iter++ {
		temperature := k * (1 - float64(iter)/float64(iterations))
		disp := make([]Vec2, n)

		if opts.Exact {
			applyExactRepulsion(pos, k, disp)
		} else {
			tree := buildQuadtree(pos)
			applyBarnesHutRepulsion(pos, tree, k, theta, disp)
		}
		applyAttraction(pos, edgeIdx, k, disp)

		total := limitAndApply(pos, disp, temperature, side)
		if total < k/1000 {
			break
		}
	}

	margin := opts.Margin
	positions := make(map[string]Vec2, n)
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range pos {
		minX = math.Min(minX, p.X.Float())
		minY = math.Min(minY, p.Y.Float())
	}
	for i, id := range ids {
		x := pos[i].X.Float() - minX + float64(margin)
		y := pos[i].Y.Float() - minY + float64(margin)
		positions[id] = vecFromFloat(x, y)
	}

	maxX, maxY := 0.0, 0.0
	for _, p := range positions {
		maxX = math.Max(maxX, p.X.Float())
		maxY = math.Max(maxY, p.Y.Float())
	}

	return Result{
		Positions: positions,
		Width:     int(math.Round(maxX)) + margin,
		Height:    int(math.Round(maxY)) + margin,
	}
}

func applyExactRepulsion(pos []Vec2, k float64, disp []Vec2) {
	n := len(pos)
	for i := 0; i < n; i++ {
		fx, fy := 0.0, 0.0
		xi, yi := pos[i].X.Float(), pos[i].Y.Float()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dx, dy := xi-pos[j].X.Float(), yi-pos[j].Y.Float()
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist == 0 {
				dist = 0.01
			}
			mag := repulsiveForce(dist, k)
			fx += (dx / dist) * mag
			fy += (dy / dist) * mag
		}
		disp[i] = disp[i].add(vecFromFloat(fx, fy))
	}
}

func applyBarnesHutRepulsion(pos []Vec2, tree *quadNode, k, theta float64, disp []Vec2) {
	for i, p := range pos {
		x, y := p.X.Float(), p.Y.Float()
		fx, fy := 0.0, 0.0
		tree.repulsionAt(x, y, k, theta, &fx, &fy)
		disp[i] = disp[i].add(vecFromFloat(fx, fy))
	}
}

func applyAttraction(pos []Vec2, edges [][2]int, k float64, disp []Vec2) {
	for _, e := range edges {
		a, b := e[0], e[1]
		dx := pos[a].X.Float() - pos[b].X.Float()
		dy := pos[a].Y.Float() - pos[b].Y.Float()
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			dist = 0.01
		}
		mag := attractiveForce(dist, k)
		fx, fy := (dx/dist)*mag, (dy/dist)*mag

		disp[a] = disp[a].sub(vecFromFloat(fx, fy))
		disp[b] = disp[b].add(vecFromFloat(fx, fy))
	}
}

// limitAndApply clamps each node's displacement to at most temperature,
// applies it (keeping positions within [0,side]), and returns the total
// displacement magnitude across all nodes for the termination check.
func limitAndApply(pos []Vec2, disp []Vec2, temperature, side float64) float64 {
	total := 0.0
	for i := range pos {
		length := disp[i].length()
		if length == 0 {
			continue
		}
		capped := math.Min(length, temperature)
		scale := capped / length
		dx, dy := disp[i].X.Float()*scale, disp[i].Y.Float()*scale

		x := clamp(pos[i].X.Float()+dx, 0, side)
		y := clamp(pos[i].Y.Float()+dy, 0, side)
		pos[i] = vecFromFloat(x, y)
		total += capped
	}
	return total
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
