package force

import "math"

// quadNode is one node of a Barnes-Hut quadtree built over the current
// particle positions: either an empty region, a single-particle leaf, or
// an internal node summarising its four children as one point mass at
// their centre of mass.
type quadNode struct {
	x0, y0, size float64 // region bounds: [x0,x0+size) x [y0,y0+size)

	count    int // particles contained, 0 for an empty leaf
	massX    float64
	massY    float64
	children [4]*quadNode // nil until this leaf splits
}

func newQuadNode(x0, y0, size float64) *quadNode {
	return &quadNode{x0: x0, y0: y0, size: size}
}

// minQuadSize bounds how far a region may keep halving; two particles
// closer together than this are merged into one mass instead of
// recursing indefinitely.
const minQuadSize = 1e-6

// insert adds a particle at (x,y), splitting this leaf into four children
// the first time it would otherwise hold more than one particle.
func (n *quadNode) insert(x, y float64) {
	if n.count == 0 {
		n.count, n.massX, n.massY = 1, x, y
		return
	}

	if n.size < minQuadSize {
		total := float64(n.count)
		n.massX = (n.massX*total + x) / (total + 1)
		n.massY = (n.massY*total + y) / (total + 1)
		n.count++
		return
	}

	if n.children[0] == nil {
		n.split()
		// re-insert the particle already summarised by this node before
		// adding the new one, now that there is somewhere to put it.
		n.insertIntoChild(n.massX, n.massY)
	}

	n.insertIntoChild(x, y)
	total := float64(n.count)
	n.massX = (n.massX*total + x) / (total + 1)
	n.massY = (n.massY*total + y) / (total + 1)
	n.count++
}

func (n *quadNode) split() {
	half := n.size / 2
	n.children[0] = newQuadNode(n.x0, n.y0, half)
	n.children[1] = newQuadNode(n.x0+half, n.y0, half)
	n.children[2] = newQuadNode(n.x0, n.y0+half, half)
	n.children[3] = newQuadNode(n.x0+half, n.y0+half, half)
}

func (n *quadNode) insertIntoChild(x, y float64) {
	idx := n.quadrantOf(x, y)
	n.children[idx].insert(x, y)
}

func (n *quadNode) quadrantOf(x, y float64) int {
	half := n.size / 2
	right := 0
	if x >= n.x0+half {
		right = 1
	}
	bottom := 0
	if y >= n.y0+half {
		bottom = 1
	}
	return bottom*2 + right
}

// buildQuadtree constructs a Barnes-Hut tree covering every position in
// pos, padded slightly so a particle exactly on the boundary still falls
// inside a region.
func buildQuadtree(pos []Vec2) *quadNode {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		x, y := p.X.Float(), p.Y.Float()
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	size := math.Max(maxX-minX, maxY-minY) + 1
	root := newQuadNode(minX-0.5, minY-0.5, size+1)
	for _, p := range pos {
		root.insert(p.X.Float(), p.Y.Float())
	}
	return root
}

// repulsionAt accumulates the Barnes-Hut approximate repulsive force on a
// particle at (x,y) from every particle in the tree, treating any region
// whose size/distance ratio is below theta as a single point mass at its
// centre of mass instead of descending into it.
func (n *quadNode) repulsionAt(x, y float64, k, theta float64, fx, fy *float64) {
	if n == nil || n.count == 0 {
		return
	}
	dx, dy := x-n.massX, y-n.massY
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dist = 0.01
	}

	if n.children[0] == nil || n.size/dist < theta {
		mag := repulsiveForce(dist, k) * float64(n.count)
		*fx += (dx / dist) * mag
		*fy += (dy / dist) * mag
		return
	}

	for _, c := range n.children {
		c.repulsionAt(x, y, k, theta, fx, fy)
	}
}

// repulsiveForce is the classical Fruchterman-Reingold repulsion
// magnitude, k^2/d, between two particles a distance d apart.
func repulsiveForce(d, k float64) float64 {
	if d == 0 {
		d = 0.01
	}
	return (k * k) / d
}

// attractiveForce is the classical Fruchterman-Reingold attraction
// magnitude, d^2/k, for two particles connected by an edge a distance d
// apart.
func attractiveForce(d, k float64) float64 {
	return (d * d) / k
}
