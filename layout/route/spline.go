package route

import "github.com/matzehuels/layerflow/pkg/ir"

// longEdgeThreshold marks an edge "long" for the purposes of the reduced
// horizontal control-point displacement described in the spline routing
// contract.
const longEdgeThreshold = 3

// splineDirect draws a single cubic Bezier from the source's bottom-centre
// to the target's top-centre. Control points sit at a vertical offset of
// tension*deltaY; a diagonal edge also displaces them horizontally by
// 0.5*|deltaX| (0.3*|deltaX| once |deltaY| reaches longEdgeThreshold
// cells).
func splineDirect(from, to Geometry, tension float64) ir.EdgePath[int] {
	start, end := bottomCenter(from), topCenter(to)
	return ir.EdgePath[int]{
		Kind:      ir.PathSpline,
		Waypoints: []ir.Point[int]{start, end},
		Controls:  bezierControls(start, end, tension),
	}
}

// splineGuided draws a single cubic Bezier whose control points are
// pulled toward the middle dummy node's x-coordinate, so the curve is
// guided through the intermediate-level space a multi-segment path would
// otherwise traverse with hard corners.
func splineGuided(ids []string, geo map[string]Geometry, tension float64) ir.EdgePath[int] {
	start := bottomCenter(geo[ids[0]])
	end := topCenter(geo[ids[len(ids)-1]])

	midIdx := len(ids) / 2
	mid := geo[ids[midIdx]]
	guideX := mid.X + mid.Width/2

	controls := bezierControls(start, end, tension)
	controls[0].X = guideX
	controls[1].X = guideX

	return ir.EdgePath[int]{
		Kind:      ir.PathSpline,
		Waypoints: []ir.Point[int]{start, end},
		Controls:  controls,
	}
}

func bezierControls(start, end ir.Point[int], tension float64) []ir.Point[int] {
	deltaY := end.Y - start.Y
	deltaX := end.X - start.X

	vOffset := int(float64(deltaY) * tension)
	hFactor := 0.5
	if abs(deltaY) >= longEdgeThreshold {
		hFactor = 0.3
	}
	hOffset := int(float64(abs(deltaX)) * hFactor)
	if deltaX < 0 {
		hOffset = -hOffset
	}

	cp1 := ir.Point[int]{X: start.X + hOffset, Y: start.Y + vOffset}
	cp2 := ir.Point[int]{X: end.X - hOffset, Y: end.Y - vOffset}
	return []ir.Point[int]{cp1, cp2}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
