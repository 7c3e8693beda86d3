package force

import "math"

// fixedShift is the binary point of the Q16.16 fixed-point format: 16
// fractional bits give sub-cell precision while staying well within
// int64 range for any graph this solver targets.
const fixedShift = 16
const fixedOne = 1 << fixedShift

// Fixed is a Q16.16 fixed-point number. Node positions are stored in this
// format so a solve with a given seed produces bit-identical output
// regardless of the host platform's floating-point rounding behaviour.
type Fixed int64

// FixedFromFloat converts a float64 to its nearest Q16.16 representation.
func FixedFromFloat(f float64) Fixed {
	return Fixed(math.Round(f * fixedOne))
}

// Float converts back to a float64 for use in the solver's internal force
// math (square roots, divisions).
func (f Fixed) Float() float64 {
	return float64(f) / fixedOne
}

// Vec2 is a fixed-point 2D vector: a node's position or the accumulated
// displacement applied to it in one iteration.
type Vec2 struct {
	X, Y Fixed
}

func vecFromFloat(x, y float64) Vec2 {
	return Vec2{X: FixedFromFloat(x), Y: FixedFromFloat(y)}
}

func (v Vec2) add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) length() float64 {
	x, y := v.X.Float(), v.Y.Float()
	return math.Sqrt(x*x + y*y)
}
