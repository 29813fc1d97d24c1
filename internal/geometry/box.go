// Package geometry provides the axis-aligned primitives the planner is built
// on. All coordinates are in vehicle-local space: X runs along the cargo box
// length, Y across its width, Z up from the floor. A single length unit is
// assumed for an entire planning request.
package geometry

import "math"

type Vec struct {
	X float64
	Y float64
	Z float64
}

// Dims holds the length/width/height of an item or cargo box.
type Dims struct {
	L float64
	W float64
	H float64
}

func (d Dims) Volume() float64 {
	return d.L * d.W * d.H
}

// Box is an axis-aligned box anchored at its minimum corner.
type Box struct {
	Min Vec
	Dim Dims
}

func NewBox(min Vec, dim Dims) Box {
	return Box{Min: min, Dim: dim}
}

func (b Box) Max() Vec {
	return Vec{
		X: b.Min.X + b.Dim.L,
		Y: b.Min.Y + b.Dim.W,
		Z: b.Min.Z + b.Dim.H,
	}
}

func (b Box) Center() Vec {
	return Vec{
		X: b.Min.X + b.Dim.L/2,
		Y: b.Min.Y + b.Dim.W/2,
		Z: b.Min.Z + b.Dim.H/2,
	}
}

func (b Box) Volume() float64 {
	return b.Dim.Volume()
}

// ContainsPoint reports whether p lies strictly inside b (not on a face).
func (b Box) ContainsPoint(p Vec, eps float64) bool {
	max := b.Max()
	return p.X > b.Min.X+eps && p.X < max.X-eps &&
		p.Y > b.Min.Y+eps && p.Y < max.Y-eps &&
		p.Z > b.Min.Z+eps && p.Z < max.Z-eps
}

// Intersects reports whether a and b share interior volume. Boxes that merely
// touch on a face, edge or corner do not intersect; overlaps up to eps on any
// axis are tolerated as floating-point noise.
func Intersects(a, b Box, eps float64) bool {
	return axisOverlap(a.Min.X, a.Max().X, b.Min.X, b.Max().X) > eps &&
		axisOverlap(a.Min.Y, a.Max().Y, b.Min.Y, b.Max().Y) > eps &&
		axisOverlap(a.Min.Z, a.Max().Z, b.Min.Z, b.Max().Z) > eps
}

// Contains reports whether inner lies entirely within outer, with eps slack on
// every face.
func Contains(outer, inner Box, eps float64) bool {
	oMax := outer.Max()
	iMax := inner.Max()
	return inner.Min.X >= outer.Min.X-eps && iMax.X <= oMax.X+eps &&
		inner.Min.Y >= outer.Min.Y-eps && iMax.Y <= oMax.Y+eps &&
		inner.Min.Z >= outer.Min.Z-eps && iMax.Z <= oMax.Z+eps
}

// ContactFootprint returns the horizontal overlap area between upper's bottom
// face and lower's top face, or 0 when upper does not rest on lower (their Z
// faces are further than eps apart).
func ContactFootprint(lower, upper Box, eps float64) float64 {
	if math.Abs(lower.Max().Z-upper.Min.Z) > eps {
		return 0
	}
	ox := axisOverlap(lower.Min.X, lower.Max().X, upper.Min.X, upper.Max().X)
	oy := axisOverlap(lower.Min.Y, lower.Max().Y, upper.Min.Y, upper.Max().Y)
	if ox <= 0 || oy <= 0 {
		return 0
	}
	return ox * oy
}

// SurfaceDistance returns the straight-line distance between the surfaces of
// a and b. Touching or overlapping boxes are at distance 0.
func SurfaceDistance(a, b Box) float64 {
	dx := axisGap(a.Min.X, a.Max().X, b.Min.X, b.Max().X)
	dy := axisGap(a.Min.Y, a.Max().Y, b.Min.Y, b.Max().Y)
	dz := axisGap(a.Min.Z, a.Max().Z, b.Min.Z, b.Max().Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SharesFace reports whether a and b are in direct contact: touching on some
// axis while overlapping on the other two.
func SharesFace(a, b Box, eps float64) bool {
	ox := axisOverlap(a.Min.X, a.Max().X, b.Min.X, b.Max().X)
	oy := axisOverlap(a.Min.Y, a.Max().Y, b.Min.Y, b.Max().Y)
	oz := axisOverlap(a.Min.Z, a.Max().Z, b.Min.Z, b.Max().Z)

	touchX := math.Abs(ox) <= eps
	touchY := math.Abs(oy) <= eps
	touchZ := math.Abs(oz) <= eps

	switch {
	case touchX:
		return oy > eps && oz > eps
	case touchY:
		return ox > eps && oz > eps
	case touchZ:
		return ox > eps && oy > eps
	}
	return false
}

func axisOverlap(aMin, aMax, bMin, bMax float64) float64 {
	return math.Min(aMax, bMax) - math.Max(aMin, bMin)
}

func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	if g := bMin - aMax; g > 0 {
		return g
	}
	if g := aMin - bMax; g > 0 {
		return g
	}
	return 0
}
