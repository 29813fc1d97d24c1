// Package balance computes center of gravity and per-axle loads for a set of
// placed items. The tracker is incremental: the search engine adds and removes
// candidates in O(number of axles) instead of recomputing the whole load on
// every probe.
package balance

import (
	"fmt"

	"loadplan/internal/geometry"
)

// Axle is a load-bearing axle at a position along the vehicle's length axis.
type Axle struct {
	Position float64
	MaxLoad  float64
}

// ViolationKind distinguishes payload from per-axle overloads.
type ViolationKind string

const (
	ViolationPayload ViolationKind = "PAYLOAD_EXCEEDED"
	ViolationAxle    ViolationKind = "AXLE_OVERLOAD"
)

type Violation struct {
	Kind  ViolationKind
	Axle  int // index into the vehicle's axle list, -1 for payload
	Load  float64
	Limit float64
}

func (v Violation) String() string {
	if v.Kind == ViolationPayload {
		return fmt.Sprintf("total weight %.1f exceeds payload capacity %.1f", v.Load, v.Limit)
	}
	return fmt.Sprintf("axle %d load %.1f exceeds limit %.1f", v.Axle, v.Load, v.Limit)
}

// Tracker accumulates placed weight. Axles must be sorted by position; the
// constructor enforces this invariant on its own copy.
type Tracker struct {
	axles      []Axle
	maxPayload float64

	loads  []float64
	total  float64
	moment geometry.Vec // weight-scaled centroid sums
}

func NewTracker(axles []Axle, maxPayload float64) *Tracker {
	sorted := make([]Axle, len(axles))
	copy(sorted, axles)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Position < sorted[j-1].Position; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return &Tracker{
		axles:      sorted,
		maxPayload: maxPayload,
		loads:      make([]float64, len(sorted)),
	}
}

// Clone returns an independent copy, used by the packer to snapshot state
// before a repair attempt.
func (t *Tracker) Clone() *Tracker {
	c := &Tracker{
		axles:      t.axles,
		maxPayload: t.maxPayload,
		loads:      make([]float64, len(t.loads)),
		total:      t.total,
		moment:     t.moment,
	}
	copy(c.loads, t.loads)
	return c
}

func (t *Tracker) Add(box geometry.Box, weight float64) {
	t.apply(box, weight)
}

func (t *Tracker) Remove(box geometry.Box, weight float64) {
	t.apply(box, -weight)
}

func (t *Tracker) apply(box geometry.Box, weight float64) {
	c := box.Center()
	t.total += weight
	t.moment.X += weight * c.X
	t.moment.Y += weight * c.Y
	t.moment.Z += weight * c.Z
	for i, share := range t.shares(c.X) {
		t.loads[i] += weight * share
	}
}

// shares apportions a unit weight at longitudinal position x across the
// axles: linear interpolation between the two bracketing axles, and the
// standard lever-arm extrapolation (overloading the near axle, unloading the
// far one) for weight outside the wheelbase.
func (t *Tracker) shares(x float64) []float64 {
	shares := make([]float64, len(t.axles))
	switch len(t.axles) {
	case 0:
		return shares
	case 1:
		shares[0] = 1
		return shares
	}

	i := 0
	for i < len(t.axles)-2 && x > t.axles[i+1].Position {
		i++
	}
	a, b := t.axles[i], t.axles[i+1]
	span := b.Position - a.Position
	if span <= 0 {
		shares[i] = 1
		return shares
	}
	frac := (x - a.Position) / span
	shares[i] = 1 - frac
	shares[i+1] = frac
	return shares
}

func (t *Tracker) TotalWeight() float64 {
	return t.total
}

func (t *Tracker) CenterOfGravity() geometry.Vec {
	if t.total == 0 {
		return geometry.Vec{}
	}
	return geometry.Vec{
		X: t.moment.X / t.total,
		Y: t.moment.Y / t.total,
		Z: t.moment.Z / t.total,
	}
}

// AxleLoads returns the current load on each axle in position order.
func (t *Tracker) AxleLoads() []float64 {
	out := make([]float64, len(t.loads))
	copy(out, t.loads)
	return out
}

// Axles returns the tracker's axles in position order.
func (t *Tracker) Axles() []Axle {
	return t.axles
}

// Violations reports payload and axle overloads in the current state. eps
// absorbs floating-point accumulation noise.
func (t *Tracker) Violations(eps float64) []Violation {
	var out []Violation
	if t.total > t.maxPayload+eps {
		out = append(out, Violation{Kind: ViolationPayload, Axle: -1, Load: t.total, Limit: t.maxPayload})
	}
	for i, load := range t.loads {
		if load > t.axles[i].MaxLoad+eps {
			out = append(out, Violation{Kind: ViolationAxle, Axle: i, Load: load, Limit: t.axles[i].MaxLoad})
		}
	}
	return out
}

// Peek reports whether adding the candidate would keep payload and every axle
// within limits, without mutating the tracker. The second return value
// distinguishes a payload breach (true) from an axle breach (false) when the
// first is false.
func (t *Tracker) Peek(box geometry.Box, weight float64, eps float64) (ok bool, payloadBreach bool) {
	if t.total+weight > t.maxPayload+eps {
		return false, true
	}
	c := box.Center()
	for i, share := range t.shares(c.X) {
		if t.loads[i]+weight*share > t.axles[i].MaxLoad+eps {
			return false, false
		}
	}
	return true, false
}
