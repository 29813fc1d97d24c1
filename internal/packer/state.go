package packer

import (
	"math"
	"sort"

	"loadplan/internal/balance"
	"loadplan/internal/domain"
	"loadplan/internal/geometry"
	"loadplan/internal/segregation"
)

// support records weight transferred from a stacked item onto one of the
// items directly beneath it.
type support struct {
	lowerID string
	weight  float64
}

type placedRec struct {
	item        domain.CargoItem
	orient      geometry.Orientation
	box         geometry.Box
	rank        int
	weightOnTop float64
	supports    []support
}

// state is the mutable search state for a single Pack call. Nothing here is
// shared between requests.
type state struct {
	p       *Packer
	placed  []placedRec
	points  []geometry.Vec
	tracker *balance.Tracker
}

type failKind int

const (
	failNone failKind = iota
	failEnvelope
	failOverlap
	failSupport
	failSegregation
	failAxle
	failPayload
)

// tryPlace scans the item's allowed orientations against every candidate
// point in preference order and commits the first fully feasible position.
// For hazard-bearing items the point list is extended with positions offset
// from conflicting cargo by the required separation, since ordinary extreme
// points always hug existing boxes.
func (s *state) tryPlace(item domain.CargoItem, rank int) (bool, failTally) {
	var tally failTally
	base := s.orderedPoints()
	for _, orient := range item.Orientations() {
		dims := orient.Apply(item.Dims)
		pts := append(append([]geometry.Vec{}, base...), s.separationPoints(item, dims)...)
		for _, pt := range pts {
			box := geometry.NewBox(pt, dims)
			tally.candidates++
			kind, sups := s.evaluate(item, box)
			if kind == failNone {
				s.commit(item, orient, box, rank, sups)
				return true, tally
			}
			tally.record(kind)
		}
	}
	return false, tally
}

func (t *failTally) record(kind failKind) {
	switch kind {
	case failEnvelope, failOverlap:
		t.noFit++
	case failSupport:
		t.support++
	case failSegregation:
		t.segregation++
	case failAxle:
		t.axle++
	case failPayload:
		t.payload++
	}
}

// evaluate runs the full constraint chain for one candidate box: envelope,
// overlap, stacking support, segregation against every placed item, then
// provisional axle and payload limits.
func (s *state) evaluate(item domain.CargoItem, box geometry.Box) (failKind, []support) {
	eps := s.p.opts.Epsilon

	if !geometry.Contains(s.p.vehicle.Box(), box, eps) {
		return failEnvelope, nil
	}
	for i := range s.placed {
		if geometry.Intersects(box, s.placed[i].box, eps) {
			return failOverlap, nil
		}
	}

	var sups []support
	if box.Min.Z > eps {
		var totalFootprint float64
		area := box.Dim.L * box.Dim.W
		for i := range s.placed {
			fp := geometry.ContactFootprint(s.placed[i].box, box, eps)
			if fp <= 0 {
				continue
			}
			sups = append(sups, support{lowerID: s.placed[i].item.ID, weight: fp})
			totalFootprint += fp
		}
		if totalFootprint < s.p.opts.MinSupportFraction*area {
			return failSupport, nil
		}
		// Supporters carry the item's weight in proportion to their
		// share of the contact footprint.
		for k := range sups {
			sups[k].weight = item.Weight * sups[k].weight / totalFootprint
		}
		for _, sup := range sups {
			rec := s.byID(sup.lowerID)
			if rec.item.Fragile {
				return failSupport, nil
			}
			if rec.item.MaxStackWeight != nil && rec.weightOnTop+sup.weight > *rec.item.MaxStackWeight+eps {
				return failSupport, nil
			}
		}
	}

	for i := range s.placed {
		res := s.p.eval.Check(item.Hazard, box, s.placed[i].item.Hazard, s.placed[i].box, eps)
		if !res.OK {
			return failSegregation, nil
		}
	}

	if ok, payloadBreach := s.tracker.Peek(box, item.Weight, eps); !ok {
		if payloadBreach {
			return failPayload, nil
		}
		return failAxle, nil
	}
	return failNone, sups
}

func (s *state) commit(item domain.CargoItem, orient geometry.Orientation, box geometry.Box, rank int, sups []support) {
	for _, sup := range sups {
		s.byID(sup.lowerID).weightOnTop += sup.weight
	}
	s.placed = append(s.placed, placedRec{
		item:     item,
		orient:   orient,
		box:      box,
		rank:     rank,
		supports: sups,
	})
	s.tracker.Add(box, item.Weight)
	s.addPoints(box)
}

func (s *state) removeAt(idx int) placedRec {
	rec := s.placed[idx]
	for _, sup := range rec.supports {
		s.byID(sup.lowerID).weightOnTop -= sup.weight
	}
	s.placed = append(s.placed[:idx:idx], s.placed[idx+1:]...)
	s.tracker.Remove(rec.box, rec.item.Weight)
	// The freed minimum corner is already a candidate point: placements
	// only ever happen at points and points are never discarded.
	return rec
}

// tryRepair lifts out up to MaxRepairs lower-priority placed items, one at a
// time, to make room for a stuck item. A repair only commits when both the
// stuck item and the displaced item end up placed; otherwise the state rolls
// back to the snapshot.
func (s *state) tryRepair(item domain.CargoItem, rank int) bool {
	attempts := 0
	for idx := len(s.placed) - 1; idx >= 0 && attempts < s.p.opts.MaxRepairs; idx-- {
		victim := s.placed[idx]
		if victim.rank <= rank {
			continue
		}
		if victim.weightOnTop > s.p.opts.Epsilon {
			// Never pull an item out from under cargo resting on it.
			continue
		}
		attempts++
		snapshot := s.snapshot()
		s.removeAt(idx)
		if ok, _ := s.tryPlace(item, rank); ok {
			if ok, _ := s.tryPlace(victim.item, victim.rank); ok {
				return true
			}
		}
		s.restore(snapshot)
	}
	return false
}

type stateSnapshot struct {
	placed  []placedRec
	points  []geometry.Vec
	tracker *balance.Tracker
}

func (s *state) snapshot() stateSnapshot {
	placed := make([]placedRec, len(s.placed))
	copy(placed, s.placed)
	for i := range placed {
		sups := make([]support, len(placed[i].supports))
		copy(sups, placed[i].supports)
		placed[i].supports = sups
	}
	points := make([]geometry.Vec, len(s.points))
	copy(points, s.points)
	return stateSnapshot{placed: placed, points: points, tracker: s.tracker.Clone()}
}

func (s *state) restore(snap stateSnapshot) {
	s.placed = snap.placed
	s.points = snap.points
	s.tracker = snap.tracker
}

func (s *state) byID(id string) *placedRec {
	for i := range s.placed {
		if s.placed[i].item.ID == id {
			return &s.placed[i]
		}
	}
	return nil
}

// addPoints derives new extreme points from the placed box: its far corners
// along each axis, plus the floor projections of the two horizontal ones.
func (s *state) addPoints(box geometry.Box) {
	max := box.Max()
	candidates := []geometry.Vec{
		{X: max.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Min.Y, Z: max.Z},
		{X: max.X, Y: box.Min.Y, Z: 0},
		{X: box.Min.X, Y: max.Y, Z: 0},
	}
	eps := s.p.opts.Epsilon
	vbox := s.p.vehicle.Box()
	for _, c := range candidates {
		if c.X >= vbox.Dim.L-eps || c.Y >= vbox.Dim.W-eps || c.Z >= vbox.Dim.H-eps {
			continue
		}
		if s.hasPoint(c, eps) {
			continue
		}
		inside := false
		for i := range s.placed {
			if s.placed[i].box.ContainsPoint(c, eps) {
				inside = true
				break
			}
		}
		if !inside {
			s.points = append(s.points, c)
		}
	}
}

// awayFromClearance is the floor gap inserted between AWAY_FROM cargo when
// deriving fallback points: any positive surface gap breaks direct contact.
const awayFromClearance = 1.0

// separationPoints derives floor positions that satisfy SEPARATED and
// AWAY_FROM rules against already-placed hazardous cargo: slots along the
// length axis offset from each conflicting box by the rule's distance. They
// are appended after the preferred extreme points so compliant near positions
// still win.
func (s *state) separationPoints(item domain.CargoItem, dims geometry.Dims) []geometry.Vec {
	if item.Hazard == nil {
		return nil
	}
	var pts []geometry.Vec
	for i := range s.placed {
		other := s.placed[i].item.Hazard
		if other == nil {
			continue
		}
		rule := s.p.eval.Relation(*item.Hazard, *other)
		var clearance float64
		switch rule.Relation {
		case segregation.RelationSeparated:
			clearance = rule.MinDistance
		case segregation.RelationAwayFrom:
			clearance = awayFromClearance
		default:
			continue
		}
		box := s.placed[i].box
		for _, y := range []float64{0, box.Min.Y} {
			pts = append(pts,
				geometry.Vec{X: box.Max().X + clearance, Y: y, Z: 0},
				geometry.Vec{X: box.Min.X - clearance - dims.L, Y: y, Z: 0},
			)
		}
	}
	vdims := s.p.vehicle.Dims
	out := pts[:0]
	for _, pt := range pts {
		if pt.X < 0 || pt.X+dims.L > vdims.L || pt.Y+dims.W > vdims.W {
			continue
		}
		out = append(out, pt)
	}
	return out
}

func (s *state) hasPoint(p geometry.Vec, eps float64) bool {
	for _, q := range s.points {
		if math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps && math.Abs(p.Z-q.Z) <= eps {
			return true
		}
	}
	return false
}

// orderedPoints returns the candidate points in preference order: lowest
// first to keep the center of gravity down, then nearest the loading door,
// then lexicographic X, Y for stable tie-breaks.
func (s *state) orderedPoints() []geometry.Vec {
	pts := make([]geometry.Vec, len(s.points))
	copy(pts, s.points)
	door := s.p.vehicle.DoorPosition
	sort.SliceStable(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		da, db := math.Abs(door-a.X), math.Abs(door-b.X)
		if da != db {
			return da < db
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return pts
}

func (s *state) placements() []domain.PlacedItem {
	if len(s.placed) == 0 {
		return nil
	}
	out := make([]domain.PlacedItem, len(s.placed))
	for i, rec := range s.placed {
		out[i] = domain.PlacedItem{
			Item:         rec.item,
			Orientation:  rec.orient,
			Position:     rec.box.Min,
			LoadSequence: i + 1,
		}
	}
	return out
}
