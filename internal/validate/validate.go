// Package validate re-verifies a finished plan from scratch. It never trusts
// the search engine's incremental bookkeeping: every invariant is recomputed
// against the final placements, so drift in the packer surfaces here as an
// internal defect instead of shipping as an unsafe plan.
package validate

import (
	"fmt"

	"loadplan/internal/balance"
	"loadplan/internal/domain"
	"loadplan/internal/geometry"
	"loadplan/internal/segregation"
)

// Violation describes one broken invariant in a plan.
type Violation struct {
	Kind   string
	ItemID string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: item %s: %s", v.Kind, v.ItemID, v.Detail)
}

const (
	KindOutOfBounds     = "OUT_OF_BOUNDS"
	KindOverlap         = "OVERLAP"
	KindSegregation     = "SEGREGATION"
	KindUnsupported     = "UNSUPPORTED"
	KindStackOverweight = "STACK_OVERWEIGHT"
	KindWeightLimit     = "WEIGHT_LIMIT"
)

// CheckPlan verifies every placement invariant: containment, pairwise
// non-overlap, segregation compliance, stacking support and stack-weight
// limits, and payload/axle limits. It is a pure function of its inputs and
// idempotent: checking the same plan twice yields the same verdict.
func CheckPlan(placements []domain.PlacedItem, vehicle domain.Vehicle, eval *segregation.Evaluator, opts domain.Options) []Violation {
	var out []Violation
	eps := opts.Epsilon
	vbox := vehicle.Box()

	boxes := make([]geometry.Box, len(placements))
	for i, p := range placements {
		boxes[i] = p.Box()
	}

	for i, p := range placements {
		if !geometry.Contains(vbox, boxes[i], eps) {
			out = append(out, Violation{
				Kind:   KindOutOfBounds,
				ItemID: p.Item.ID,
				Detail: fmt.Sprintf("box at (%.1f, %.1f, %.1f) leaves the vehicle envelope", p.Position.X, p.Position.Y, p.Position.Z),
			})
		}
	}

	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if geometry.Intersects(boxes[i], boxes[j], eps) {
				out = append(out, Violation{
					Kind:   KindOverlap,
					ItemID: placements[i].Item.ID,
					Detail: fmt.Sprintf("overlaps item %s", placements[j].Item.ID),
				})
			}
			res := eval.Check(placements[i].Item.Hazard, boxes[i], placements[j].Item.Hazard, boxes[j], eps)
			if !res.OK {
				out = append(out, Violation{
					Kind:   KindSegregation,
					ItemID: placements[i].Item.ID,
					Detail: fmt.Sprintf("against item %s: %s", placements[j].Item.ID, res.Reason),
				})
			}
		}
	}

	out = append(out, checkStacking(placements, boxes, opts)...)

	tracker := balance.NewTracker(trackerAxles(vehicle), vehicle.MaxPayload)
	for i := range placements {
		tracker.Add(boxes[i], placements[i].Item.Weight)
	}
	for _, v := range tracker.Violations(eps) {
		out = append(out, Violation{Kind: KindWeightLimit, ItemID: "-", Detail: v.String()})
	}

	return out
}

// checkStacking recomputes support fractions and stack loads for every
// elevated item.
func checkStacking(placements []domain.PlacedItem, boxes []geometry.Box, opts domain.Options) []Violation {
	var out []Violation
	eps := opts.Epsilon
	stackLoad := make([]float64, len(placements))

	for i, p := range placements {
		if boxes[i].Min.Z <= eps {
			continue
		}
		area := boxes[i].Dim.L * boxes[i].Dim.W
		var total float64
		footprints := make([]float64, len(placements))
		for j := range placements {
			if j == i {
				continue
			}
			fp := geometry.ContactFootprint(boxes[j], boxes[i], eps)
			footprints[j] = fp
			total += fp
		}
		if total < opts.MinSupportFraction*area {
			out = append(out, Violation{
				Kind:   KindUnsupported,
				ItemID: p.Item.ID,
				Detail: fmt.Sprintf("supported footprint %.2f of required %.2f", total/area, opts.MinSupportFraction),
			})
			continue
		}
		for j := range placements {
			if footprints[j] <= 0 {
				continue
			}
			stackLoad[j] += p.Item.Weight * footprints[j] / total
		}
	}

	for j, p := range placements {
		if stackLoad[j] <= 0 {
			continue
		}
		if p.Item.Fragile {
			out = append(out, Violation{
				Kind:   KindStackOverweight,
				ItemID: p.Item.ID,
				Detail: fmt.Sprintf("fragile item carries %.1f of stacked weight", stackLoad[j]),
			})
			continue
		}
		if p.Item.MaxStackWeight != nil && stackLoad[j] > *p.Item.MaxStackWeight+eps {
			out = append(out, Violation{
				Kind:   KindStackOverweight,
				ItemID: p.Item.ID,
				Detail: fmt.Sprintf("stack load %.1f exceeds limit %.1f", stackLoad[j], *p.Item.MaxStackWeight),
			})
		}
	}
	return out
}

// Score computes efficiency statistics for a validated plan.
func Score(placements []domain.PlacedItem, vehicle domain.Vehicle) domain.EfficiencyStats {
	var volume, weight float64
	for _, p := range placements {
		volume += p.Item.Volume()
		weight += p.Item.Weight
	}
	stats := domain.EfficiencyStats{
		ItemCount:               len(placements),
		RemainingWeightCapacity: vehicle.MaxPayload - weight,
	}
	if v := vehicle.Dims.Volume(); v > 0 {
		stats.VolumeUtilization = volume / v
	}
	if vehicle.MaxPayload > 0 {
		stats.WeightUtilization = weight / vehicle.MaxPayload
	}
	return stats
}

func trackerAxles(vehicle domain.Vehicle) []balance.Axle {
	axles := make([]balance.Axle, len(vehicle.Axles))
	for i, a := range vehicle.Axles {
		axles[i] = balance.Axle{Position: a.Position, MaxLoad: a.MaxLoad}
	}
	return axles
}
