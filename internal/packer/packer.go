// Package packer contains the placement search engine: an extreme-point
// heuristic that incrementally fills the vehicle while consulting the
// segregation evaluator and the weight and balance tracker on every candidate
// position. The search is deterministic and budget-capped; 3D packing under
// segregation constraints is NP-hard, so the goal is an explainable
// good-enough plan, not a global optimum.
package packer

import (
	"context"
	"sort"
	"time"

	"loadplan/internal/balance"
	"loadplan/internal/domain"
	"loadplan/internal/geometry"
	"loadplan/internal/segregation"
)

// Result is the raw outcome of a packing run, before independent validation.
type Result struct {
	Placements     []domain.PlacedItem
	Unplaced       []domain.UnplacedItem
	BudgetExceeded bool
}

type Packer struct {
	vehicle domain.Vehicle
	eval    *segregation.Evaluator
	opts    domain.Options
}

func New(vehicle domain.Vehicle, eval *segregation.Evaluator, opts domain.Options) *Packer {
	return &Packer{vehicle: vehicle, eval: eval, opts: opts}
}

// Pack places as many items as constraints and budget allow. Identical inputs
// produce identical results: sorts are stable with id tie-breaks and the
// candidate-point ordering is fixed.
func (p *Packer) Pack(ctx context.Context, items []domain.CargoItem) Result {
	start := time.Now()
	sorted := p.prioritize(items)
	st := p.newState()

	overBudget := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return p.opts.TimeBudget > 0 && time.Since(start) > p.opts.TimeBudget
	}

	var res Result
	type stuckItem struct {
		item  domain.CargoItem
		rank  int
		tally failTally
	}
	var deferred []stuckItem

	i := 0
	for ; i < len(sorted); i++ {
		if overBudget() {
			res.BudgetExceeded = true
			break
		}
		if ok, tally := st.tryPlace(sorted[i], i); !ok {
			deferred = append(deferred, stuckItem{item: sorted[i], rank: i, tally: tally})
		}
	}
	for ; i < len(sorted); i++ {
		res.Unplaced = append(res.Unplaced, domain.UnplacedItem{ItemID: sorted[i].ID, Reason: domain.ReasonBudgetExhausted})
	}

	// Second pass: by now the landscape has more placed items and extreme
	// points, so a full re-scan can succeed where the first pass did not;
	// after that, bounded repair instead of open-ended backtracking.
	for _, d := range deferred {
		if overBudget() {
			res.BudgetExceeded = true
			res.Unplaced = append(res.Unplaced, domain.UnplacedItem{ItemID: d.item.ID, Reason: domain.ReasonBudgetExhausted})
			continue
		}
		ok, tally := st.tryPlace(d.item, d.rank)
		if ok {
			continue
		}
		if st.tryRepair(d.item, d.rank) {
			continue
		}
		tally.merge(d.tally)
		res.Unplaced = append(res.Unplaced, domain.UnplacedItem{ItemID: d.item.ID, Reason: tally.reason()})
	}

	res.Placements = st.placements()
	return res
}

// prioritize orders items volume-descending with hazard-restricted items
// first: placing the most constrained items early reduces later repair work.
// Ties break on item id for reproducibility.
func (p *Packer) prioritize(items []domain.CargoItem) []domain.CargoItem {
	sorted := make([]domain.CargoItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ra, rb := p.restricted(a), p.restricted(b)
		if ra != rb {
			return ra
		}
		if a.Volume() != b.Volume() {
			return a.Volume() > b.Volume()
		}
		return a.ID < b.ID
	})
	return sorted
}

func (p *Packer) restricted(item domain.CargoItem) bool {
	if item.Hazard == nil {
		return false
	}
	for _, class := range item.Hazard.Classes() {
		if p.eval.Table().Restrictive(class) {
			return true
		}
	}
	return false
}

// failTally records which constraint blocked each rejected candidate so the
// dominant blocker can be reported for an unplaceable item.
type failTally struct {
	candidates  int
	noFit       int // outside the envelope or overlapping placed cargo
	support     int
	segregation int
	axle        int
	payload     int
}

func (t *failTally) merge(other failTally) {
	t.candidates += other.candidates
	t.noFit += other.noFit
	t.support += other.support
	t.segregation += other.segregation
	t.axle += other.axle
	t.payload += other.payload
}

func (t *failTally) reason() domain.UnplacedReason {
	if t.candidates == 0 {
		return domain.ReasonExceedsVehicleEnvelope
	}
	// noFit is the baseline; a specific constraint that blocked at least as
	// many candidates is the more useful report.
	best := domain.ReasonExceedsVehicleEnvelope
	bestCount := t.noFit
	for _, c := range []struct {
		count  int
		reason domain.UnplacedReason
	}{
		{t.support, domain.ReasonUnsupportedStack},
		{t.axle, domain.ReasonAxleLoadExceeded},
		{t.payload, domain.ReasonWeightCapacityExceeded},
		{t.segregation, domain.ReasonNoSegregationPosition},
	} {
		if c.count > 0 && c.count >= bestCount {
			best = c.reason
			bestCount = c.count
		}
	}
	return best
}

func (p *Packer) newState() *state {
	axles := make([]balance.Axle, len(p.vehicle.Axles))
	for i, a := range p.vehicle.Axles {
		axles[i] = balance.Axle{Position: a.Position, MaxLoad: a.MaxLoad}
	}
	return &state{
		p:       p,
		points:  []geometry.Vec{{}},
		tracker: balance.NewTracker(axles, p.vehicle.MaxPayload),
	}
}
