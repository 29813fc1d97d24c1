// Package service hosts the planning orchestrator, the only component with
// external I/O concerns. A Planner is safe to share across goroutines: every
// call allocates its own search state.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loadplan/internal/domain"
	"loadplan/internal/metrics"
	"loadplan/internal/packer"
	"loadplan/internal/segregation"
	"loadplan/internal/validate"
)

type Planner struct {
	eval    *segregation.Evaluator
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewPlanner wires a planner against a segregation evaluator. logger must not
// be nil; rec may be nil to disable metrics.
func NewPlanner(eval *segregation.Evaluator, logger *zap.Logger, rec *metrics.Recorder) *Planner {
	return &Planner{eval: eval, logger: logger, metrics: rec}
}

// Plan validates the request, runs the placement search under its budget,
// independently re-verifies the result and classifies it. Infeasibility is a
// result, not an error; only malformed input and internal consistency
// failures return errors.
func (p *Planner) Plan(ctx context.Context, req domain.PlanRequest) (*domain.LoadPlan, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	vehicle, items, opts, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	if err := p.checkHazardClasses(items); err != nil {
		return nil, err
	}

	searchable, precheckUnplaced := p.precheck(vehicle, items)

	plan := &domain.LoadPlan{
		ID:        planID(req),
		VehicleID: vehicle.ID,
		Unplaced:  precheckUnplaced,
	}

	if len(searchable) > 0 {
		result := packer.New(vehicle, p.eval, opts).Pack(ctx, searchable)
		plan.Placements = result.Placements
		plan.Unplaced = append(plan.Unplaced, result.Unplaced...)
		plan.BudgetExceeded = result.BudgetExceeded
	}

	if violations := validate.CheckPlan(plan.Placements, vehicle, p.eval, opts); len(violations) > 0 {
		p.logPlanDefect(plan, violations)
		return nil, fmt.Errorf("%w: %d invariant(s) broken in search result", domain.ErrInternalConsistency, len(violations))
	}

	plan.Efficiency = validate.Score(plan.Placements, vehicle)
	plan.Feasibility = classify(plan)

	elapsed := time.Since(start)
	p.metrics.ObservePlan(plan, elapsed)
	p.logger.Info("planned load",
		zap.String("plan_id", plan.ID),
		zap.String("vehicle_id", plan.VehicleID),
		zap.String("feasibility", string(plan.Feasibility)),
		zap.Int("placed", len(plan.Placements)),
		zap.Int("unplaced", len(plan.Unplaced)),
		zap.Float64("volume_utilization", plan.Efficiency.VolumeUtilization),
		zap.Bool("budget_exceeded", plan.BudgetExceeded),
		zap.Duration("elapsed", elapsed),
	)
	return plan, nil
}

// checkHazardClasses rejects classes the rule table has never heard of: a
// typo in a hazard class must fail fast, not fall through to the conservative
// unknown-pair rule.
func (p *Planner) checkHazardClasses(items []domain.CargoItem) error {
	table := p.eval.Table()
	for _, item := range items {
		if item.Hazard == nil {
			continue
		}
		for _, class := range item.Hazard.Classes() {
			if !table.Known(class) {
				return domain.InvalidInputf("item %q: unknown hazard class %q", item.ID, class)
			}
		}
	}
	return nil
}

// precheck filters out items that are structurally impossible before any
// search runs: heavier than the vehicle's whole payload, or larger than the
// cargo box in every allowed orientation.
func (p *Planner) precheck(vehicle domain.Vehicle, items []domain.CargoItem) ([]domain.CargoItem, []domain.UnplacedItem) {
	var searchable []domain.CargoItem
	var unplaced []domain.UnplacedItem
	for _, item := range items {
		if item.Weight > vehicle.MaxPayload {
			unplaced = append(unplaced, domain.UnplacedItem{ItemID: item.ID, Reason: domain.ReasonWeightCapacityExceeded})
			continue
		}
		if !fitsAnyOrientation(vehicle, item) {
			unplaced = append(unplaced, domain.UnplacedItem{ItemID: item.ID, Reason: domain.ReasonExceedsVehicleEnvelope})
			continue
		}
		searchable = append(searchable, item)
	}
	return searchable, unplaced
}

func fitsAnyOrientation(vehicle domain.Vehicle, item domain.CargoItem) bool {
	for _, o := range item.Orientations() {
		d := o.Apply(item.Dims)
		if d.L <= vehicle.Dims.L && d.W <= vehicle.Dims.W && d.H <= vehicle.Dims.H {
			return true
		}
	}
	return false
}

// planID derives a name-based UUID from the request so that identical inputs
// yield byte-identical plans, a property the determinism guarantee extends to
// the plan id itself.
func planID(req domain.PlanRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, payload).String()
}

func classify(plan *domain.LoadPlan) domain.Feasibility {
	switch {
	case len(plan.Placements) == 0:
		return domain.FeasibilityInfeasible
	case len(plan.Unplaced) > 0:
		return domain.FeasibilityPartial
	default:
		return domain.FeasibilityFull
	}
}

// logPlanDefect dumps the full plan state for diagnosis; the plan itself is
// never returned to the caller.
func (p *Planner) logPlanDefect(plan *domain.LoadPlan, violations []validate.Violation) {
	fields := []zap.Field{
		zap.String("plan_id", plan.ID),
		zap.String("vehicle_id", plan.VehicleID),
		zap.Int("placements", len(plan.Placements)),
	}
	for i, v := range violations {
		fields = append(fields, zap.String(fmt.Sprintf("violation_%d", i), v.String()))
	}
	for _, placed := range plan.Placements {
		fields = append(fields, zap.Any("placement_"+placed.Item.ID, map[string]any{
			"orientation": string(placed.Orientation),
			"x":           placed.Position.X,
			"y":           placed.Position.Y,
			"z":           placed.Position.Z,
		}))
	}
	p.logger.Error("search produced an invalid plan", fields...)
}
