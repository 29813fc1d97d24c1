package domain

import (
	"time"

	"github.com/go-playground/validator/v10"

	"loadplan/internal/geometry"
	"loadplan/internal/segregation"
)

// Wire types for the planning API. Field names follow the contract the
// surrounding application speaks; YAML tags exist for the offline CLI, which
// accepts the same shapes from files.

type PlanRequest struct {
	Vehicle VehicleInput     `json:"vehicle" yaml:"vehicle" validate:"required"`
	Items   []CargoItemInput `json:"items" yaml:"items" validate:"required,min=1,dive"`
	Options *OptionsInput    `json:"options,omitempty" yaml:"options,omitempty"`
}

type CargoItemInput struct {
	ID                  string   `json:"id" yaml:"id" validate:"required,max=100"`
	Description         string   `json:"description" yaml:"description" validate:"max=500"`
	UNNumber            string   `json:"un_number,omitempty" yaml:"un_number,omitempty" validate:"max=10"`
	HazardClass         string   `json:"hazard_class,omitempty" yaml:"hazard_class,omitempty" validate:"max=10"`
	SubsidiaryRisk      string   `json:"subsidiary_risk,omitempty" yaml:"subsidiary_risk,omitempty" validate:"max=100"`
	PackingGroup        string   `json:"packing_group,omitempty" yaml:"packing_group,omitempty" validate:"omitempty,oneof=I II III"`
	Length              float64  `json:"length" yaml:"length" validate:"gt=0"`
	Width               float64  `json:"width" yaml:"width" validate:"gt=0"`
	Height              float64  `json:"height" yaml:"height" validate:"gt=0"`
	Weight              float64  `json:"weight" yaml:"weight" validate:"gt=0"`
	AllowedOrientations []string `json:"allowed_orientations,omitempty" yaml:"allowed_orientations,omitempty"`
	Fragile             bool     `json:"fragile,omitempty" yaml:"fragile,omitempty"`
	MaxStackWeight      *float64 `json:"max_stack_weight,omitempty" yaml:"max_stack_weight,omitempty" validate:"omitempty,gte=0"`
}

type AxleInput struct {
	Position float64 `json:"position" yaml:"position" validate:"gte=0"`
	MaxLoad  float64 `json:"max_load" yaml:"max_load" validate:"gt=0"`
}

type VehicleInput struct {
	ID               string      `json:"id" yaml:"id" validate:"required,max=100"`
	Length           float64     `json:"length" yaml:"length" validate:"gt=0"`
	Width            float64     `json:"width" yaml:"width" validate:"gt=0"`
	Height           float64     `json:"height" yaml:"height" validate:"gt=0"`
	MaxPayloadWeight float64     `json:"max_payload_weight" yaml:"max_payload_weight" validate:"gt=0"`
	Axles            []AxleInput `json:"axles" yaml:"axles" validate:"required,min=1,dive"`
	DoorPosition     *float64    `json:"door_position,omitempty" yaml:"door_position,omitempty" validate:"omitempty,gte=0"`
}

type OptionsInput struct {
	TimeBudgetMS       *int64   `json:"time_budget_ms,omitempty" yaml:"time_budget_ms,omitempty" validate:"omitempty,gt=0"`
	MinSupportFraction *float64 `json:"min_support_fraction,omitempty" yaml:"min_support_fraction,omitempty" validate:"omitempty,gt=0,lte=1"`
	Epsilon            *float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty" validate:"omitempty,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate performs structural validation: field-level rules via tags, then
// the cross-field checks tags cannot express.
func (r *PlanRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return InvalidInputf("%v", err)
	}

	seen := make(map[string]bool, len(r.Items))
	for i, item := range r.Items {
		if seen[item.ID] {
			return InvalidInputf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true

		if item.HazardClass == "" && (item.UNNumber != "" || item.PackingGroup != "" || item.SubsidiaryRisk != "") {
			return InvalidInputf("item[%d] %q: dangerous-goods fields require hazard_class", i, item.ID)
		}
		for _, o := range item.AllowedOrientations {
			if _, err := geometry.ParseOrientation(o); err != nil {
				return InvalidInputf("item[%d] %q: %v", i, item.ID, err)
			}
		}
	}

	for i, axle := range r.Vehicle.Axles {
		if axle.Position > r.Vehicle.Length {
			return InvalidInputf("vehicle axle[%d] position %.1f beyond vehicle length %.1f", i, axle.Position, r.Vehicle.Length)
		}
	}
	if r.Vehicle.DoorPosition != nil && *r.Vehicle.DoorPosition > r.Vehicle.Length {
		return InvalidInputf("vehicle door_position %.1f beyond vehicle length %.1f", *r.Vehicle.DoorPosition, r.Vehicle.Length)
	}
	return nil
}

// ToDomain converts a validated request into immutable domain inputs.
func (r *PlanRequest) ToDomain() (Vehicle, []CargoItem, Options, error) {
	vehicle := Vehicle{
		ID:           r.Vehicle.ID,
		Dims:         geometry.Dims{L: r.Vehicle.Length, W: r.Vehicle.Width, H: r.Vehicle.Height},
		MaxPayload:   r.Vehicle.MaxPayloadWeight,
		DoorPosition: r.Vehicle.Length,
	}
	if r.Vehicle.DoorPosition != nil {
		vehicle.DoorPosition = *r.Vehicle.DoorPosition
	}
	for _, a := range r.Vehicle.Axles {
		vehicle.Axles = append(vehicle.Axles, Axle{Position: a.Position, MaxLoad: a.MaxLoad})
	}

	items := make([]CargoItem, 0, len(r.Items))
	for _, in := range r.Items {
		item := CargoItem{
			ID:             in.ID,
			Description:    in.Description,
			Dims:           geometry.Dims{L: in.Length, W: in.Width, H: in.Height},
			Weight:         in.Weight,
			Fragile:        in.Fragile,
			MaxStackWeight: in.MaxStackWeight,
		}
		if in.HazardClass != "" {
			item.Hazard = &segregation.Hazard{
				UNNumber:       in.UNNumber,
				Class:          in.HazardClass,
				SubsidiaryRisk: in.SubsidiaryRisk,
				PackingGroup:   segregation.PackingGroup(in.PackingGroup),
			}
		}
		for _, o := range in.AllowedOrientations {
			orient, err := geometry.ParseOrientation(o)
			if err != nil {
				return Vehicle{}, nil, Options{}, InvalidInputf("item %q: %v", in.ID, err)
			}
			item.AllowedOrientations = append(item.AllowedOrientations, orient)
		}
		items = append(items, item)
	}

	opts := DefaultOptions()
	if r.Options != nil {
		if r.Options.TimeBudgetMS != nil {
			opts.TimeBudget = time.Duration(*r.Options.TimeBudgetMS) * time.Millisecond
		}
		if r.Options.MinSupportFraction != nil {
			opts.MinSupportFraction = *r.Options.MinSupportFraction
		}
		if r.Options.Epsilon != nil {
			opts.Epsilon = *r.Options.Epsilon
		}
	}
	return vehicle, items, opts, nil
}

// Response wire types, per the output contract.

type PlanResponse struct {
	PlanID         string            `json:"plan_id"`
	VehicleID      string            `json:"vehicle_id"`
	Placements     []PlacementOutput `json:"placements"`
	Efficiency     EfficiencyOutput  `json:"efficiency"`
	Feasibility    string            `json:"feasibility"`
	Unplaced       []UnplacedOutput  `json:"unplaced"`
	BudgetExceeded bool              `json:"budget_exceeded,omitempty"`
}

type PlacementOutput struct {
	ItemID       string  `json:"item_id"`
	Orientation  string  `json:"orientation"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
	LoadSequence int     `json:"load_sequence"`
}

type EfficiencyOutput struct {
	VolumeUtilization       float64 `json:"volume_utilization"`
	WeightUtilization       float64 `json:"weight_utilization"`
	ItemCount               int     `json:"item_count"`
	RemainingWeightCapacity float64 `json:"remaining_weight_capacity"`
}

type UnplacedOutput struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// ToResponse serializes a plan for the wire.
func ToResponse(plan *LoadPlan) *PlanResponse {
	resp := &PlanResponse{
		PlanID:      plan.ID,
		VehicleID:   plan.VehicleID,
		Placements:  make([]PlacementOutput, 0, len(plan.Placements)),
		Feasibility: string(plan.Feasibility),
		Unplaced:    make([]UnplacedOutput, 0, len(plan.Unplaced)),
		Efficiency: EfficiencyOutput{
			VolumeUtilization:       plan.Efficiency.VolumeUtilization,
			WeightUtilization:       plan.Efficiency.WeightUtilization,
			ItemCount:               plan.Efficiency.ItemCount,
			RemainingWeightCapacity: plan.Efficiency.RemainingWeightCapacity,
		},
		BudgetExceeded: plan.BudgetExceeded,
	}
	for _, p := range plan.Placements {
		resp.Placements = append(resp.Placements, PlacementOutput{
			ItemID:       p.Item.ID,
			Orientation:  string(p.Orientation),
			X:            p.Position.X,
			Y:            p.Position.Y,
			Z:            p.Position.Z,
			LoadSequence: p.LoadSequence,
		})
	}
	for _, u := range plan.Unplaced {
		resp.Unplaced = append(resp.Unplaced, UnplacedOutput{ItemID: u.ItemID, Reason: string(u.Reason)})
	}
	return resp
}
