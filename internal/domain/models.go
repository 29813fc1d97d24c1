package domain

import (
	"time"

	"loadplan/internal/geometry"
	"loadplan/internal/segregation"
)

// CargoItem is one manifest entry. Immutable once submitted to a planning
// request.
type CargoItem struct {
	ID          string
	Description string
	Hazard      *segregation.Hazard
	Dims        geometry.Dims
	Weight      float64
	Fragile     bool
	// MaxStackWeight caps the weight that may rest on top of this item.
	// nil means unlimited.
	MaxStackWeight      *float64
	AllowedOrientations []geometry.Orientation
}

func (c CargoItem) Volume() float64 {
	return c.Dims.Volume()
}

// Orientations returns the allowed orientations, defaulting to the two
// upright rotations when the manifest declared none.
func (c CargoItem) Orientations() []geometry.Orientation {
	if len(c.AllowedOrientations) == 0 {
		return geometry.UprightOrientations
	}
	return c.AllowedOrientations
}

// Axle is an axle position/limit pair in vehicle-local coordinates.
type Axle struct {
	Position float64
	MaxLoad  float64
}

// Vehicle describes the target cargo box and its weight limits.
type Vehicle struct {
	ID         string
	Dims       geometry.Dims
	MaxPayload float64
	Axles      []Axle
	// DoorPosition is where the loading door sits along the length axis.
	// It biases candidate ordering only; correctness never depends on it.
	DoorPosition float64
}

func (v Vehicle) Box() geometry.Box {
	return geometry.NewBox(geometry.Vec{}, v.Dims)
}

// PlacedItem binds a cargo item to a chosen orientation and the minimum
// corner of its bounding box in vehicle-local coordinates.
type PlacedItem struct {
	Item        CargoItem
	Orientation geometry.Orientation
	Position    geometry.Vec
	// LoadSequence is the order in which the item should be physically
	// loaded, starting at 1.
	LoadSequence int
}

func (p PlacedItem) Box() geometry.Box {
	return geometry.NewBox(p.Position, p.Orientation.Apply(p.Item.Dims))
}

type Feasibility string

const (
	FeasibilityFull       Feasibility = "FULL"
	FeasibilityPartial    Feasibility = "PARTIAL"
	FeasibilityInfeasible Feasibility = "INFEASIBLE"
)

// UnplacedReason names the first constraint that blocked every candidate
// position for an item.
type UnplacedReason string

const (
	ReasonExceedsVehicleEnvelope UnplacedReason = "EXCEEDS_VEHICLE_ENVELOPE"
	ReasonNoSegregationPosition  UnplacedReason = "NO_SEGREGATION_COMPLIANT_POSITION"
	ReasonWeightCapacityExceeded UnplacedReason = "WEIGHT_CAPACITY_EXCEEDED"
	ReasonAxleLoadExceeded       UnplacedReason = "AXLE_LOAD_EXCEEDED"
	ReasonUnsupportedStack       UnplacedReason = "UNSUPPORTED_STACK"
	ReasonBudgetExhausted        UnplacedReason = "BUDGET_EXHAUSTED"
)

type UnplacedItem struct {
	ItemID string
	Reason UnplacedReason
}

type EfficiencyStats struct {
	VolumeUtilization       float64
	WeightUtilization       float64
	ItemCount               int
	RemainingWeightCapacity float64
}

// LoadPlan is the result of one planning call. The engine holds no state
// across calls; equivalent inputs may be memoized by the caller.
type LoadPlan struct {
	ID             string
	VehicleID      string
	Placements     []PlacedItem
	Efficiency     EfficiencyStats
	Feasibility    Feasibility
	Unplaced       []UnplacedItem
	BudgetExceeded bool
}

// Options tune a single planning request.
type Options struct {
	// TimeBudget bounds the wall-clock time of the placement search.
	TimeBudget time.Duration
	// MinSupportFraction is the contact-footprint fraction below which an
	// elevated item counts as unsupported.
	MinSupportFraction float64
	// Epsilon is the geometric tolerance for all interval comparisons.
	Epsilon float64
	// MaxRepairs bounds how many placed items a repair pass may lift out
	// while trying to fit a stuck item.
	MaxRepairs int
}

const (
	DefaultTimeBudget         = 200 * time.Millisecond
	DefaultMinSupportFraction = 0.7
	DefaultEpsilon            = 1e-6
	DefaultMaxRepairs         = 3
)

func DefaultOptions() Options {
	return Options{
		TimeBudget:         DefaultTimeBudget,
		MinSupportFraction: DefaultMinSupportFraction,
		Epsilon:            DefaultEpsilon,
		MaxRepairs:         DefaultMaxRepairs,
	}
}
