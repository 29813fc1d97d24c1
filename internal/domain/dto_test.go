package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplan/internal/geometry"
)

func validRequest() PlanRequest {
	return PlanRequest{
		Vehicle: VehicleInput{
			ID:               "truck-1",
			Length:           12000,
			Width:            2500,
			Height:           2700,
			MaxPayloadWeight: 20000,
			Axles: []AxleInput{
				{Position: 1500, MaxLoad: 6000},
				{Position: 9000, MaxLoad: 6000},
			},
		},
		Items: []CargoItemInput{
			{ID: "crate-1", Length: 2000, Width: 1000, Height: 1000, Weight: 500},
		},
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]func(*PlanRequest){
		"no items":             func(r *PlanRequest) { r.Items = nil },
		"empty item id":        func(r *PlanRequest) { r.Items[0].ID = "" },
		"zero weight":          func(r *PlanRequest) { r.Items[0].Weight = 0 },
		"negative length":      func(r *PlanRequest) { r.Items[0].Length = -1 },
		"no axles":             func(r *PlanRequest) { r.Vehicle.Axles = nil },
		"bad packing group":    func(r *PlanRequest) { r.Items[0].HazardClass = "3"; r.Items[0].PackingGroup = "IV" },
		"orphan un number":     func(r *PlanRequest) { r.Items[0].UNNumber = "1263" },
		"bad orientation":      func(r *PlanRequest) { r.Items[0].AllowedOrientations = []string{"up"} },
		"axle beyond length":   func(r *PlanRequest) { r.Vehicle.Axles[0].Position = 13000 },
		"door beyond length":   func(r *PlanRequest) { d := 13000.0; r.Vehicle.DoorPosition = &d },
		"negative stack limit": func(r *PlanRequest) { w := -1.0; r.Items[0].MaxStackWeight = &w },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			err := req.Validate()
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidateRejectsDuplicateItemIDs(t *testing.T) {
	req := validRequest()
	req.Items = append(req.Items, req.Items[0])
	require.ErrorIs(t, req.Validate(), ErrInvalidInput)
}

func TestToDomainDefaults(t *testing.T) {
	req := validRequest()
	vehicle, items, opts, err := req.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, "truck-1", vehicle.ID)
	assert.Equal(t, geometry.Dims{L: 12000, W: 2500, H: 2700}, vehicle.Dims)
	assert.Equal(t, 12000.0, vehicle.DoorPosition, "door defaults to the rear of the vehicle")
	require.Len(t, vehicle.Axles, 2)

	require.Len(t, items, 1)
	assert.Nil(t, items[0].Hazard)
	assert.Empty(t, items[0].AllowedOrientations)

	assert.Equal(t, DefaultOptions(), opts)
}

func TestToDomainMapsHazardAndOptions(t *testing.T) {
	req := validRequest()
	req.Items[0].HazardClass = "3"
	req.Items[0].UNNumber = "1263"
	req.Items[0].SubsidiaryRisk = "6.1"
	req.Items[0].PackingGroup = "II"
	req.Items[0].AllowedOrientations = []string{"lwh", "hwl"}
	budget := int64(50)
	frac := 0.8
	door := 0.0
	req.Vehicle.DoorPosition = &door
	req.Options = &OptionsInput{TimeBudgetMS: &budget, MinSupportFraction: &frac}

	vehicle, items, opts, err := req.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, 0.0, vehicle.DoorPosition)
	require.NotNil(t, items[0].Hazard)
	assert.Equal(t, "3", items[0].Hazard.Class)
	assert.Equal(t, "6.1", items[0].Hazard.SubsidiaryRisk)
	assert.Equal(t, []geometry.Orientation{geometry.OrientLWH, geometry.OrientHWL}, items[0].AllowedOrientations)
	assert.Equal(t, 50*time.Millisecond, opts.TimeBudget)
	assert.Equal(t, 0.8, opts.MinSupportFraction)
	assert.Equal(t, DefaultEpsilon, opts.Epsilon)
}

func TestCargoItemOrientationsDefault(t *testing.T) {
	item := CargoItem{Dims: geometry.Dims{L: 1, W: 2, H: 3}}
	assert.Equal(t, geometry.UprightOrientations, item.Orientations())

	item.AllowedOrientations = []geometry.Orientation{geometry.OrientHWL}
	assert.Equal(t, []geometry.Orientation{geometry.OrientHWL}, item.Orientations())
}

func TestPlacedItemBox(t *testing.T) {
	p := PlacedItem{
		Item:        CargoItem{ID: "a", Dims: geometry.Dims{L: 100, W: 200, H: 300}},
		Orientation: geometry.OrientWLH,
		Position:    geometry.Vec{X: 10, Y: 20, Z: 0},
	}
	box := p.Box()
	assert.Equal(t, geometry.Dims{L: 200, W: 100, H: 300}, box.Dim)
	assert.Equal(t, geometry.Vec{X: 10, Y: 20, Z: 0}, box.Min)
}
