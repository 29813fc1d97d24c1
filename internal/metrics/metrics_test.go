package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplan/internal/domain"
)

func TestObservePlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.ObservePlan(&domain.LoadPlan{
		Feasibility: domain.FeasibilityPartial,
		Placements:  make([]domain.PlacedItem, 3),
		Unplaced:    make([]domain.UnplacedItem, 1),
		Efficiency:  domain.EfficiencyStats{VolumeUtilization: 0.42},
	}, 30*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.plansTotal.WithLabelValues("PARTIAL")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.plansTotal.WithLabelValues("FULL")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.itemsPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.itemsUnplaced))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "loadplan_plan_duration_seconds")
	assert.Contains(t, names, "loadplan_volume_utilization_ratio")
}

func TestObservePlanNilRecorder(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObservePlan(&domain.LoadPlan{Feasibility: domain.FeasibilityFull}, time.Millisecond)
	})
}
