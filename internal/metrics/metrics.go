// Package metrics exposes planning counters and histograms over a prometheus
// registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"loadplan/internal/domain"
)

type Recorder struct {
	plansTotal        *prometheus.CounterVec
	planDuration      prometheus.Histogram
	volumeUtilization prometheus.Histogram
	itemsPlaced       prometheus.Counter
	itemsUnplaced     prometheus.Counter
}

// NewRecorder registers the planner's metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		plansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loadplan",
			Name:      "plans_total",
			Help:      "Planning requests by feasibility verdict.",
		}, []string{"feasibility"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loadplan",
			Name:      "plan_duration_seconds",
			Help:      "Wall-clock time of a planning call.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1, 2},
		}),
		volumeUtilization: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loadplan",
			Name:      "volume_utilization_ratio",
			Help:      "Volume utilization of returned plans.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		itemsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "loadplan",
			Name:      "items_placed_total",
			Help:      "Manifest items successfully placed.",
		}),
		itemsUnplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "loadplan",
			Name:      "items_unplaced_total",
			Help:      "Manifest items that could not be placed.",
		}),
	}
	reg.MustRegister(r.plansTotal, r.planDuration, r.volumeUtilization, r.itemsPlaced, r.itemsUnplaced)
	return r
}

// ObservePlan records one completed planning call. A nil Recorder is a no-op
// so library callers can skip metrics entirely.
func (r *Recorder) ObservePlan(plan *domain.LoadPlan, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.plansTotal.WithLabelValues(string(plan.Feasibility)).Inc()
	r.planDuration.Observe(elapsed.Seconds())
	r.volumeUtilization.Observe(plan.Efficiency.VolumeUtilization)
	r.itemsPlaced.Add(float64(len(plan.Placements)))
	r.itemsUnplaced.Add(float64(len(plan.Unplaced)))
}
