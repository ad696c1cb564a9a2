package metrics

import (
	"errors"
	"time"

	"github.com/0x0FACED/go-clarkwright/pkg/savings"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clarkwright"

// Collector exports sweep and routing counters. It is safe for concurrent use and
// can be handed to every engine of a batch.
type Collector struct {
	sweeps    prometheus.Counter
	events    *prometheus.CounterVec
	anomalies *prometheus.CounterVec
	duration  prometheus.Histogram
	sites     prometheus.Histogram
	routes    prometheus.Histogram
	distance  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		sweeps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Finished Voronoi sweeps.",
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "events_total",
			Help:      "Sweep events by outcome.",
		}, []string{"kind"}),
		anomalies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "anomalies_total",
			Help:      "Recovered geometry anomalies by kind.",
		}, []string{"kind"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Wall time of one sweep.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		sites: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "sites",
			Help:      "Distinct sites per sweep.",
			Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
		}),
		routes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "savings",
			Name:      "routes",
			Help:      "Routes per solved instance.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		distance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "savings",
			Name:      "last_distance",
			Help:      "Total route length of the last solved instance.",
		}),
	}
}

func (c *Collector) SweepFinished(stats voronoi.Stats, anomalies []voronoi.Anomaly, took time.Duration) {
	c.sweeps.Inc()
	c.events.WithLabelValues("site").Add(float64(stats.SiteEvents))
	c.events.WithLabelValues("circle").Add(float64(stats.CircleEvents))
	c.events.WithLabelValues("circle_cancelled").Add(float64(stats.CancelledCircles))
	c.events.WithLabelValues("circle_rejected").Add(float64(stats.RejectedCircles))
	c.events.WithLabelValues("circle_merged").Add(float64(stats.MergedVertices))
	for _, a := range anomalies {
		c.anomalies.WithLabelValues(anomalyKind(a)).Inc()
	}
	c.duration.Observe(took.Seconds())
	c.sites.Observe(float64(stats.Sites))
}

func (c *Collector) Solved(sol *savings.Solution) {
	c.routes.Observe(float64(len(sol.Routes)))
	c.distance.Set(sol.Distance)
}

func anomalyKind(a voronoi.Anomaly) string {
	switch {
	case errors.Is(a, voronoi.ErrDegenerateGeometry):
		return "degenerate_geometry"
	case errors.Is(a, voronoi.ErrNumericInstability):
		return "numeric_instability"
	default:
		return "other"
	}
}
