package metrics

import (
	"testing"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/savings"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorObservesSweeps(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	clients := []*client.Client{
		client.New(0, 0, 0, 0),
		client.New(1, 2, 0, 1),
		client.New(2, 0, 2, 1),
		client.New(3, 2, 2, 1),
		client.New(4, 2, 2, 1),
	}
	registry, err := client.NewRegistry(clients)
	require.NoError(t, err)

	d, err := voronoi.New(voronoi.WithObserver(c)).Run(registry)
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(c.sweeps))
	require.Equal(t, 4.0, testutil.ToFloat64(c.events.WithLabelValues("site")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("circle")))
	require.Equal(t, float64(len(d.AnomaliesOf(voronoi.ErrDegenerateGeometry))),
		testutil.ToFloat64(c.anomalies.WithLabelValues("degenerate_geometry")))

	sol, err := savings.Solve(registry, d, 10)
	require.NoError(t, err)
	c.Solved(sol)
	require.InDelta(t, sol.Distance, testutil.ToFloat64(c.distance), 1e-9)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestAnomalyKind(t *testing.T) {
	require.Equal(t, "degenerate_geometry", anomalyKind(voronoi.Anomaly{Kind: voronoi.ErrDegenerateGeometry}))
	require.Equal(t, "numeric_instability", anomalyKind(voronoi.Anomaly{Kind: voronoi.ErrNumericInstability}))
	require.Equal(t, "other", anomalyKind(voronoi.Anomaly{}))
}
