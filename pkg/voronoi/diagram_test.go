package voronoi

import (
	"testing"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/stretchr/testify/require"
)

func squareWithDuplicate(t *testing.T) *Diagram {
	return compute(t, []*client.Client{
		client.New(0, 0, 0, 0),
		client.New(1, 2, 0, 1),
		client.New(2, 0, 2, 1),
		client.New(3, 2, 2, 1),
		client.New(4, 2, 2, 1),
	})
}

func TestPairs(t *testing.T) {
	d := squareWithDuplicate(t)

	pairs := d.Pairs()
	require.Equal(t, []Pair{
		{A: 0, B: 1, Distance: 2},
		{A: 0, B: 2, Distance: 2},
		{A: 1, B: 3, Distance: 2},
		{A: 1, B: 4, Distance: 2},
		{A: 2, B: 3, Distance: 2},
		{A: 2, B: 4, Distance: 2},
		{A: 3, B: 4, Distance: 0},
	}, pairs)

	for _, p := range pairs {
		require.True(t, d.Adjacent(p.A, p.B))
		require.True(t, d.Adjacent(p.B, p.A))
		dist, ok := d.Distance(p.A, p.B)
		require.True(t, ok)
		require.Equal(t, p.Distance, dist)
	}
}

func TestDistanceAndEdgeLookup(t *testing.T) {
	d := squareWithDuplicate(t)

	dist, ok := d.Distance(0, 3)
	require.True(t, ok)
	require.InDelta(t, 2.8284271247, dist, 1e-9)
	require.False(t, d.Adjacent(0, 3))

	_, ok = d.Distance(0, 99)
	require.False(t, ok)
	require.False(t, d.Adjacent(0, 99))
	require.False(t, d.Adjacent(1, 1))

	e, ok := d.Edge(1, 0)
	require.True(t, ok)
	require.ElementsMatch(t, []client.ID{0, 1}, []client.ID{e.Left, e.Right})
	e4, ok := d.Edge(4, 1)
	require.True(t, ok)
	e3, _ := d.Edge(3, 1)
	require.Same(t, e3, e4)

	_, ok = d.Edge(3, 4)
	require.False(t, ok, "folded clients share a cell, not an edge")
}

func TestNeighbors(t *testing.T) {
	d := squareWithDuplicate(t)

	require.ElementsMatch(t, []client.ID{1, 2}, d.Neighbors(0))
	require.ElementsMatch(t, []client.ID{4, 1, 2}, d.Neighbors(3))
	require.ElementsMatch(t, []client.ID{3, 1, 2}, d.Neighbors(4))
	require.ElementsMatch(t, []client.ID{0, 3, 4}, d.Neighbors(1))
	require.Nil(t, d.Neighbors(42))

	cell, ok := d.Cell(0)
	require.True(t, ok)
	require.Len(t, cell.Halfedges, 2)
	for i := 1; i < len(cell.Halfedges); i++ {
		require.Greater(t, cell.Halfedges[i-1].Angle, cell.Halfedges[i].Angle)
	}
	for _, h := range cell.Halfedges {
		start, end := h.StartPoint(), h.EndPoint()
		require.NotEqual(t, start.IsNone(), end.IsNone(), "one end at the centre, one open")
		fixed := start
		if fixed.IsNone() {
			fixed = end
		}
		require.InDelta(t, 1.0, fixed.X, 1e-9)
		require.InDelta(t, 1.0, fixed.Y, 1e-9)
	}
}

func TestSegmentsStayInsideBox(t *testing.T) {
	d := compute(t, randomClients(21, 40, 100))
	bbox := d.BoundingBoxOf(10)
	require.LessOrEqual(t, bbox.Xl, 0.0+10)
	require.Greater(t, bbox.Xr, bbox.Xl)

	segs := d.Segments(bbox)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		for _, p := range []Point{s.A, s.B} {
			require.GreaterOrEqual(t, p.X, bbox.Xl-1e-9)
			require.LessOrEqual(t, p.X, bbox.Xr+1e-9)
			require.GreaterOrEqual(t, p.Y, bbox.Yt-1e-9)
			require.LessOrEqual(t, p.Y, bbox.Yb+1e-9)
		}
	}

	// the diagram itself keeps its open ends
	var open int
	for _, e := range d.Edges {
		if e.Vb.IsNone() {
			open++
		}
	}
	require.Greater(t, open, 0)
}

func TestSegmentsOutsideBox(t *testing.T) {
	d := compute(t, clientsOf([2]float64{4, 5}, [2]float64{6, 5}))
	require.Empty(t, d.Segments(NewBoundingBox(20, 30, 20, 30)))
}

func TestBoundingBoxOf(t *testing.T) {
	d := compute(t, clientsOf([2]float64{1, 2}, [2]float64{5, -3}, [2]float64{-2, 7}))
	require.Equal(t, BoundingBox{Xl: -3, Xr: 6, Yt: -4, Yb: 8}, d.BoundingBoxOf(1))

	empty := compute(t, nil)
	require.Equal(t, BoundingBox{}, empty.BoundingBoxOf(1))
}
