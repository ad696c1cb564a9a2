package savings

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"
	"github.com/stretchr/testify/require"
)

func instance(t *testing.T, clients ...*client.Client) (*client.Registry, *voronoi.Diagram) {
	t.Helper()
	reg, err := client.NewRegistry(clients)
	require.NoError(t, err)
	d, err := voronoi.New().Run(reg)
	require.NoError(t, err)
	return reg, d
}

func column(t *testing.T) (*client.Registry, *voronoi.Diagram) {
	return instance(t,
		client.New(0, 0, 0, 0),
		client.New(1, 10, 0, 1),
		client.New(2, 10, 1, 1),
		client.New(3, 10, 2, 1),
		client.New(4, -10, 0, 1),
	)
}

func TestSolveMergesAlongColumn(t *testing.T) {
	reg, d := column(t)

	sol, err := Solve(reg, d, 3)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 2)
	require.Equal(t, 2, sol.Merges)

	require.Equal(t, []client.ID{1, 2, 3}, sol.Routes[0].Clients)
	require.Equal(t, 3, sol.Routes[0].Demand)
	require.InDelta(t, 12+math.Sqrt(104), sol.Routes[0].Distance, 1e-9)
	require.Equal(t, []client.ID{4}, sol.Routes[1].Clients)
	require.InDelta(t, 20, sol.Routes[1].Distance, 1e-9)
	require.InDelta(t, 32+math.Sqrt(104), sol.Distance, 1e-9)

	c2, _ := reg.Get(2)
	require.Equal(t, client.Assignment{Route: 0, Position: 1, Alone: false}, c2.Assignment())
	c4, _ := reg.Get(4)
	require.Equal(t, client.Assignment{Route: 1, Position: 0, Alone: true}, c4.Assignment())
	depot, _ := reg.Depot()
	require.Equal(t, client.Unassigned, depot.Assignment())
}

func TestSolveRespectsCapacity(t *testing.T) {
	reg, d := column(t)

	sol, err := Solve(reg, d, 2)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 3)
	require.Equal(t, []client.ID{1}, sol.Routes[0].Clients)
	require.ElementsMatch(t, []client.ID{2, 3}, sol.Routes[1].Clients)
	require.Equal(t, []client.ID{4}, sol.Routes[2].Clients)
	for _, r := range sol.Routes {
		require.LessOrEqual(t, r.Demand, 2)
	}

	c1, _ := reg.Get(1)
	require.True(t, c1.Assignment().Alone)
}

func TestList(t *testing.T) {
	reg, d := column(t)

	list := List(reg, d)
	require.NotEmpty(t, list)
	require.Equal(t, client.ID(2), list[0].I)
	require.Equal(t, client.ID(3), list[0].J)
	require.InDelta(t, math.Sqrt(101)+math.Sqrt(104)-1, list[0].Value, 1e-9)
	for i, sv := range list {
		require.NotEqual(t, client.Depot, sv.I)
		require.NotEqual(t, client.Depot, sv.J)
		require.Less(t, sv.I, sv.J)
		require.True(t, d.Adjacent(sv.I, sv.J))
		require.Greater(t, sv.Value, 0.0)
		if i > 0 {
			require.GreaterOrEqual(t, list[i-1].Value, sv.Value)
		}
	}
	for _, sv := range list {
		require.False(t, sv.I == 1 && sv.J == 3, "1 and 3 are separated by 2")
	}
}

func TestSolveRandomInstance(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	clients := []*client.Client{client.New(0, 50, 50, 0)}
	for i := 1; i <= 80; i++ {
		clients = append(clients, client.New(client.ID(i), rnd.Float64()*100, rnd.Float64()*100, 1+rnd.Intn(5)))
	}
	reg, d := instance(t, clients...)

	sol, err := Solve(reg, d, 15)
	require.NoError(t, err)

	seen := make(map[client.ID]bool)
	var naive float64
	depot, _ := reg.Depot()
	for _, c := range reg.Customers() {
		naive += 2 * depot.Distance(c)
	}
	for i, r := range sol.Routes {
		require.Equal(t, i, r.ID)
		require.LessOrEqual(t, r.Demand, 15)
		for pos, id := range r.Clients {
			require.False(t, seen[id])
			seen[id] = true
			c, _ := reg.Get(id)
			require.Equal(t, i, c.Assignment().Route)
			require.Equal(t, pos, c.Assignment().Position)
		}
	}
	require.Len(t, seen, 80)
	require.Less(t, sol.Distance, naive)
	require.Equal(t, 80-len(sol.Routes), sol.Merges)
}

func TestSolveErrors(t *testing.T) {
	reg, d := column(t)

	_, err := Solve(reg, d, 0)
	require.True(t, errors.Is(err, ErrBadCapacity))

	heavy, hd := instance(t, client.New(0, 0, 0, 0), client.New(1, 1, 1, 9))
	_, err = Solve(heavy, hd, 5)
	require.True(t, errors.Is(err, ErrDemandOverCap))

	noDepot, nd := instance(t, client.New(1, 0, 0, 1), client.New(2, 1, 1, 1))
	_, err = Solve(noDepot, nd, 5)
	require.True(t, errors.Is(err, ErrNoDepot))
	require.Nil(t, List(noDepot, nd))

	_, other := instance(t, client.New(0, 0, 0, 0))
	_, err = Solve(reg, other, 5)
	require.True(t, errors.Is(err, ErrDiagramMismatch))
}
