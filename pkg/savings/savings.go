// Package savings merges single-customer routes with the Clarke-Wright savings
// heuristic, considering only customer pairs that are neighbours in the Voronoi
// diagram of the instance.
package savings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/logger"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"
	"go.uber.org/zap"
)

var (
	ErrNoDepot         = errors.New("instance has no depot")
	ErrBadCapacity     = errors.New("vehicle capacity must be positive")
	ErrDemandOverCap   = errors.New("client demand exceeds vehicle capacity")
	ErrDiagramMismatch = errors.New("diagram does not cover every client")
)

// Saving is the length gained by serving I and J on one route instead of two.
type Saving struct {
	I, J  client.ID
	Value float64
}

type Route struct {
	ID       int
	Clients  []client.ID
	Demand   int
	Distance float64
}

type Solution struct {
	Routes   []*Route
	Distance float64
	// Savings is the number of candidate pairs the merge loop went through.
	Savings int
	Merges  int
}

type Option func(*solver)

func WithLogger(l *logger.Logger) Option {
	return func(s *solver) { s.log = l }
}

type solver struct {
	log      *logger.Logger
	reg      *client.Registry
	depot    *client.Client
	capacity int

	routes  map[int]*Route
	routeOf map[client.ID]int
}

// Solve builds routes for every customer of reg and writes the assignment back on
// each of them. The depot stays unassigned.
func Solve(reg *client.Registry, d *voronoi.Diagram, capacity int, opts ...Option) (*Solution, error) {
	s := &solver{log: logger.Nop(), reg: reg, capacity: capacity}
	for _, opt := range opts {
		opt(s)
	}

	depot, ok := reg.Depot()
	if !ok {
		return nil, ErrNoDepot
	}
	s.depot = depot
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, capacity)
	}

	customers := reg.Customers()
	for _, c := range customers {
		if c.Demand() > capacity {
			return nil, fmt.Errorf("%w: client %d demand %d, capacity %d", ErrDemandOverCap, c.ID(), c.Demand(), capacity)
		}
		if _, ok := d.Cell(c.ID()); !ok {
			return nil, fmt.Errorf("%w: client %d", ErrDiagramMismatch, c.ID())
		}
	}

	s.routes = make(map[int]*Route, len(customers))
	s.routeOf = make(map[client.ID]int, len(customers))
	for i, c := range customers {
		s.routes[i] = &Route{ID: i, Clients: []client.ID{c.ID()}, Demand: c.Demand()}
		s.routeOf[c.ID()] = i
	}

	list := List(reg, d)
	s.log.Info("[savings] list built", zap.Int("customers", len(customers)), zap.Int("savings", len(list)))

	sol := &Solution{Savings: len(list)}
	for _, sv := range list {
		if s.merge(sv) {
			sol.Merges++
		}
	}

	sol.Routes = s.finish()
	for _, r := range sol.Routes {
		sol.Distance += r.Distance
	}

	s.log.Info("[savings] done",
		zap.Int("routes", len(sol.Routes)),
		zap.Int("merges", sol.Merges),
		zap.Float64("distance", sol.Distance))
	return sol, nil
}

// List computes the positive savings of every adjacent customer pair, largest first.
func List(reg *client.Registry, d *voronoi.Diagram) []Saving {
	depot, ok := reg.Depot()
	if !ok {
		return nil
	}

	var out []Saving
	for _, p := range d.Pairs() {
		if p.A == client.Depot || p.B == client.Depot {
			continue
		}
		ci, okI := reg.Get(p.A)
		cj, okJ := reg.Get(p.B)
		if !okI || !okJ {
			continue
		}
		value := depot.Distance(ci) + depot.Distance(cj) - p.Distance
		if value > 0 {
			out = append(out, Saving{I: p.A, J: p.B, Value: value})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value > out[b].Value
		}
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// merge joins the routes of sv.I and sv.J when both sit at an end of different
// routes and the joined load fits.
func (s *solver) merge(sv Saving) bool {
	ri := s.routes[s.routeOf[sv.I]]
	rj := s.routes[s.routeOf[sv.J]]
	if ri == rj {
		return false
	}
	if ri.Demand+rj.Demand > s.capacity {
		return false
	}

	// orient so that ri ends with I and rj starts with J
	switch {
	case last(ri) == sv.I:
	case first(ri) == sv.I:
		reverse(ri.Clients)
	default:
		return false
	}
	switch {
	case first(rj) == sv.J:
	case last(rj) == sv.J:
		reverse(rj.Clients)
	default:
		return false
	}

	ri.Clients = append(ri.Clients, rj.Clients...)
	ri.Demand += rj.Demand
	for _, id := range rj.Clients {
		s.routeOf[id] = ri.ID
	}
	delete(s.routes, rj.ID)

	s.log.Debug("[savings] merged",
		zap.Int("i", int(sv.I)),
		zap.Int("j", int(sv.J)),
		zap.Float64("saving", sv.Value),
		zap.Int("route", ri.ID),
		zap.Int("demand", ri.Demand))
	return true
}

// finish numbers the routes by their smallest client, fills in distances and writes
// the assignments.
func (s *solver) finish() []*Route {
	out := make([]*Route, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool { return minID(out[a]) < minID(out[b]) })

	for i, r := range out {
		r.ID = i
		r.Distance = s.length(r)
		alone := len(r.Clients) == 1
		for pos, id := range r.Clients {
			c, _ := s.reg.Get(id)
			c.Assign(client.Assignment{Route: i, Position: pos, Alone: alone})
		}
	}
	return out
}

// length of depot -> clients -> depot.
func (s *solver) length(r *Route) float64 {
	var total float64
	prev := s.depot
	for _, id := range r.Clients {
		c, _ := s.reg.Get(id)
		total += prev.Distance(c)
		prev = c
	}
	return total + prev.Distance(s.depot)
}

func first(r *Route) client.ID { return r.Clients[0] }
func last(r *Route) client.ID  { return r.Clients[len(r.Clients)-1] }

func minID(r *Route) client.ID {
	m := r.Clients[0]
	for _, id := range r.Clients[1:] {
		m = min(m, id)
	}
	return m
}

func reverse(ids []client.ID) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
