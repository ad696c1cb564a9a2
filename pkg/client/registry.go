package client

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/multierr"
)

// Registry is the validated, id-indexed set of clients of one instance.
type Registry struct {
	clients []*Client
	byID    map[ID]*Client
}

// NewRegistry validates every record before accepting any of them. All problems are
// reported together; on error no registry is returned. A record repeating an id with
// the same coordinates is dropped as a duplicate of the first one.
func NewRegistry(clients []*Client) (*Registry, error) {
	r := &Registry{
		clients: make([]*Client, 0, len(clients)),
		byID:    make(map[ID]*Client, len(clients)),
	}

	var err error
	for i, c := range clients {
		if c == nil {
			err = multierr.Append(err, fmt.Errorf("%w: record %d is nil", ErrInvalidInput, i))
			continue
		}
		if c.id < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: client %d: negative id", ErrInvalidInput, c.id))
		}
		if c.demand < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: client %d: negative demand %d", ErrInvalidInput, c.id, c.demand))
		}
		if !finite(c.x) || !finite(c.y) {
			err = multierr.Append(err, fmt.Errorf("%w: client %d: non-finite coordinates (%g, %g)", ErrInvalidInput, c.id, c.x, c.y))
		}

		if prev, ok := r.byID[c.id]; ok {
			if !prev.SameLocation(c) {
				err = multierr.Append(err, fmt.Errorf("%w: client %d: duplicate id with coordinates (%g, %g) and (%g, %g)",
					ErrInvalidInput, c.id, prev.x, prev.y, c.x, c.y))
			}
			continue
		}
		r.byID[c.id] = c
		r.clients = append(r.clients, c)
	}

	if err != nil {
		return nil, err
	}
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (r *Registry) Len() int { return len(r.clients) }

// All returns the clients in input order.
func (r *Registry) All() []*Client {
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}

func (r *Registry) Get(id ID) (*Client, bool) {
	c, ok := r.byID[id]
	return c, ok
}

func (r *Registry) Depot() (*Client, bool) {
	return r.Get(Depot)
}

// Customers returns every client except the depot, ordered by id.
func (r *Registry) Customers() []*Client {
	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		if !c.IsDepot() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (r *Registry) TotalDemand() int {
	var total int
	for _, c := range r.clients {
		total += c.demand
	}
	return total
}

// ResetAssignments marks every client as not belonging to any route.
func (r *Registry) ResetAssignments() {
	for _, c := range r.clients {
		c.assignment = Unassigned
	}
}
