package voronoi

import (
	"sort"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// Vertex is a point equidistant from all of its generators.
type Vertex struct {
	Point
	Generators []client.ID
}

// Edge separates the cells of Left and Right. Va and Vb are NoVertex while open.
type Edge struct {
	Left  client.ID
	Right client.ID
	Va    Point
	Vb    Point

	left  *site
	right *site
}

func (e *Edge) collapsed(eps float64) bool {
	return !e.Va.IsNone() && !e.Vb.IsNone() && samePoint(e.Va, e.Vb, eps)
}

// Stats counts what one sweep did.
type Stats struct {
	Clients          int
	Sites            int
	SiteEvents       int
	CircleEvents     int
	CancelledCircles int
	RejectedCircles  int
	// MergedVertices counts vertices folded into an earlier one at the same point;
	// CircleEvents excludes them, so it equals len(Vertices).
	MergedVertices int
	MaxQueue       int
	MaxBeachLine   int
}

type Pair struct {
	A, B     client.ID
	Distance float64
}

type pairKey struct{ a, b client.ID }

func keyOf(a, b client.ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

type Diagram struct {
	Cells     []*Cell
	Vertices  []Vertex
	Edges     []*Edge
	Stats     Stats
	Anomalies []Anomaly
	RunID     string

	eps     float64
	cells   map[client.ID]*Cell
	primary map[client.ID]client.ID
	edges   map[pairKey]*Edge
}

// index builds the lookup tables; called once when the sweep is done.
func (d *Diagram) index() {
	d.cells = make(map[client.ID]*Cell, len(d.Cells))
	d.primary = make(map[client.ID]client.ID, len(d.Cells))
	d.edges = make(map[pairKey]*Edge, len(d.Edges))

	for _, c := range d.Cells {
		d.cells[c.Client] = c
		d.primary[c.Client] = c.Client
		for _, id := range c.Overlying {
			d.primary[id] = c.Client
		}
		c.prepare(d.eps)
	}
	for _, e := range d.Edges {
		if e.collapsed(d.eps) {
			continue
		}
		d.edges[keyOf(e.Left, e.Right)] = e
	}
}

func (d *Diagram) cellOf(id client.ID) (*Cell, bool) {
	p, ok := d.primary[id]
	if !ok {
		return nil, false
	}
	return d.cells[p], true
}

// Cell returns the cell holding id, which may be an overlying client.
func (d *Diagram) Cell(id client.ID) (*Cell, bool) {
	return d.cellOf(id)
}

// Primary is the client whose arc represents id.
func (d *Diagram) Primary(id client.ID) (client.ID, bool) {
	p, ok := d.primary[id]
	return p, ok
}

// Distance is the Euclidean distance of two known clients.
func (d *Diagram) Distance(a, b client.ID) (float64, bool) {
	ca, ok := d.cellOf(a)
	if !ok {
		return 0, false
	}
	cb, ok := d.cellOf(b)
	if !ok {
		return 0, false
	}
	return client.Euclidean(ca.Site.X, ca.Site.Y, cb.Site.X, cb.Site.Y), true
}

// Adjacent reports whether a and b share a Voronoi edge. Clients folded onto the
// same site are adjacent to each other and to every neighbour of that site.
func (d *Diagram) Adjacent(a, b client.ID) bool {
	if a == b {
		return false
	}
	pa, ok := d.primary[a]
	if !ok {
		return false
	}
	pb, ok := d.primary[b]
	if !ok {
		return false
	}
	if pa == pb {
		return true
	}
	_, ok = d.edges[keyOf(pa, pb)]
	return ok
}

// Edge returns the boundary between the cells of a and b.
func (d *Diagram) Edge(a, b client.ID) (*Edge, bool) {
	pa, ok := d.primary[a]
	if !ok {
		return nil, false
	}
	pb, ok := d.primary[b]
	if !ok || pa == pb {
		return nil, false
	}
	e, ok := d.edges[keyOf(pa, pb)]
	return e, ok
}

// Neighbors lists the clients adjacent to id, following the cell's edges by angle.
func (d *Diagram) Neighbors(id client.ID) []client.ID {
	c, ok := d.cellOf(id)
	if !ok {
		return nil
	}

	var out []client.ID
	for _, member := range c.members() {
		if member != id {
			out = append(out, member)
		}
	}
	for _, h := range c.Halfedges {
		out = append(out, d.cells[h.Neighbor()].members()...)
	}
	return out
}

// Pairs lists every adjacent client pair once, A < B, sorted.
func (d *Diagram) Pairs() []Pair {
	var out []Pair
	add := func(a, b client.ID, dist float64) {
		if a > b {
			a, b = b, a
		}
		out = append(out, Pair{A: a, B: b, Distance: dist})
	}

	for _, c := range d.Cells {
		members := c.members()
		for i := range members {
			for j := i + 1; j < len(members); j++ {
				add(members[i], members[j], 0)
			}
		}
	}
	for key := range d.edges {
		ca, cb := d.cells[key.a], d.cells[key.b]
		dist := client.Euclidean(ca.Site.X, ca.Site.Y, cb.Site.X, cb.Site.Y)
		for _, a := range ca.members() {
			for _, b := range cb.members() {
				add(a, b, dist)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

func (c *Cell) members() []client.ID {
	out := make([]client.ID, 0, 1+len(c.Overlying))
	out = append(out, c.Client)
	return append(out, c.Overlying...)
}

// CircleEvents is the number of circle events that produced a distinct vertex.
func (d *Diagram) CircleEvents() int { return d.Stats.CircleEvents }

// AnomaliesOf filters anomalies by kind.
func (d *Diagram) AnomaliesOf(kind error) []Anomaly {
	var out []Anomaly
	for _, a := range d.Anomalies {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
