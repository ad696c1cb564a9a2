package voronoi

import (
	"math"
	"sort"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// Cell is the region of one distinct site.
type Cell struct {
	Client    client.ID
	Site      Point
	Depot     bool
	Overlying []client.ID
	Halfedges []*Halfedge
}

// Halfedge is an Edge seen from one of its two cells.
type Halfedge struct {
	Cell  *Cell
	Edge  *Edge
	Angle float64
}

func newHalfedge(edge *Edge, cell, other *Cell) *Halfedge {
	return &Halfedge{
		Cell:  cell,
		Edge:  edge,
		Angle: math.Atan2(other.Site.Y-cell.Site.Y, other.Site.X-cell.Site.X),
	}
}

// Neighbor is the client on the other side of the edge.
func (h *Halfedge) Neighbor() client.ID {
	if h.Edge.Left == h.Cell.Client {
		return h.Edge.Right
	}
	return h.Edge.Left
}

func (h *Halfedge) StartPoint() Point {
	if h.Edge.Left == h.Cell.Client {
		return h.Edge.Va
	}
	return h.Edge.Vb
}

func (h *Halfedge) EndPoint() Point {
	if h.Edge.Left == h.Cell.Client {
		return h.Edge.Vb
	}
	return h.Edge.Va
}

type halfedges []*Halfedge

func (s halfedges) Len() int      { return len(s) }
func (s halfedges) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

type halfedgesByAngle struct{ halfedges }

func (s halfedgesByAngle) Less(i, j int) bool { return s.halfedges[i].Angle > s.halfedges[j].Angle }

// prepare drops collapsed edges and orders the rest by decreasing angle around the site.
func (c *Cell) prepare(eps float64) int {
	hs := c.Halfedges[:0]
	for _, h := range c.Halfedges {
		if !h.Edge.collapsed(eps) {
			hs = append(hs, h)
		}
	}
	sort.Sort(halfedgesByAngle{hs})
	c.Halfedges = hs
	return len(hs)
}
