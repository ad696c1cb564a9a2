package voronoi

import (
	"math"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// ArcID is a handle into a BeachLine. Zero never names an arc.
type ArcID uint64

// site is one distinct input location. Clients sharing it exactly are kept in overlying.
type site struct {
	client    client.ID
	point     Point
	depot     bool
	overlying []client.ID
	// event is the queue handle of the site event that introduces the site.
	event EventID
	cell  *Cell
}

type arc struct {
	id   ArcID
	site *site
	// circle is the pending circle event that would remove this arc, zero if none.
	circle EventID
	// siteEvent is the queue handle of the event that created the site.
	siteEvent EventID
	// edge is traced by the breakpoint on the left of the arc.
	edge *Edge
	node *rbNode[*arc]
}

func (a *arc) hasCircle() bool { return a.circle != 0 }

// Where a located x falls relative to the returned arc.
type position int

const (
	inside position = iota
	// onBreakpoint: x hits (within tolerance) the breakpoint to the right of the arc.
	onBreakpoint
	// beyond: x lies right of the last arc, which is a vertical ray on the directrix.
	beyond
)

// BeachLine is the ordered sequence of arcs above the sweep line.
type BeachLine struct {
	tree rbTree[*arc]
	arcs map[ArcID]*arc
	last ArcID
	eps  float64
}

func NewBeachLine(eps float64) *BeachLine {
	return &BeachLine{arcs: make(map[ArcID]*arc), eps: eps}
}

func (b *BeachLine) Len() int { return b.tree.len() }

func (b *BeachLine) Arc(id ArcID) (*arc, bool) {
	a, ok := b.arcs[id]
	return a, ok
}

func (b *BeachLine) Prev(a *arc) *arc {
	if a.node.prev == nil {
		return nil
	}
	return a.node.prev.value
}

func (b *BeachLine) Next(a *arc) *arc {
	if a.node.next == nil {
		return nil
	}
	return a.node.next.value
}

// Arcs lists the arcs left to right.
func (b *BeachLine) Arcs() []*arc {
	out := make([]*arc, 0, b.tree.len())
	for n := b.tree.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

func (b *BeachLine) leftBreakPoint(a *arc, directrix float64) float64 {
	return leftBreakPoint(a.site.point, b.Prev(a), directrix)
}

func (b *BeachLine) rightBreakPoint(a *arc, directrix float64) float64 {
	if next := b.Next(a); next != nil {
		return b.leftBreakPoint(next, directrix)
	}
	if a.site.point.Y == directrix {
		return a.site.point.X
	}
	return math.Inf(1)
}

// Locate finds the arc above x for the given sweep position. When x falls on a
// breakpoint the arc on its left is returned.
func (b *BeachLine) Locate(x, directrix float64) (*arc, position) {
	node := b.tree.root
	for node != nil {
		a := node.value
		dxl := b.leftBreakPoint(a, directrix) - x
		if dxl > b.eps {
			if node.left == nil {
				return a, inside
			}
			node = node.left
			continue
		}

		dxr := x - b.rightBreakPoint(a, directrix)
		if dxr > b.eps {
			if node.right == nil {
				if node.next == nil {
					return a, beyond
				}
				return a, onBreakpoint
			}
			node = node.right
			continue
		}

		if dxl > -b.eps {
			if node.prev != nil {
				return node.prev.value, onBreakpoint
			}
			return a, inside
		}
		if dxr > -b.eps {
			if node.next == nil {
				return a, inside
			}
			return a, onBreakpoint
		}
		return a, inside
	}
	return nil, inside
}

func (b *BeachLine) newArc(s *site) *arc {
	b.last++
	a := &arc{id: b.last, site: s, siteEvent: s.event}
	b.arcs[a.id] = a
	return a
}

// InsertFirst starts the beach line with a single arc.
func (b *BeachLine) InsertFirst(s *site) *arc {
	a := b.newArc(s)
	a.node = b.tree.insertAfter(nil, a)
	return a
}

// Append puts an arc for s directly right of after without splitting it.
func (b *BeachLine) Append(after *arc, s *site) *arc {
	a := b.newArc(s)
	a.node = b.tree.insertAfter(after.node, a)
	return a
}

// Split cuts a in two around a new arc for s: a, middle, right. right is a copy of a.
func (b *BeachLine) Split(a *arc, s *site) (middle, right *arc) {
	middle = b.newArc(s)
	middle.node = b.tree.insertAfter(a.node, middle)
	right = b.newArc(a.site)
	right.node = b.tree.insertAfter(middle.node, right)
	return middle, right
}

// Remove drops the arc; its neighbours become adjacent.
func (b *BeachLine) Remove(a *arc) {
	b.tree.remove(a.node)
	delete(b.arcs, a.id)
	a.node = nil
}
