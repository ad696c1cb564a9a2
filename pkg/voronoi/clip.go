package voronoi

import (
	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// BoundingBox is an axis-aligned viewport; Yt is the smaller y.
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// BoundingBoxOf covers every cell site with margin on each side.
func (d *Diagram) BoundingBoxOf(margin float64) BoundingBox {
	if len(d.Cells) == 0 {
		return BoundingBox{}
	}
	first := d.Cells[0].Site
	bbox := BoundingBox{first.X, first.X, first.Y, first.Y}
	for _, c := range d.Cells[1:] {
		bbox.Xl = min(bbox.Xl, c.Site.X)
		bbox.Xr = max(bbox.Xr, c.Site.X)
		bbox.Yt = min(bbox.Yt, c.Site.Y)
		bbox.Yb = max(bbox.Yb, c.Site.Y)
	}
	return BoundingBox{bbox.Xl - margin, bbox.Xr + margin, bbox.Yt - margin, bbox.Yb + margin}
}

// Segment is the visible part of an Edge.
type Segment struct {
	Left  client.ID
	Right client.ID
	A     Point
	B     Point
}

// Segments closes open edges against the box and clips everything to it. The
// diagram itself is not modified.
func (d *Diagram) Segments(bbox BoundingBox) []Segment {
	out := make([]Segment, 0, len(d.Edges))
	for _, e := range d.Edges {
		s := Segment{Left: e.Left, Right: e.Right, A: e.Va, B: e.Vb}
		if !connectSegment(&s, e.left.point, e.right.point, bbox) || !clipSegment(&s, bbox) {
			continue
		}
		if samePoint(s.A, s.B, d.eps) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func connectSegment(s *Segment, lSite, rSite Point, bbox BoundingBox) bool {
	vb := s.B
	if !vb.IsNone() {
		return true
	}

	va := s.A
	xl := bbox.Xl
	xr := bbox.Xr
	yt := bbox.Yt
	yb := bbox.Yb
	lx := lSite.X
	ly := lSite.Y
	rx := rSite.X
	ry := rSite.Y
	fx := (lx + rx) / 2
	fy := (ly + ry) / 2

	var fm, fb float64
	horizontal := equalWithEpsilon(ry, ly, Epsilon)
	if !horizontal {
		fm = (lx - rx) / (ry - ly)
		fb = fy - fm*fx
	}

	switch {
	case horizontal:
		if fx < xl || fx >= xr {
			return false
		}
		// downward
		if lx > rx {
			if va.IsNone() {
				va = Point{fx, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Point{fx, yb}
		} else {
			if va.IsNone() {
				va = Point{fx, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Point{fx, yt}
		}
	case fm < -1 || fm > 1:
		if lx > rx {
			if va.IsNone() {
				va = Point{(yt - fb) / fm, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Point{(yb - fb) / fm, yb}
		} else {
			if va.IsNone() {
				va = Point{(yb - fb) / fm, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Point{(yt - fb) / fm, yt}
		}
	default:
		// rightward
		if ly < ry {
			if va.IsNone() {
				va = Point{xl, fm*xl + fb}
			} else if va.X >= xr {
				return false
			}
			vb = Point{xr, fm*xr + fb}
		} else {
			if va.IsNone() {
				va = Point{xr, fm*xr + fb}
			} else if va.X < xl {
				return false
			}
			vb = Point{xl, fm*xl + fb}
		}
	}
	s.A = va
	s.B = vb
	return true
}

// clipSegment is Liang-Barsky against the four sides of the box.
func clipSegment(s *Segment, bbox BoundingBox) bool {
	ax, ay := s.A.X, s.A.Y
	dx := s.B.X - ax
	dy := s.B.Y - ay
	t0, t1 := 0.0, 1.0

	sides := [4][2]float64{
		{-dx, ax - bbox.Xl},
		{dx, bbox.Xr - ax},
		{-dy, ay - bbox.Yt},
		{dy, bbox.Yb - ay},
	}
	for _, side := range sides {
		p, q := side[0], side[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	if t1 < 1 {
		s.B = Point{ax + t1*dx, ay + t1*dy}
	}
	if t0 > 0 {
		s.A = Point{ax + t0*dx, ay + t0*dy}
	}
	return true
}
