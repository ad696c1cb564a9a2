package voronoi

import (
	"math"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// Default tolerance for breakpoint, centre and sweep-position comparisons.
const Epsilon = 1e-9

// Twice the signed area below which three generators count as collinear.
const collinearTolerance = 2e-12

type Point struct {
	X float64
	Y float64
}

// NoVertex marks an edge end that has not been fixed by the sweep (an open ray).
var NoVertex = Point{math.Inf(1), math.Inf(1)}

func (p Point) IsNone() bool {
	return p == NoVertex
}

func (p Point) Distance(q Point) float64 {
	return client.Euclidean(p.X, p.Y, q.X, q.Y)
}

// leftBreakPoint is the x where arc's parabola meets its left neighbour's for the
// given directrix. A site lying on the directrix degenerates to a vertical ray.
func leftBreakPoint(site Point, left *arc, directrix float64) float64 {
	rfocx := site.X
	rfocy := site.Y
	pby2 := rfocy - directrix
	if pby2 == 0 {
		return rfocx
	}
	if left == nil {
		return math.Inf(-1)
	}

	lfocx := left.site.point.X
	lfocy := left.site.point.Y
	plby2 := lfocy - directrix
	if plby2 == 0 {
		return lfocx
	}
	hl := lfocx - rfocx
	aby2 := 1/pby2 - 1/plby2
	b := hl / plby2
	if aby2 != 0 {
		return (-b+math.Sqrt(b*b-2*aby2*(hl*hl/(-2*plby2)-lfocy+plby2/2+rfocy-pby2/2)))/aby2 + rfocx
	}
	return (rfocx + lfocx) / 2
}

// circle describes the circumcircle of three generators taken left, middle, right.
type circle struct {
	center Point
	bottom float64
	// det is twice the signed area of the triangle; negative when the breakpoints converge.
	det float64
}

func circumcircle(left, middle, right Point) circle {
	bx := middle.X
	by := middle.Y
	ax := left.X - bx
	ay := left.Y - by
	cx := right.X - bx
	cy := right.Y - by

	d := 2 * (ax*cy - ay*cx)
	if d == 0 {
		return circle{det: 0, center: NoVertex, bottom: math.Inf(1)}
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d

	return circle{
		center: Point{x + bx, y + by},
		bottom: y + by + math.Sqrt(x*x+y*y),
		det:    d,
	}
}

func equalWithEpsilon(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func samePoint(a, b Point, eps float64) bool {
	return equalWithEpsilon(a.X, b.X, eps) && equalWithEpsilon(a.Y, b.Y, eps)
}
