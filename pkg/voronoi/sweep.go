package voronoi

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Observer is told about every finished sweep. Implementations shared between
// engines must be safe for concurrent use.
type Observer interface {
	SweepFinished(stats Stats, anomalies []Anomaly, took time.Duration)
}

type Option func(*Engine)

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.baseLog = l }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithTolerance replaces Epsilon for breakpoint, centre and sweep comparisons.
func WithTolerance(eps float64) Option {
	return func(e *Engine) {
		if eps > 0 {
			e.eps = eps
		}
	}
}

// Engine runs Fortune's sweep. All state lives in the engine and is rebuilt by each
// Run, so an engine must not be shared by concurrent runs.
type Engine struct {
	baseLog  *logger.Logger
	observer Observer
	eps      float64

	log     *logger.Logger
	queue   *EventQueue
	beach   *BeachLine
	sites   []*site
	diagram *Diagram
}

func New(opts ...Option) *Engine {
	e := &Engine{baseLog: logger.Nop(), eps: Epsilon}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute validates clients and sweeps them with a fresh engine.
func Compute(clients []*client.Client, opts ...Option) (*Diagram, error) {
	reg, err := client.NewRegistry(clients)
	if err != nil {
		return nil, err
	}
	return New(opts...).Run(reg)
}

// Run builds the diagram of every client of reg. It does not block or yield; callers
// needing a deadline have to bound the whole call.
func (e *Engine) Run(reg *client.Registry) (*Diagram, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", client.ErrInvalidInput)
	}
	start := time.Now()
	runID := uuid.NewString()

	e.log = e.baseLog.With(zap.String("run", runID))
	e.queue = NewEventQueue()
	e.beach = NewBeachLine(e.eps)
	e.sites = nil
	e.diagram = &Diagram{RunID: runID, eps: e.eps}

	e.log.Info("[sweep] started", zap.Int("clients", reg.Len()))

	e.seed(reg.All())
	e.diagram.Stats.Clients = reg.Len()
	e.diagram.Stats.Sites = len(e.sites)

	for {
		e.trackSizes()
		ev, ok := e.queue.PopMin()
		if !ok {
			break
		}

		switch ev := ev.(type) {
		case *SiteEvent:
			e.diagram.Stats.SiteEvents++
			e.log.Debug("[sweep-site]", zap.Stringer("event", ev))
			e.handleSite(ev)
		case *CircleEvent:
			e.log.Debug("[sweep-circle]", zap.Stringer("event", ev))
			e.handleCircle(ev)
		}
	}

	e.mergeVertices()
	d := e.diagram
	d.index()
	took := time.Since(start)

	e.log.Info("[sweep] finished",
		zap.Int("sites", d.Stats.Sites),
		zap.Int("vertices", len(d.Vertices)),
		zap.Int("edges", len(d.Edges)),
		zap.Int("circle_events", d.Stats.CircleEvents),
		zap.Int("anomalies", len(d.Anomalies)),
		zap.Duration("took", took))

	if e.observer != nil {
		e.observer.SweepFinished(d.Stats, d.Anomalies, took)
	}

	e.queue, e.beach, e.sites, e.diagram = nil, nil, nil, nil
	return d, nil
}

// seed queues one site event per distinct location. Clients sharing a location are
// folded onto the one with the smallest id.
func (e *Engine) seed(clients []*client.Client) {
	byPoint := make(map[Point][]*client.Client, len(clients))
	var order []Point
	for _, c := range clients {
		p := Point{c.X(), c.Y()}
		if _, ok := byPoint[p]; !ok {
			order = append(order, p)
		}
		byPoint[p] = append(byPoint[p], c)
	}

	for _, p := range order {
		group := byPoint[p]
		sort.Slice(group, func(i, j int) bool { return group[i].ID() < group[j].ID() })

		s := &site{client: group[0].ID(), point: p}
		for _, c := range group {
			if c.IsDepot() {
				s.depot = true
			}
		}
		for _, c := range group[1:] {
			s.overlying = append(s.overlying, c.ID())
		}
		if len(s.overlying) > 0 {
			e.anomaly(ErrDegenerateGeometry, "coincident sites folded", group[0].ID(), s.overlying...)
		}

		s.cell = &Cell{Client: s.client, Site: p, Depot: s.depot, Overlying: s.overlying}
		e.diagram.Cells = append(e.diagram.Cells, s.cell)
		e.sites = append(e.sites, s)

		s.event = e.queue.Insert(&SiteEvent{
			Client:    s.client,
			Site:      p,
			Depot:     s.depot,
			Overlying: s.overlying,
			site:      s,
		})
	}
}

func (e *Engine) handleSite(ev *SiteEvent) {
	s := ev.site
	directrix := s.point.Y

	if e.beach.Len() == 0 {
		e.beach.InsertFirst(s)
		return
	}

	covering, pos := e.beach.Locate(s.point.X, directrix)
	e.log.Debug("[sweep-site] located", zap.Uint64("arc", uint64(covering.id)), zap.Uint64("arc_site_event", uint64(covering.siteEvent)))
	switch pos {
	case beyond:
		// The last arc is still a vertical ray on this row of sites.
		a := e.beach.Append(covering, s)
		a.edge = e.createEdge(covering.site, s, NoVertex, NoVertex)
		return
	case onBreakpoint:
		e.anomaly(ErrNumericInstability, "site on breakpoint", s.client, covering.site.client)
	}

	e.cancelCircle(covering)

	middle, right := e.beach.Split(covering, s)
	middle.edge = e.createEdge(covering.site, s, NoVertex, NoVertex)
	right.edge = middle.edge

	e.attachCircle(covering, directrix)
	e.attachCircle(right, directrix)
}

func (e *Engine) handleCircle(ev *CircleEvent) {
	a, ok := e.beach.Arc(ev.Arc)
	if !ok || a.circle != ev.ID() {
		e.log.Warn("[sweep-circle] stale event skipped", zap.Uint64("event", uint64(ev.ID())))
		return
	}
	e.diagram.Stats.CircleEvents++
	a.circle = 0

	center := ev.Center
	prev := e.beach.Prev(a)
	next := e.beach.Next(a)
	vanishing := []*arc{a}
	e.beach.Remove(a)

	// Arcs whose circles share this centre vanish in the same vertex.
	lArc := prev
	for e.sameCenter(lArc, center) {
		prev = e.beach.Prev(lArc)
		vanishing = append([]*arc{lArc}, vanishing...)
		e.detach(lArc)
		lArc = prev
	}
	e.cancelCircle(lArc)

	rArc := next
	for e.sameCenter(rArc, center) {
		next = e.beach.Next(rArc)
		vanishing = append(vanishing, rArc)
		e.detach(rArc)
		rArc = next
	}
	e.cancelCircle(rArc)

	transitions := make([]*arc, 0, len(vanishing)+2)
	transitions = append(transitions, lArc)
	transitions = append(transitions, vanishing...)
	transitions = append(transitions, rArc)

	if len(transitions) > 3 {
		ids := make([]client.ID, 0, len(transitions))
		for _, t := range transitions {
			ids = append(ids, t.site.client)
		}
		e.anomaly(ErrDegenerateGeometry, "cocircular generators merged", ids[0], ids[1:]...)
	}

	for i := 1; i < len(transitions); i++ {
		e.setEdgeStartpoint(transitions[i].edge, transitions[i-1].site, transitions[i].site, center)
	}
	rArc.edge = e.createEdge(lArc.site, rArc.site, NoVertex, center)

	e.diagram.Vertices = append(e.diagram.Vertices, Vertex{Point: center, Generators: generators(transitions)})

	directrix := ev.Trigger.Y
	e.attachCircle(lArc, directrix)
	e.attachCircle(rArc, directrix)
}

// mergeVertices joins vertices that landed on the same point from circle events
// that were not queued together, e.g. when a cocircular site arrives exactly on the
// vertex. The zero-length edges left between them are dropped.
func (e *Engine) mergeVertices() {
	d := e.diagram
	if len(d.Vertices) > 1 {
		order := make([]int, len(d.Vertices))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return d.Vertices[order[i]].X < d.Vertices[order[j]].X })

		gone := make([]bool, len(d.Vertices))
		for i, vi := range order {
			if gone[vi] {
				continue
			}
			v := &d.Vertices[vi]
			for _, vj := range order[i+1:] {
				w := d.Vertices[vj]
				if w.X-v.X > e.eps {
					break
				}
				if gone[vj] || !samePoint(v.Point, w.Point, e.eps) {
					continue
				}
				gone[vj] = true
				v.Generators = unionIDs(v.Generators, w.Generators)
				d.Stats.MergedVertices++
				e.anomaly(ErrDegenerateGeometry, "cocircular vertices merged", v.Generators[0], v.Generators[1:]...)
			}
		}

		kept := d.Vertices[:0]
		for i, v := range d.Vertices {
			if !gone[i] {
				kept = append(kept, v)
			}
		}
		d.Vertices = kept
		d.Stats.CircleEvents -= d.Stats.MergedVertices
	}

	edges := d.Edges[:0]
	for _, edge := range d.Edges {
		if !edge.collapsed(e.eps) {
			edges = append(edges, edge)
		}
	}
	clear(d.Edges[len(edges):])
	d.Edges = edges
}

func unionIDs(a, b []client.ID) []client.ID {
	out := a
	for _, id := range b {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func generators(arcs []*arc) []client.ID {
	out := make([]client.ID, 0, len(arcs))
	seen := make(map[client.ID]bool, len(arcs))
	for _, a := range arcs {
		if !seen[a.site.client] {
			seen[a.site.client] = true
			out = append(out, a.site.client)
		}
	}
	return out
}

func (e *Engine) sameCenter(a *arc, center Point) bool {
	if a == nil || !a.hasCircle() {
		return false
	}
	ev, ok := e.queue.Lookup(a.circle)
	if !ok {
		return false
	}
	return samePoint(ev.(*CircleEvent).Center, center, e.eps)
}

// attachCircle registers the circle event that would remove a, if its neighbours'
// breakpoints converge.
func (e *Engine) attachCircle(a *arc, directrix float64) {
	lArc := e.beach.Prev(a)
	rArc := e.beach.Next(a)
	if lArc == nil || rArc == nil {
		return
	}
	if lArc.site == rArc.site {
		return
	}

	c := circumcircle(lArc.site.point, a.site.point, rArc.site.point)
	if math.Abs(c.det) <= collinearTolerance {
		e.diagram.Stats.RejectedCircles++
		e.anomaly(ErrDegenerateGeometry, "collinear circle candidate rejected", lArc.site.client, a.site.client, rArc.site.client)
		return
	}
	if c.det > 0 {
		// diverging breakpoints
		return
	}
	if c.bottom < directrix {
		if c.bottom < directrix-e.eps {
			e.diagram.Stats.RejectedCircles++
			e.anomaly(ErrNumericInstability, "circle event behind sweep line rejected", lArc.site.client, a.site.client, rArc.site.client)
			return
		}
		e.anomaly(ErrNumericInstability, "circle event within tolerance of sweep line", lArc.site.client, a.site.client, rArc.site.client)
	}

	ev := &CircleEvent{
		Trigger:    Point{c.center.X, max(c.bottom, directrix)},
		Center:     c.center,
		Arc:        a.id,
		Generators: []client.ID{lArc.site.client, a.site.client, rArc.site.client},
	}
	for _, s := range []*site{lArc.site, a.site, rArc.site} {
		ev.Overlying = append(ev.Overlying, s.overlying...)
	}
	a.circle = e.queue.Insert(ev)
}

func (e *Engine) cancelCircle(a *arc) {
	if a == nil || !a.hasCircle() {
		return
	}
	if e.queue.Remove(a.circle) {
		e.diagram.Stats.CancelledCircles++
	}
	a.circle = 0
}

func (e *Engine) detach(a *arc) {
	e.cancelCircle(a)
	e.beach.Remove(a)
}

func (e *Engine) createEdge(left, right *site, va, vb Point) *Edge {
	edge := &Edge{
		Left:  left.client,
		Right: right.client,
		Va:    NoVertex,
		Vb:    NoVertex,
		left:  left,
		right: right,
	}
	e.diagram.Edges = append(e.diagram.Edges, edge)
	if !va.IsNone() {
		e.setEdgeStartpoint(edge, left, right, va)
	}
	if !vb.IsNone() {
		e.setEdgeEndpoint(edge, left, right, vb)
	}

	left.cell.Halfedges = append(left.cell.Halfedges, newHalfedge(edge, left.cell, right.cell))
	right.cell.Halfedges = append(right.cell.Halfedges, newHalfedge(edge, right.cell, left.cell))
	return edge
}

func (e *Engine) setEdgeStartpoint(edge *Edge, left, right *site, vertex Point) {
	switch {
	case edge.Va.IsNone() && edge.Vb.IsNone():
		edge.Va = vertex
		edge.left, edge.right = left, right
		edge.Left, edge.Right = left.client, right.client
	case edge.left == right:
		edge.Vb = vertex
	default:
		edge.Va = vertex
	}
}

func (e *Engine) setEdgeEndpoint(edge *Edge, left, right *site, vertex Point) {
	e.setEdgeStartpoint(edge, right, left, vertex)
}

func (e *Engine) anomaly(kind error, detail string, first client.ID, rest ...client.ID) {
	ids := append([]client.ID{first}, rest...)
	a := Anomaly{Kind: kind, Clients: ids, Detail: detail}
	e.diagram.Anomalies = append(e.diagram.Anomalies, a)
	e.log.Warn("[sweep] anomaly", zap.Error(a))
}

func (e *Engine) trackSizes() {
	st := &e.diagram.Stats
	st.MaxQueue = max(st.MaxQueue, e.queue.Len())
	st.MaxBeachLine = max(st.MaxBeachLine, e.beach.Len())
}
