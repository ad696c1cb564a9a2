package voronoi

import (
	"fmt"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// EventID is a handle into an EventQueue. Zero never names an event.
type EventID uint64

type Kind int

const (
	KindSite Kind = iota + 1
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindSite:
		return "site"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is either a *SiteEvent or a *CircleEvent.
type Event interface {
	ID() EventID
	Kind() Kind
	// Point is the sweep position at which the event fires.
	Point() Point
	setID(EventID)
}

type SiteEvent struct {
	id        EventID
	Client    client.ID
	Site      Point
	Depot     bool
	Overlying []client.ID

	site *site
}

func (e *SiteEvent) ID() EventID      { return e.id }
func (e *SiteEvent) Kind() Kind       { return KindSite }
func (e *SiteEvent) Point() Point     { return e.Site }
func (e *SiteEvent) setID(id EventID) { e.id = id }

func (e *SiteEvent) String() string {
	return fmt.Sprintf("site#%d{client=%d (%g, %g) depot=%t overlying=%v}", e.id, e.Client, e.Site.X, e.Site.Y, e.Depot, e.Overlying)
}

// CircleEvent fires when the sweep reaches the lowest point of the circumcircle of
// three consecutive arcs; Arc is the middle one, which then vanishes.
type CircleEvent struct {
	id         EventID
	Trigger    Point
	Center     Point
	Arc        ArcID
	Generators []client.ID
	Overlying  []client.ID
}

func (e *CircleEvent) ID() EventID      { return e.id }
func (e *CircleEvent) Kind() Kind       { return KindCircle }
func (e *CircleEvent) Point() Point     { return e.Trigger }
func (e *CircleEvent) setID(id EventID) { e.id = id }

func (e *CircleEvent) String() string {
	return fmt.Sprintf("circle#%d{arc=%d trigger=(%g, %g) center=(%g, %g) generators=%v}",
		e.id, e.Arc, e.Trigger.X, e.Trigger.Y, e.Center.X, e.Center.Y, e.Generators)
}
