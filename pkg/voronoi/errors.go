package voronoi

import (
	"errors"
	"fmt"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

var (
	// ErrDegenerateGeometry covers collinear circle candidates, coincident sites and
	// cocircular generators. Handled locally, never aborts a sweep.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrNumericInstability covers comparisons that landed inside the tolerance band.
	ErrNumericInstability = errors.New("numeric instability")
)

// Anomaly is a recovered problem met during a sweep. Kind is one of the sentinels above.
type Anomaly struct {
	Kind    error
	Clients []client.ID
	Detail  string
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("%v: %s %v", a.Kind, a.Detail, a.Clients)
}

func (a Anomaly) Unwrap() error { return a.Kind }
