package client

import (
	"fmt"
	"math"
)

// ID identifies a node of the routing graph. Node 0 is the depot.
type ID int

const Depot ID = 0

// Assignment is the route bookkeeping owned by the routing heuristic.
type Assignment struct {
	Route    int
	Position int
	Alone    bool
}

var Unassigned = Assignment{Route: -1, Position: -1}

// Client is a customer (or the depot). Identity, coordinates and demand are fixed at
// construction; only the assignment is written afterwards.
type Client struct {
	id         ID
	x, y       float64
	demand     int
	assignment Assignment
}

func New(id ID, x, y float64, demand int) *Client {
	return &Client{
		id:         id,
		x:          x,
		y:          y,
		demand:     demand,
		assignment: Unassigned,
	}
}

func (c *Client) ID() ID                 { return c.id }
func (c *Client) X() float64             { return c.x }
func (c *Client) Y() float64             { return c.y }
func (c *Client) Demand() int            { return c.demand }
func (c *Client) IsDepot() bool          { return c.id == Depot }
func (c *Client) Assignment() Assignment { return c.assignment }

func (c *Client) Assign(a Assignment) {
	c.assignment = a
}

func (c *Client) SameLocation(other *Client) bool {
	return c.x == other.x && c.y == other.y
}

// Distance is the metric used everywhere clients are compared.
func (c *Client) Distance(other *Client) float64 {
	return Euclidean(c.x, c.y, other.x, other.y)
}

func Euclidean(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func (c *Client) String() string {
	return fmt.Sprintf("client{id=%d x=%g y=%g demand=%d route=%d pos=%d alone=%t}",
		c.id, c.x, c.y, c.demand, c.assignment.Route, c.assignment.Position, c.assignment.Alone)
}
