package datastructure

import (
	"github.com/golang/geo/r2"
)

// Node is a walkable point of interest inside the building. Coordinates are
// planar and only comparable between nodes on the same floor.
type Node struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Floor int     `json:"floor"`
}

func (n Node) R2() r2.Point {
	return r2.Point{X: n.X, Y: n.Y}
}

// Edge is one directed weighted connection. Every traversable corridor is
// stored both ways with the same cost, so the graph behaves undirected for
// pathfinding.
type Edge struct {
	FromNodeID string  `json:"from"`
	ToNodeID   string  `json:"to"`
	Cost       float64 `json:"cost"`
}

// EdgePair is an adjacency entry: the destination node plus the edge cost.
type EdgePair struct {
	ToNodeID string
	Cost     float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) R2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}
