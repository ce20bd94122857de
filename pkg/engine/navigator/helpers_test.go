package navigator_test

import (
	"testing"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/routingalgorithm"
	"github.com/JOSU10xD/MapMyCampus/pkg/graph"

	"github.com/stretchr/testify/assert"
)

// corridor: a --10-- b --10-- c, all on floor 1.
func corridorFixture() ([]datastructure.Node, []datastructure.Edge) {
	nodes := []datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "b", Name: "Hallway", X: 10, Y: 0, Floor: 1},
		{ID: "c", Name: "Lab", X: 20, Y: 0, Floor: 1},
	}
	edges := []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		{FromNodeID: "b", ToNodeID: "c", Cost: 10},
	}
	return nodes, edges
}

// bent corridor: a --10-- b, where the hallway turns 90 degrees down to c.
func bentCorridorFixture() ([]datastructure.Node, []datastructure.Edge) {
	nodes := []datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "b", Name: "Corner", X: 10, Y: 0, Floor: 1},
		{ID: "c", Name: "Lab", X: 10, Y: 10, Floor: 1},
	}
	edges := []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		{FromNodeID: "b", ToNodeID: "c", Cost: 10},
	}
	return nodes, edges
}

// junction: four-way crossing at b. Screen coordinates, +y is down, so u at
// (10, 10) sits to the right of someone walking a -> b and d to the left.
func junctionFixture() ([]datastructure.Node, []datastructure.Edge) {
	nodes := []datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "b", Name: "Crossing", X: 10, Y: 0, Floor: 1},
		{ID: "c", Name: "Lab", X: 20, Y: 0, Floor: 1},
		{ID: "d", Name: "Archive", X: 10, Y: -10, Floor: 1},
		{ID: "u", Name: "Cafeteria", X: 10, Y: 10, Floor: 1},
	}
	edges := []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		{FromNodeID: "b", ToNodeID: "c", Cost: 10},
		{FromNodeID: "b", ToNodeID: "d", Cost: 10},
		{FromNodeID: "b", ToNodeID: "u", Cost: 10},
	}
	return nodes, edges
}

// stairs: a --10-- s1 ==connector== s2 --10-- e, s1 on floor 1 and s2 right
// above it on floor 2.
func stairsFixture() ([]datastructure.Node, []datastructure.Edge) {
	nodes := []datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "s1", Name: "Stairs Down", X: 10, Y: 0, Floor: 1},
		{ID: "s2", Name: "Stairs Up", X: 10, Y: 0, Floor: 2},
		{ID: "e", Name: "Office", X: 20, Y: 0, Floor: 2},
	}
	edges := []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "s1", Cost: 10},
		{FromNodeID: "s1", ToNodeID: "s2", Cost: 5},
		{FromNodeID: "s2", ToNodeID: "e", Cost: 10},
	}
	return nodes, edges
}

func buildStore(t *testing.T, nodes []datastructure.Node, edges []datastructure.Edge) (*graph.Store, error) {
	t.Helper()
	return graph.NewStore(nodes, edges)
}

func buildEngine(t *testing.T, nodes []datastructure.Node, edges []datastructure.Edge, cfg navigator.Config) (*navigator.Engine, *graph.Store) {
	t.Helper()
	store, err := graph.NewStore(nodes, edges)
	assert.NoError(t, err)
	planner := routingalgorithm.NewRouteAlgorithm(store)
	return navigator.New(store, planner, cfg), store
}

// prunedGraph hides every exit of one node, simulating a map whose walkable
// edges changed after the route was planned.
type prunedGraph struct {
	*graph.Store
	blocked string
}

func (g prunedGraph) Neighbors(id string) []datastructure.EdgePair {
	if id == g.blocked {
		return nil
	}
	return g.Store.Neighbors(id)
}

type plannerResult struct {
	path  []datastructure.Node
	found bool
}

// scriptedPlanner replays canned results, one per call.
type scriptedPlanner struct {
	script []plannerResult
}

func (p *scriptedPlanner) ShortestPath(fromID, toID string) ([]datastructure.Node, float64, bool, error) {
	if len(p.script) == 0 {
		return nil, 0, false, nil
	}
	r := p.script[0]
	p.script = p.script[1:]
	return r.path, 0, r.found, nil
}
