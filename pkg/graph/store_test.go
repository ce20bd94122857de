package graph_test

import (
	"errors"
	"testing"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/graph"

	"github.com/stretchr/testify/assert"
)

func corridorNodes() []datastructure.Node {
	return []datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "b", Name: "Hallway", X: 10, Y: 0, Floor: 1},
		{ID: "c", Name: "Lab", X: 20, Y: 0, Floor: 1},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("mirrors every edge both ways", func(t *testing.T) {
		s, err := graph.NewStore(corridorNodes(), []datastructure.Edge{
			{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		})
		assert.NoError(t, err)

		assert.Equal(t, []datastructure.EdgePair{{ToNodeID: "b", Cost: 10}}, s.Neighbors("a"))
		assert.Equal(t, []datastructure.EdgePair{{ToNodeID: "a", Cost: 10}}, s.Neighbors("b"))
		assert.Equal(t, 2, s.EdgeCount())
	})

	t.Run("collapses parallel edges keeping the cheapest", func(t *testing.T) {
		s, err := graph.NewStore(corridorNodes(), []datastructure.Edge{
			{FromNodeID: "a", ToNodeID: "b", Cost: 10},
			{FromNodeID: "b", ToNodeID: "a", Cost: 7},
			{FromNodeID: "b", ToNodeID: "c", Cost: 10},
		})
		assert.NoError(t, err)

		assert.Equal(t, []datastructure.EdgePair{{ToNodeID: "b", Cost: 7}}, s.Neighbors("a"))
		// adjacency order is fixed, sorted by destination id
		assert.Equal(t, []datastructure.EdgePair{
			{ToNodeID: "a", Cost: 7},
			{ToNodeID: "c", Cost: 10},
		}, s.Neighbors("b"))
	})

	t.Run("rejects duplicate node ids", func(t *testing.T) {
		nodes := append(corridorNodes(), datastructure.Node{ID: "a", X: 5, Y: 5, Floor: 1})
		_, err := graph.NewStore(nodes, nil)
		assertCode(t, err, domain.ErrConflict)
	})

	t.Run("rejects edges to unknown nodes", func(t *testing.T) {
		_, err := graph.NewStore(corridorNodes(), []datastructure.Edge{
			{FromNodeID: "a", ToNodeID: "nope", Cost: 1},
		})
		assertCode(t, err, domain.ErrBadParamInput)
	})

	t.Run("rejects self loops and negative costs", func(t *testing.T) {
		_, err := graph.NewStore(corridorNodes(), []datastructure.Edge{
			{FromNodeID: "a", ToNodeID: "a", Cost: 1},
		})
		assertCode(t, err, domain.ErrBadParamInput)

		_, err = graph.NewStore(corridorNodes(), []datastructure.Edge{
			{FromNodeID: "a", ToNodeID: "b", Cost: -1},
		})
		assertCode(t, err, domain.ErrBadParamInput)
	})
}

func TestStoreLookups(t *testing.T) {
	s, err := graph.NewStore(corridorNodes(), []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		{FromNodeID: "b", ToNodeID: "c", Cost: 10},
	})
	assert.NoError(t, err)

	t.Run("node lookup", func(t *testing.T) {
		n, err := s.Node("b")
		assert.NoError(t, err)
		assert.Equal(t, "Hallway", n.Name)

		_, err = s.Node("missing")
		assertCode(t, err, domain.ErrNotFound)
		assert.False(t, s.HasNode("missing"))
	})

	t.Run("nodes come back in a fixed order", func(t *testing.T) {
		nodes := s.Nodes()
		assert.Len(t, nodes, 3)
		assert.Equal(t, "a", nodes[0].ID)
		assert.Equal(t, "b", nodes[1].ID)
		assert.Equal(t, "c", nodes[2].ID)
	})

	t.Run("counts", func(t *testing.T) {
		assert.Equal(t, 3, s.NodeCount())
		assert.Equal(t, 4, s.EdgeCount())
	})
}

func assertCode(t *testing.T, err error, code error) {
	t.Helper()
	assert.Error(t, err)
	var derr *domain.Error
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, code, derr.Code())
}
