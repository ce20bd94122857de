package navigator_test

import (
	"errors"
	"testing"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"

	"github.com/stretchr/testify/assert"
)

func TestNavigateTo(t *testing.T) {
	nodes, edges := corridorFixture()

	t.Run("plans a route and starts following", func(t *testing.T) {
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{Mode: navigator.ModeAutomatic})
		assert.NoError(t, eng.NavigateTo("a", "c"))

		snap := eng.Snapshot()
		assert.Equal(t, datastructure.StatusFollowing, snap.Status)
		assert.Equal(t, []string{"a", "b", "c"}, snap.RouteNodeIDs)
		assert.Equal(t, 0, snap.RouteIndex)
		assert.Equal(t, "c", snap.DestinationID)
		assert.InDelta(t, 0.0, snap.Position.X, 1e-9)
	})

	t.Run("unknown node leaves the engine untouched", func(t *testing.T) {
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{Mode: navigator.ModeAutomatic})
		err := eng.NavigateTo("a", "nope")
		assert.Error(t, err)
		assert.Equal(t, datastructure.StatusIdle, eng.Status())
		assert.Empty(t, eng.Snapshot().RouteNodeIDs)
	})

	t.Run("unreachable goal reports not found", func(t *testing.T) {
		island := append(nodes, datastructure.Node{ID: "island", X: 99, Y: 99, Floor: 1})
		eng, _ := buildEngine(t, island, edges, navigator.Config{Mode: navigator.ModeAutomatic})

		err := eng.NavigateTo("a", "island")
		assert.Error(t, err)
		var derr *domain.Error
		assert.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.ErrNotFound, derr.Code())
		assert.Equal(t, datastructure.StatusIdle, eng.Status())
	})

	t.Run("start equals goal is terminal immediately", func(t *testing.T) {
		arrivals := 0
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{
			Mode: navigator.ModeAutomatic,
			Events: navigator.Events{
				DestinationReached: func(nodeID string) { arrivals++ },
			},
		})
		assert.NoError(t, eng.NavigateTo("b", "b"))
		assert.Equal(t, datastructure.StatusDestinationReached, eng.Status())
		assert.Equal(t, 1, arrivals)
		assert.InDelta(t, 10.0, eng.Position().X, 1e-9)
	})

	t.Run("replanning mid route resets onto the new route", func(t *testing.T) {
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{
			Mode:         navigator.ModeAutomatic,
			StepDistance: 4,
		})
		assert.NoError(t, eng.NavigateTo("a", "c"))
		eng.SetDrive(true)
		eng.Tick()
		assert.InDelta(t, 4.0, eng.Position().X, 1e-9)

		assert.NoError(t, eng.NavigateTo("c", "a"))
		snap := eng.Snapshot()
		assert.Equal(t, []string{"c", "b", "a"}, snap.RouteNodeIDs)
		assert.Equal(t, 0, snap.RouteIndex)
		assert.InDelta(t, 20.0, snap.Position.X, 1e-9)
	})
}

func TestCancel(t *testing.T) {
	nodes, edges := corridorFixture()

	t.Run("drops the route and all held input", func(t *testing.T) {
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{
			Mode:         navigator.ModeAutomatic,
			StepDistance: 4,
		})
		assert.NoError(t, eng.NavigateTo("a", "c"))
		eng.SetDrive(true)
		eng.Tick()

		eng.Cancel()
		snap := eng.Snapshot()
		assert.Equal(t, datastructure.StatusIdle, snap.Status)
		assert.Empty(t, snap.RouteNodeIDs)
		assert.Empty(t, snap.DestinationID)

		// a tick after cancel moves nothing even if drive were still held
		pos := eng.Position()
		eng.Tick()
		assert.Equal(t, pos, eng.Position())
	})

	t.Run("safe to call while idle", func(t *testing.T) {
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{Mode: navigator.ModeAutomatic})
		eng.Cancel()
		assert.Equal(t, datastructure.StatusIdle, eng.Status())
	})
}

func TestSnapshotIsolation(t *testing.T) {
	t.Run("mutating a snapshot never leaks into the engine", func(t *testing.T) {
		eng := walkToJunction(t, navigator.Config{
			Mode:         navigator.ModeManual,
			StepDistance: 10,
		})
		assert.Equal(t, datastructure.StatusAwaitingTurnChoice, eng.Status())

		snap := eng.Snapshot()
		assert.NotEmpty(t, snap.TurnOptions)
		snap.TurnOptions[0].ExitNodeID = "tampered"
		snap.RouteNodeIDs[0] = "tampered"

		fresh := eng.Snapshot()
		assert.NotEqual(t, "tampered", fresh.TurnOptions[0].ExitNodeID)
		assert.Equal(t, "a", fresh.RouteNodeIDs[0])
	})

	t.Run("route nodes are a copy", func(t *testing.T) {
		nodes, edges := corridorFixture()
		eng, _ := buildEngine(t, nodes, edges, navigator.Config{Mode: navigator.ModeAutomatic})
		assert.NoError(t, eng.NavigateTo("a", "c"))

		route := eng.RouteNodes()
		route[0].ID = "tampered"
		assert.Equal(t, "a", eng.RouteNodes()[0].ID)
	})
}

func TestParseDirection(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want navigator.Direction
		ok   bool
	}{
		{"up", navigator.DirectionUp, true},
		{"down", navigator.DirectionDown, true},
		{"left", navigator.DirectionLeft, true},
		{"right", navigator.DirectionRight, true},
		{"forward", navigator.DirectionUp, false},
	} {
		got, ok := navigator.ParseDirection(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
