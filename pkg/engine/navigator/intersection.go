package navigator

import (
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/geo"
)

// turnThreshold splits the heading delta at an exit into left / straight /
// right, in radians.
const turnThreshold = 0.5

// exitsFrom lists the ways out of a node excluding the edge just arrived
// on. Neighbors are already deduplicated by destination, so parallel map
// edges cannot inflate a corridor into a fake intersection.
func (e *Engine) exitsFrom(nodeID, incomingID string) []datastructure.EdgePair {
	neighbors := e.graph.Neighbors(nodeID)
	exits := make([]datastructure.EdgePair, 0, len(neighbors))
	for _, n := range neighbors {
		if n.ToNodeID == incomingID {
			continue
		}
		exits = append(exits, n)
	}
	return exits
}

// classifyExits labels every exit of the reached waypoint relative to the
// incoming heading and reports which label matches the planned next hop.
// The correct label is feedback for the operator only, it never biases the
// selection.
func (e *Engine) classifyExits(reached, incoming datastructure.Node) ([]datastructure.TurnOption, datastructure.TurnDirection) {
	inAngle := geo.Orientation(incoming.R2(), reached.R2())
	intendedID := e.route[e.routeIndex+2].ID

	exits := e.exitsFrom(reached.ID, incoming.ID)
	options := make([]datastructure.TurnOption, 0, len(exits))
	correct := datastructure.TurnStraight
	for _, exit := range exits {
		exitNode := e.graph.MustNode(exit.ToNodeID)
		diff := geo.OrientationDelta(inAngle, geo.Orientation(reached.R2(), exitNode.R2()))
		option := datastructure.TurnOption{
			ExitNodeID: exit.ToNodeID,
			Direction:  classifyDelta(diff),
			Angle:      diff,
		}
		options = append(options, option)
		if exit.ToNodeID == intendedID {
			correct = option.Direction
		}
	}
	return options, correct
}

func classifyDelta(diff float64) datastructure.TurnDirection {
	switch {
	case diff > turnThreshold:
		return datastructure.TurnRight
	case diff < -turnThreshold:
		return datastructure.TurnLeft
	default:
		return datastructure.TurnStraight
	}
}

// SelectTurn consumes an operator turn choice while the engine is waiting
// at an intersection. A direction with no matching exit is ignored. Picking
// the planned exit resumes following; anything else goes off route and
// replans from the chosen exit node.
func (e *Engine) SelectTurn(d datastructure.TurnDirection) {
	if e.status != datastructure.StatusAwaitingTurnChoice {
		return
	}
	var selected *datastructure.TurnOption
	for i := range e.turnOptions {
		if e.turnOptions[i].Direction == d {
			selected = &e.turnOptions[i]
			break
		}
	}
	if selected == nil {
		return
	}

	intendedID := e.route[e.routeIndex+2].ID
	exitID := selected.ExitNodeID
	e.turnOptions = nil

	if exitID == intendedID {
		e.status = datastructure.StatusFollowing
		e.advanceSegment()
		return
	}
	e.status = datastructure.StatusOffRoute
	e.reroute(exitID)
}
