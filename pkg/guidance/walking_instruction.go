package guidance

import (
	"errors"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/geo"
	"github.com/JOSU10xD/MapMyCampus/pkg/util"
)

type Graph interface {
	Neighbors(id string) []datastructure.EdgePair
}

// InstructionsFromRoute turns a planned node sequence into operator-facing
// walking instructions. Pass-through nodes (no real branch, no meaningful
// heading change) fold into the previous instruction's distance so a long
// corridor reads as one step.
type InstructionsFromRoute struct {
	graph Graph
}

func NewInstructionsFromRoute(g Graph) *InstructionsFromRoute {
	return &InstructionsFromRoute{graph: g}
}

// WalkingInstruction is the rendered form returned to API clients.
type WalkingInstruction struct {
	Instruction string              `json:"instruction"`
	NodeID      string              `json:"node_id"`
	Name        string              `json:"name,omitempty"`
	Point       datastructure.Point `json:"point"`
	Floor       int                 `json:"floor"`
	Distance    float64             `json:"distance"`
}

func NewWalkingInstruction(ins Instruction, description string) WalkingInstruction {
	return WalkingInstruction{
		Instruction: description,
		NodeID:      ins.NodeID,
		Name:        ins.Name,
		Point:       ins.Point,
		Floor:       ins.Floor,
		Distance:    util.RoundFloat(ins.Distance, 2),
	}
}

func (ifr *InstructionsFromRoute) GetWalkingInstructions(path []datastructure.Node) ([]WalkingInstruction, error) {
	if len(path) == 0 {
		return nil, errors.New("route is empty")
	}

	instructions := ifr.build(path)
	out := make([]WalkingInstruction, 0, len(instructions))
	for i := range instructions {
		out = append(out, NewWalkingInstruction(instructions[i], instructions[i].GetTurnDescription()))
	}
	return out, nil
}

func (ifr *InstructionsFromRoute) build(path []datastructure.Node) []Instruction {
	first := path[0]
	startName := first.Name
	if len(path) > 1 {
		startName = path[1].Name
	}
	ways := []Instruction{NewInstruction(START, startName, first.ID, datastructure.NewPoint(first.X, first.Y), first.Floor)}

	for i := 1; i < len(path)-1; i++ {
		prev, node, next := path[i-1], path[i], path[i+1]
		hop := geo.Distance(prev.R2(), node.R2())
		ways[len(ways)-1].Distance += hop

		if next.Floor != node.Floor {
			ways = append(ways, NewInstruction(CHANGE_FLOOR, node.Name, node.ID, datastructure.NewPoint(node.X, node.Y), next.Floor))
			continue
		}
		if node.Floor != prev.Floor {
			// landing after a connector, heading carries no information here
			continue
		}

		inAngle := geo.Orientation(prev.R2(), node.R2())
		outAngle := geo.Orientation(node.R2(), next.R2())
		sign := signForDelta(geo.OrientationDelta(inAngle, outAngle))
		if sign == CONTINUE && !ifr.isBranch(node.ID, prev.ID) {
			continue
		}
		if sign == CONTINUE {
			// real branch but straight through: only worth a word when the
			// operator could plausibly turn off here
			ways = append(ways, NewInstruction(CONTINUE, node.Name, node.ID, datastructure.NewPoint(node.X, node.Y), node.Floor))
			continue
		}
		ways = append(ways, NewInstruction(sign, node.Name, node.ID, datastructure.NewPoint(node.X, node.Y), node.Floor))
	}

	last := path[len(path)-1]
	if len(path) > 1 {
		ways[len(ways)-1].Distance += geo.Distance(path[len(path)-2].R2(), last.R2())
	}
	ways = append(ways, NewInstruction(FINISH, last.Name, last.ID, datastructure.NewPoint(last.X, last.Y), last.Floor))
	return ways
}

// isBranch reports whether a route node offers more than one way onward,
// the incoming edge excluded.
func (ifr *InstructionsFromRoute) isBranch(nodeID, prevID string) bool {
	count := 0
	for _, n := range ifr.graph.Neighbors(nodeID) {
		if n.ToNodeID == prevID {
			continue
		}
		count++
	}
	return count > 1
}
