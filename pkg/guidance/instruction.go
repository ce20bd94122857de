package guidance

import (
	"fmt"
	"math"
	"strings"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
)

const (
	TURN_LEFT         = -2
	TURN_SLIGHT_LEFT  = -1
	CONTINUE          = 0
	TURN_SLIGHT_RIGHT = 1
	TURN_RIGHT        = 2
	FINISH            = 4
	CHANGE_FLOOR      = 5
	START             = 101
)

// Instruction is one step of a route preview. Point/Floor locate the node
// the instruction applies at; Distance accumulates the walked length since
// the previous instruction.
type Instruction struct {
	Sign     int
	Name     string
	NodeID   string
	Point    datastructure.Point
	Floor    int
	Distance float64
}

func NewInstruction(sign int, name, nodeID string, p datastructure.Point, floor int) Instruction {
	return Instruction{
		Sign:   sign,
		Name:   name,
		NodeID: nodeID,
		Point:  p,
		Floor:  floor,
	}
}

func (instr *Instruction) GetTurnDescription() string {
	name := strings.TrimSpace(instr.Name)

	switch instr.Sign {
	case START:
		if name == "" {
			return "Head out"
		}
		return fmt.Sprintf("Head toward %s", name)
	case FINISH:
		if name == "" {
			return "you have arrived at your destination"
		}
		return fmt.Sprintf("you have arrived at %s", name)
	case CHANGE_FLOOR:
		return fmt.Sprintf("Take the stairs to floor %d", instr.Floor)
	case CONTINUE:
		if name == "" {
			return "Continue"
		}
		return fmt.Sprintf("Continue past %s", name)
	default:
		dir := getDirectionDescription(instr.Sign)
		if name == "" {
			return dir
		}
		return fmt.Sprintf("%s at %s", dir, name)
	}
}

func getDirectionDescription(sign int) string {
	switch sign {
	case TURN_LEFT:
		return "Turn left"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	default:
		return ""
	}
}

// signForDelta maps a heading change in radians onto a turn sign. The 0.5
// rad threshold matches the live intersection classifier; anything sharper
// than 1.9 rad still reads as a plain left/right indoors.
func signForDelta(delta float64) int {
	abs := math.Abs(delta)
	switch {
	case abs <= 0.12:
		return CONTINUE
	case abs <= turnThresholdRad:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	default:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	}
}

const turnThresholdRad = 0.5
