package datastructure

// Segment is the cached geometry of the route hop currently being walked,
// route[routeIndex] -> route[routeIndex+1].
type Segment struct {
	FromNodeID string `json:"from"`
	ToNodeID   string `json:"to"`
	Start      Point  `json:"start"`
	End        Point  `json:"end"`
}

// Position is the continuous location of the agent. Heading is in radians.
// Outside the tick that crosses a node boundary, (X, Y) always lies on the
// active segment.
type Position struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Floor   int     `json:"floor"`
}

type NavigationStatus int

const (
	StatusIdle NavigationStatus = iota
	StatusFollowing
	StatusAwaitingTurnChoice
	StatusOffRoute
	StatusDestinationReached
)

func (s NavigationStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFollowing:
		return "following"
	case StatusAwaitingTurnChoice:
		return "awaiting_turn_choice"
	case StatusOffRoute:
		return "off_route"
	case StatusDestinationReached:
		return "destination_reached"
	default:
		return "unknown"
	}
}

func (s NavigationStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// TurnDirection classifies an exit relative to the incoming heading.
// Negative is left, positive is right, zero is straight, same convention as
// turn signs in road guidance.
type TurnDirection int

const (
	TurnLeft     TurnDirection = -1
	TurnStraight TurnDirection = 0
	TurnRight    TurnDirection = 1
)

func (d TurnDirection) String() string {
	switch d {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "straight"
	}
}

func (d TurnDirection) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// ParseTurnDirection maps the wire value of a turn-selection event. The
// second return is false for anything that is not left/straight/right.
func ParseTurnDirection(s string) (TurnDirection, bool) {
	switch s {
	case "left":
		return TurnLeft, true
	case "straight":
		return TurnStraight, true
	case "right":
		return TurnRight, true
	default:
		return TurnStraight, false
	}
}

// TurnOption is one candidate exit at an intersection, offered to the
// operator while the engine waits for a turn choice.
type TurnOption struct {
	ExitNodeID string        `json:"exit_node_id"`
	Direction  TurnDirection `json:"direction"`
	Angle      float64       `json:"angle"`
}
