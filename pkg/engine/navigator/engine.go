package navigator

import (
	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/geo"

	"github.com/tiendc/go-deepcopy"
)

type GraphStore interface {
	Node(id string) (datastructure.Node, error)
	MustNode(id string) datastructure.Node
	Neighbors(id string) []datastructure.EdgePair
}

type Planner interface {
	ShortestPath(fromID, toID string) ([]datastructure.Node, float64, bool, error)
}

type Mode int

const (
	// ModeAutomatic follows the plan at every branch while the drive signal
	// is held.
	ModeAutomatic Mode = iota
	// ModeManual moves on held directional input and halts at every true
	// intersection for an operator turn choice.
	ModeManual
)

// DeadEndPolicy decides what happens when a route node has no exit besides
// the edge just arrived on.
type DeadEndPolicy int

const (
	// DeadEndHalt pins the agent at the node until the operator cancels or
	// picks a new destination.
	DeadEndHalt DeadEndPolicy = iota
	// DeadEndReroute treats the dead end like a deviation and replans to the
	// destination.
	DeadEndReroute
)

// Direction is a held directional input in manual mode. Up/right walk the
// route forward, down/left walk it backward.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
	directionCount
)

func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirectionUp, true
	case "down":
		return DirectionDown, true
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	default:
		return DirectionUp, false
	}
}

// Events are optional hooks fired synchronously inside the tick that caused
// them. Nil entries are skipped.
type Events struct {
	DestinationReached func(nodeID string)
	AwaitingTurn       func(options []datastructure.TurnOption, correct datastructure.TurnDirection)
	RerouteTriggered   func(fromID, destinationID string)
	RerouteFailed      func(fromID, destinationID string)
}

type Config struct {
	Mode              Mode
	DeadEndPolicy     DeadEndPolicy
	StepDistance      float64
	MaxConnectorSkips int
	Events            Events
}

const (
	DefaultStepDistance      = 0.6
	defaultMaxConnectorSkips = 8
)

// Engine owns all navigation state: the active route, the cached segment,
// the continuous position and the status machine. It holds no timer and no
// goroutine; an external scheduler calls Tick and injects input events, so
// there is exactly one writer.
type Engine struct {
	graph   GraphStore
	planner Planner
	events  Events

	mode              Mode
	deadEndPolicy     DeadEndPolicy
	stepDistance      float64
	maxConnectorSkips int

	route         []datastructure.Node
	routeIndex    int
	segment       datastructure.Segment
	pos           datastructure.Position
	status        datastructure.NavigationStatus
	destinationID string

	turnOptions []datastructure.TurnOption
	correctTurn datastructure.TurnDirection

	drive   bool
	dirHeld [directionCount]bool

	destinationFired bool
}

func New(g GraphStore, p Planner, cfg Config) *Engine {
	if cfg.StepDistance <= 0 {
		cfg.StepDistance = DefaultStepDistance
	}
	if cfg.MaxConnectorSkips <= 0 {
		cfg.MaxConnectorSkips = defaultMaxConnectorSkips
	}
	return &Engine{
		graph:             g,
		planner:           p,
		events:            cfg.Events,
		mode:              cfg.Mode,
		deadEndPolicy:     cfg.DeadEndPolicy,
		stepDistance:      cfg.StepDistance,
		maxConnectorSkips: cfg.MaxConnectorSkips,
		status:            datastructure.StatusIdle,
	}
}

// NavigateTo plans a fresh route and resets the navigation state onto it.
// On any planner failure nothing is mutated.
func (e *Engine) NavigateTo(startID, goalID string) error {
	path, _, found, err := e.planner.ShortestPath(startID, goalID)
	if err != nil {
		return err
	}
	if !found {
		return domain.WrapErrorf(nil, domain.ErrNotFound, "no walkable path from %q to %q", startID, goalID)
	}
	e.destinationID = goalID
	e.setRoute(path)
	return nil
}

// setRoute swaps in a route wholesale: index back to zero, position snapped
// to the first node, heading taken from the first segment. A single-node
// route is terminal immediately.
func (e *Engine) setRoute(path []datastructure.Node) {
	e.route = path
	e.routeIndex = 0
	e.turnOptions = nil
	e.destinationFired = false
	e.status = datastructure.StatusFollowing

	start := path[0]
	e.pos = datastructure.Position{X: start.X, Y: start.Y, Floor: start.Floor}
	if len(path) == 1 {
		e.arriveAt(start)
		e.segment = datastructure.Segment{}
		return
	}
	e.rebuildSegment()
	if e.segmentLength() > connectorEpsilon {
		e.pos.Heading = e.segmentOrientation()
	}
}

// Cancel drops the active route and all held input. Safe in any state.
func (e *Engine) Cancel() {
	e.route = nil
	e.routeIndex = 0
	e.segment = datastructure.Segment{}
	e.turnOptions = nil
	e.destinationID = ""
	e.status = datastructure.StatusIdle
	e.drive = false
	e.dirHeld = [directionCount]bool{}
	e.destinationFired = false
}

// SetDrive asserts or releases the dead-man's-switch used in automatic
// mode. Movement happens only while it is held.
func (e *Engine) SetDrive(held bool) {
	e.drive = held
}

func (e *Engine) SetDirection(d Direction, held bool) {
	if d < 0 || d >= directionCount {
		return
	}
	e.dirHeld[d] = held
}

func (e *Engine) Mode() Mode {
	return e.mode
}

func (e *Engine) Status() datastructure.NavigationStatus {
	return e.status
}

func (e *Engine) Position() datastructure.Position {
	return e.pos
}

func (e *Engine) rebuildSegment() {
	from := e.route[e.routeIndex]
	to := e.route[e.routeIndex+1]
	e.segment = datastructure.Segment{
		FromNodeID: from.ID,
		ToNodeID:   to.ID,
		Start:      datastructure.NewPoint(from.X, from.Y),
		End:        datastructure.NewPoint(to.X, to.Y),
	}
}

func (e *Engine) segmentLength() float64 {
	return geo.Distance(e.segment.Start.R2(), e.segment.End.R2())
}

func (e *Engine) segmentOrientation() float64 {
	return geo.Orientation(e.segment.Start.R2(), e.segment.End.R2())
}

// Snapshot is the read-only view handed to external callers. Slices are
// deep copied so a reader can never alias engine-owned state.
type Snapshot struct {
	Status        datastructure.NavigationStatus `json:"status"`
	Position      datastructure.Position         `json:"position"`
	RouteNodeIDs  []string                       `json:"route_node_ids"`
	RouteIndex    int                            `json:"route_index"`
	Segment       datastructure.Segment          `json:"segment"`
	DestinationID string                         `json:"destination_id"`
	TurnOptions   []datastructure.TurnOption     `json:"turn_options,omitempty"`
	CorrectTurn   datastructure.TurnDirection    `json:"correct_turn"`
}

func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Status:        e.status,
		Position:      e.pos,
		RouteIndex:    e.routeIndex,
		Segment:       e.segment,
		DestinationID: e.destinationID,
		CorrectTurn:   e.correctTurn,
	}
	ids := make([]string, len(e.route))
	for i, n := range e.route {
		ids[i] = n.ID
	}
	snap.RouteNodeIDs = ids
	if len(e.turnOptions) > 0 {
		_ = deepcopy.Copy(&snap.TurnOptions, &e.turnOptions)
	}
	return snap
}

// RouteNodes returns a copy of the active route for drawing.
func (e *Engine) RouteNodes() []datastructure.Node {
	var out []datastructure.Node
	_ = deepcopy.Copy(&out, &e.route)
	return out
}
