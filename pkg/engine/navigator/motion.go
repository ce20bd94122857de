package navigator

import (
	"math"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/geo"

	"github.com/golang/geo/r2"
)

const (
	// arrivalEpsilon absorbs float error in the arrival test.
	arrivalEpsilon = 1e-9
	// connectorEpsilon: a segment shorter than this is a floor connector,
	// a teleport with no direction of its own.
	connectorEpsilon = 1e-6
)

// Tick advances the simulation by one fixed step. The travel distance comes
// from the held inputs: the drive signal in automatic mode, directional
// input in manual mode (down/left walk the route backward). A tick with no
// movement input is a no-op, so an idle tick loop is side-effect free.
func (e *Engine) Tick() {
	if e.status != datastructure.StatusFollowing {
		return
	}
	s := e.movementStep()
	if s == 0 {
		return
	}
	if s > 0 {
		e.advanceForward(s)
	} else {
		e.moveBackward(-s)
	}
}

func (e *Engine) movementStep() float64 {
	if e.mode == ModeAutomatic {
		if e.drive {
			return e.stepDistance
		}
		return 0
	}
	forward := e.dirHeld[DirectionUp] || e.dirHeld[DirectionRight]
	backward := e.dirHeld[DirectionDown] || e.dirHeld[DirectionLeft]
	switch {
	case forward && !backward:
		return e.stepDistance
	case backward && !forward:
		return -e.stepDistance
	default:
		return 0
	}
}

// advanceForward consumes travel distance along the route, crossing node
// boundaries and carrying leftover distance onto the next segment so a fast
// step never stutters at a node. The loop is bounded: every crossing moves
// routeIndex forward.
func (e *Engine) advanceForward(s float64) {
	remaining := s
	for remaining > 0 && e.status == datastructure.StatusFollowing {
		pos := e.posR2()
		end := e.segment.End.R2()
		distToTarget := geo.Distance(pos, end)

		if distToTarget <= remaining+arrivalEpsilon || e.passedSegmentEnd(pos, remaining) {
			overshoot := remaining - distToTarget
			if overshoot < 0 {
				overshoot = 0
			}
			remaining = overshoot
			if !e.crossNode() {
				return
			}
			continue
		}

		dir := geo.Direction(pos, end)
		next := pos.Add(dir.Mul(remaining))
		e.pos.X, e.pos.Y = next.X, next.Y
		e.pos.Heading = math.Atan2(dir.Y, dir.X)
		remaining = 0
	}
}

// passedSegmentEnd guards against float drift: a proposed position beyond
// the far end of the segment counts as arrived even if the distance test
// missed by a hair.
func (e *Engine) passedSegmentEnd(pos r2.Point, step float64) bool {
	dir := geo.Direction(e.segment.Start.R2(), e.segment.End.R2())
	if dir == (r2.Point{}) {
		return true
	}
	proposed := pos.Add(dir.Mul(step))
	return proposed.Sub(e.segment.End.R2()).Dot(dir) > 0
}

// crossNode handles arrival at route[routeIndex+1]. It reports whether the
// tick may keep consuming distance on a new segment; false means motion
// halted here (destination, turn choice, dead end or reroute).
func (e *Engine) crossNode() bool {
	reached := e.route[e.routeIndex+1]
	if e.routeIndex+1 == len(e.route)-1 {
		e.arriveAt(reached)
		return false
	}

	incoming := e.route[e.routeIndex]
	exits := e.exitsFrom(reached.ID, incoming.ID)
	switch {
	case len(exits) == 0:
		// Dead end despite a planned continuation: the map changed under us
		// or carries a one-way artifact.
		e.snapTo(reached)
		if e.deadEndPolicy == DeadEndReroute {
			e.status = datastructure.StatusOffRoute
			e.reroute(reached.ID)
		}
		return false
	case len(exits) > 1 && e.mode == ModeManual:
		e.snapTo(reached)
		e.turnOptions, e.correctTurn = e.classifyExits(reached, incoming)
		e.status = datastructure.StatusAwaitingTurnChoice
		if e.events.AwaitingTurn != nil {
			e.events.AwaitingTurn(append([]datastructure.TurnOption(nil), e.turnOptions...), e.correctTurn)
		}
		return false
	}

	// Single exit, or automatic mode at a branch: keep to the planned hop.
	e.advanceSegment()
	return e.status == datastructure.StatusFollowing
}

// advanceSegment steps onto the next route segment. Zero-length hops are
// floor connectors and are crossed within the same tick, capped so a
// malformed connector chain cannot spin the tick forever. Heading is left
// alone while skipping and set from the first real segment after it.
func (e *Engine) advanceSegment() {
	e.routeIndex++
	e.enterSegment()

	skips := 0
	for e.segmentLength() < connectorEpsilon {
		if skips >= e.maxConnectorSkips {
			return
		}
		skips++
		landing := e.route[e.routeIndex+1]
		if e.routeIndex+1 == len(e.route)-1 {
			e.arriveAt(landing)
			return
		}
		e.routeIndex++
		e.enterSegment()
	}
	e.pos.Heading = e.segmentOrientation()
}

// enterSegment rebuilds the cached segment and snaps position and floor to
// its start node.
func (e *Engine) enterSegment() {
	e.rebuildSegment()
	from := e.route[e.routeIndex]
	e.pos.X, e.pos.Y = from.X, from.Y
	e.pos.Floor = from.Floor
}

// moveBackward walks the route toward its start, manual mode only. It clamps
// at route[0] and steps routeIndex back across node boundaries without any
// intersection or reroute logic. Heading keeps pointing along the forward
// direction of the active segment.
func (e *Engine) moveBackward(s float64) {
	remaining := s
	for remaining > 0 {
		pos := e.posR2()
		start := e.segment.Start.R2()
		distToStart := geo.Distance(pos, start)

		if distToStart <= remaining+arrivalEpsilon {
			remaining -= distToStart
			e.snapTo(e.route[e.routeIndex])
			if e.routeIndex == 0 {
				return
			}
			e.routeIndex--
			e.rebuildSegment()
			if e.segmentLength() >= connectorEpsilon {
				e.pos.Heading = e.segmentOrientation()
			}
			continue
		}

		dir := geo.Direction(pos, start)
		next := pos.Add(dir.Mul(remaining))
		e.pos.X, e.pos.Y = next.X, next.Y
		remaining = 0
	}
}

// arriveAt snaps to the final route node and latches DestinationReached.
// Repeat arrivals are no-ops and the event fires exactly once per route.
func (e *Engine) arriveAt(n datastructure.Node) {
	e.snapTo(n)
	e.status = datastructure.StatusDestinationReached
	if !e.destinationFired {
		e.destinationFired = true
		if e.events.DestinationReached != nil {
			e.events.DestinationReached(n.ID)
		}
	}
}

func (e *Engine) snapTo(n datastructure.Node) {
	e.pos.X, e.pos.Y = n.X, n.Y
	e.pos.Floor = n.Floor
}

func (e *Engine) posR2() r2.Point {
	return r2.Point{X: e.pos.X, Y: e.pos.Y}
}
