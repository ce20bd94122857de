package navigator

import (
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
)

// reroute replans from fromID to the active destination and swaps the new
// route in wholesale. On failure the engine stays off route with position
// and route untouched; surfacing that to the operator is the caller's job,
// there is no retry loop in here.
func (e *Engine) reroute(fromID string) {
	if e.events.RerouteTriggered != nil {
		e.events.RerouteTriggered(fromID, e.destinationID)
	}
	path, _, found, err := e.planner.ShortestPath(fromID, e.destinationID)
	if err != nil || !found {
		e.status = datastructure.StatusOffRoute
		if e.events.RerouteFailed != nil {
			e.events.RerouteFailed(fromID, e.destinationID)
		}
		return
	}
	e.setRoute(path)
}
