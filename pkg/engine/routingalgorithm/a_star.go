package routingalgorithm

import (
	"container/heap"
	"math"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/util"
)

type Graph interface {
	Node(id string) (datastructure.Node, error)
	MustNode(id string) datastructure.Node
	Neighbors(id string) []datastructure.EdgePair
}

type RouteAlgorithm struct {
	graph Graph
}

func NewRouteAlgorithm(g Graph) *RouteAlgorithm {
	return &RouteAlgorithm{graph: g}
}

// ShortestPath runs A* between two node ids and returns the node sequence
// with its total cost. found is false when the frontier empties before the
// goal is reached. Unknown ids fail immediately without touching the search.
//
// The heuristic is planar euclidean distance ignoring the floor index. Floor
// connector edges carry a fixed cost unrelated to that distance, so the
// estimate is not admissible across floors and a multi-floor route can come
// out slightly non-optimal. Known tradeoff, kept as-is.
// https://theory.stanford.edu/~amitp/GameProgramming/ImplementationNotes.html
func (rt *RouteAlgorithm) ShortestPath(fromID, toID string) (pathN []datastructure.Node, dist float64, found bool, err error) {
	from, err := rt.graph.Node(fromID)
	if err != nil {
		return nil, 0, false, err
	}
	to, err := rt.graph.Node(toID)
	if err != nil {
		return nil, 0, false, err
	}

	costSoFar := map[string]float64{fromID: 0}
	cameFrom := map[string]string{}

	nq := &priorityQueue[string]{}
	heap.Init(nq)
	heap.Push(nq, &priorityQueueNode[string]{item: fromID, gCost: 0, rank: estimate(from, to)})

	for nq.Len() > 0 {
		current := heap.Pop(nq).(*priorityQueueNode[string])
		if current.gCost > costSoFar[current.item] {
			// stale frontier entry, a cheaper path was found after push
			continue
		}
		if current.item == toID {
			return rt.reconstruct(cameFrom, fromID, toID), costSoFar[toID], true, nil
		}

		for _, neighbor := range rt.graph.Neighbors(current.item) {
			newCost := costSoFar[current.item] + neighbor.Cost
			old, ok := costSoFar[neighbor.ToNodeID]
			if !ok || newCost < old {
				costSoFar[neighbor.ToNodeID] = newCost
				cameFrom[neighbor.ToNodeID] = current.item
				neighborNode := rt.graph.MustNode(neighbor.ToNodeID)
				heap.Push(nq, &priorityQueueNode[string]{
					item:  neighbor.ToNodeID,
					gCost: newCost,
					rank:  newCost + estimate(neighborNode, to),
				})
			}
		}
	}

	return nil, 0, false, nil
}

func (rt *RouteAlgorithm) reconstruct(cameFrom map[string]string, fromID, toID string) []datastructure.Node {
	path := []datastructure.Node{}
	curr := toID
	for {
		path = append(path, rt.graph.MustNode(curr))
		if curr == fromID {
			break
		}
		curr = cameFrom[curr]
	}
	util.ReverseG(path)
	return path
}

func estimate(n, goal datastructure.Node) float64 {
	dx := n.X - goal.X
	dy := n.Y - goal.Y
	return math.Sqrt(dx*dx + dy*dy)
}
