package snap

import (
	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"

	"github.com/dhconnelly/rtreego"
)

var tol = 0.0001

type nodeRect struct {
	Location rtreego.Point
	Node     datastructure.Node
}

func (n *nodeRect) Bounds() rtreego.Rect {
	// a node is a point; index it as a rectangle of side 2 * tol around it
	return n.Location.ToRect(tol)
}

// FloorIndex is one rtree per floor over all walkable nodes, used to snap
// an arbitrary tapped point to the nearest node of that floor. Coordinates
// on different floors are not comparable, hence one tree each.
type FloorIndex struct {
	trees map[int]*rtreego.Rtree
}

func NewFloorIndex(nodes []datastructure.Node) *FloorIndex {
	fi := &FloorIndex{trees: make(map[int]*rtreego.Rtree)}
	for _, n := range nodes {
		tree, ok := fi.trees[n.Floor]
		if !ok {
			tree = rtreego.NewTree(2, 25, 50)
			fi.trees[n.Floor] = tree
		}
		tree.Insert(&nodeRect{
			Location: rtreego.Point{n.X, n.Y},
			Node:     n,
		})
	}
	return fi
}

func (fi *FloorIndex) NearestNode(x, y float64, floor int) (datastructure.Node, error) {
	tree, ok := fi.trees[floor]
	if !ok {
		return datastructure.Node{}, domain.WrapErrorf(nil, domain.ErrNotFound, "no walkable nodes on floor %d", floor)
	}
	obj := tree.NearestNeighbor(rtreego.Point{x, y})
	if obj == nil {
		return datastructure.Node{}, domain.WrapErrorf(nil, domain.ErrNotFound, "no walkable nodes on floor %d", floor)
	}
	return obj.(*nodeRect).Node, nil
}

func (fi *FloorIndex) Floors() []int {
	floors := make([]int, 0, len(fi.trees))
	for f := range fi.trees {
		floors = append(floors, f)
	}
	return floors
}
