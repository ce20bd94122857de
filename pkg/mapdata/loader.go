package mapdata

import (
	"os"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/geo"
	"github.com/JOSU10xD/MapMyCampus/pkg/graph"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConnectorCost is the fixed traversal cost charged for taking a stair or
// lift between floors, regardless of the geometric distance between the two
// connector endpoints.
const ConnectorCost = 5.0

type NodeRecord struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Floor int     `json:"floor"`
}

type EdgeRecord struct {
	From string   `json:"from" validate:"required"`
	To   string   `json:"to" validate:"required"`
	Cost *float64 `json:"cost,omitempty"` // nil means geometric distance
}

// ConnectorRecord joins two nodes on different floors, typically the two
// landings of one staircase.
type ConnectorRecord struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type BuildingMap struct {
	Name       string            `json:"name"`
	Nodes      []NodeRecord      `json:"nodes" validate:"required,min=1,dive"`
	Edges      []EdgeRecord      `json:"edges" validate:"dive"`
	Connectors []ConnectorRecord `json:"connectors" validate:"dive"`
}

func LoadBuildingMap(path string) (*BuildingMap, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrBadParamInput, "reading building map %s", path)
	}
	return ParseBuildingMap(bb)
}

func ParseBuildingMap(bb []byte) (*BuildingMap, error) {
	var bm BuildingMap
	if err := json.Unmarshal(bb, &bm); err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrBadParamInput, "building map is not valid json")
	}
	if err := validator.New().Struct(&bm); err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrBadParamInput, "building map is missing required fields")
	}
	return &bm, nil
}

// BuildGraph turns the parsed map into a graph store. Edges without an
// explicit cost get the planar distance between their endpoints; connectors
// always get the fixed ConnectorCost.
func (bm *BuildingMap) BuildGraph() (*graph.Store, error) {
	nodes := make([]datastructure.Node, len(bm.Nodes))
	byID := make(map[string]datastructure.Node, len(bm.Nodes))
	for i, r := range bm.Nodes {
		n := datastructure.Node{ID: r.ID, Name: r.Name, X: r.X, Y: r.Y, Floor: r.Floor}
		nodes[i] = n
		byID[r.ID] = n
	}

	edges := make([]datastructure.Edge, 0, len(bm.Edges)+len(bm.Connectors))
	for _, e := range bm.Edges {
		cost := 0.0
		if e.Cost != nil {
			cost = *e.Cost
		} else {
			from, okF := byID[e.From]
			to, okT := byID[e.To]
			if !okF || !okT {
				return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "edge %q -> %q references a node not in the map", e.From, e.To)
			}
			if from.Floor != to.Floor {
				return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "edge %q -> %q crosses floors, use a connector", e.From, e.To)
			}
			cost = geo.Distance(from.R2(), to.R2())
		}
		edges = append(edges, datastructure.Edge{FromNodeID: e.From, ToNodeID: e.To, Cost: cost})
	}

	for _, c := range bm.Connectors {
		from, okF := byID[c.From]
		to, okT := byID[c.To]
		if !okF || !okT {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "connector %q -> %q references a node not in the map", c.From, c.To)
		}
		if from.Floor == to.Floor {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "connector %q -> %q stays on floor %d", c.From, c.To, from.Floor)
		}
		edges = append(edges, datastructure.Edge{FromNodeID: c.From, ToNodeID: c.To, Cost: ConnectorCost})
	}

	return graph.NewStore(nodes, edges)
}
