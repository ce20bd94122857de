package graph

import (
	"fmt"
	"sort"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
)

// Store is the building graph, immutable after construction. Every loaded
// edge is mirrored at build time so each corridor is walkable both ways with
// the same cost.
type Store struct {
	nodes     map[string]datastructure.Node
	adj       map[string][]datastructure.EdgePair
	edgeCount int
}

func NewStore(nodes []datastructure.Node, edges []datastructure.Edge) (*Store, error) {
	s := &Store{
		nodes: make(map[string]datastructure.Node, len(nodes)),
		adj:   make(map[string][]datastructure.EdgePair, len(nodes)),
	}

	for _, n := range nodes {
		if _, ok := s.nodes[n.ID]; ok {
			return nil, domain.WrapErrorf(nil, domain.ErrConflict, "duplicate node id %q in building map", n.ID)
		}
		s.nodes[n.ID] = n
	}

	for _, e := range edges {
		if _, ok := s.nodes[e.FromNodeID]; !ok {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "edge references unknown node %q", e.FromNodeID)
		}
		if _, ok := s.nodes[e.ToNodeID]; !ok {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "edge references unknown node %q", e.ToNodeID)
		}
		if e.FromNodeID == e.ToNodeID {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "self loop on node %q", e.FromNodeID)
		}
		if e.Cost < 0 {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput, "negative cost on edge %q -> %q", e.FromNodeID, e.ToNodeID)
		}
		s.adj[e.FromNodeID] = append(s.adj[e.FromNodeID], datastructure.EdgePair{ToNodeID: e.ToNodeID, Cost: e.Cost})
		s.adj[e.ToNodeID] = append(s.adj[e.ToNodeID], datastructure.EdgePair{ToNodeID: e.FromNodeID, Cost: e.Cost})
		s.edgeCount += 2
	}

	// Duplicate parallel edges are legitimate map input. Collapse them per
	// destination keeping the cheapest, and keep adjacency order fixed so
	// every lookup sees the same neighbor order.
	for id, pairs := range s.adj {
		best := make(map[string]float64, len(pairs))
		for _, p := range pairs {
			if cost, ok := best[p.ToNodeID]; !ok || p.Cost < cost {
				best[p.ToNodeID] = p.Cost
			}
		}
		dedup := make([]datastructure.EdgePair, 0, len(best))
		for to, cost := range best {
			dedup = append(dedup, datastructure.EdgePair{ToNodeID: to, Cost: cost})
		}
		sort.Slice(dedup, func(i, j int) bool { return dedup[i].ToNodeID < dedup[j].ToNodeID })
		s.adj[id] = dedup
	}

	return s, nil
}

func (s *Store) Node(id string) (datastructure.Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return datastructure.Node{}, domain.WrapErrorf(nil, domain.ErrNotFound, "node %q is not in the building graph", id)
	}
	return n, nil
}

// MustNode is for ids that are guaranteed to exist by construction, e.g. a
// node referenced by an already validated route or adjacency entry. A miss
// here is a programming error, not a runtime condition.
func (s *Store) MustNode(id string) datastructure.Node {
	n, ok := s.nodes[id]
	if !ok {
		panic(fmt.Sprintf("graph: node %q vanished from an immutable store", id))
	}
	return n
}

func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Neighbors returns the deduplicated adjacency of a node in a fixed order.
// The returned slice is shared, callers must not mutate it.
func (s *Store) Neighbors(id string) []datastructure.EdgePair {
	return s.adj[id]
}

func (s *Store) Nodes() []datastructure.Node {
	out := make([]datastructure.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount counts directed edges before deduplication, mirrors included.
func (s *Store) EdgeCount() int {
	return s.edgeCount
}
