package kv

import (
	"github.com/JOSU10xD/MapMyCampus/pkg/concurrent"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// SmallNode is what actually lands in pebble: id, display name, planar
// location and floor. Enough for nearby lookups, nothing else.
type SmallNode struct {
	ID    string
	Name  string
	Loc   []float64 // [x, y]
	Floor int
}

func (s *SmallNode) toConcurrentNode() concurrent.SmallNode {
	return concurrent.SmallNode{
		ID:    s.ID,
		Name:  s.Name,
		Loc:   s.Loc,
		Floor: s.Floor,
	}
}

func Encode(nodes []SmallNode) []byte {
	encoded, _ := binary.Marshal(nodes)
	return encoded
}

func Decode(bb []byte) ([]SmallNode, error) {
	var nodes []SmallNode
	if err := binary.Unmarshal(bb, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}

func CompressNodes(nodes []SmallNode) ([]byte, error) {
	return Compress(Encode(nodes))
}

func LoadNodes(val []byte) ([]SmallNode, error) {
	bb, err := Decompress(val)
	if err != nil {
		return nil, err
	}
	return Decode(bb)
}
