package kv

import (
	"fmt"
	"log"
	"math"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/concurrent"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// cellSize is the side length of one floor-grid bucket, in map units. One
// key holds every node inside that square of its floor.
const cellSize = 10.0

// maxRingLevel bounds the widening search around an empty cell before the
// lookup gives up.
const maxRingLevel = 10

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func (k *KVDB) Close() {
	k.db.Close()
}

func cellKey(floor, cx, cy int) string {
	return fmt.Sprintf("%d:%d:%d", floor, cx, cy)
}

func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / cellSize)), int(math.Floor(y / cellSize))
}

// CreateNodeCells buckets every walkable node into a floor-grid cell and
// persists the buckets, zstd-compressed, via a small worker pool. Runs in
// the background at startup; lookups before it finishes just see fewer
// cells.
func (k *KVDB) CreateNodeCells(nodes []datastructure.Node) {
	bar := progressbar.NewOptions(len(nodes),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2][reset] bucketing building nodes into floor cells..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	cells := make(map[string][]SmallNode)
	for _, n := range nodes {
		cx, cy := cellOf(n.X, n.Y)
		key := cellKey(n.Floor, cx, cy)
		cells[key] = append(cells[key], SmallNode{
			ID:    n.ID,
			Name:  n.Name,
			Loc:   []float64{n.X, n.Y},
			Floor: n.Floor,
		})
		bar.Add(1)
	}

	fmt.Println("")
	bar = progressbar.NewOptions(len(cells),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][2/2][reset] saving floor cells to pebble db..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	workers := concurrent.NewWorkerPool[concurrent.SaveCellJobItem, error](4, len(cells))
	for keyStr, bucket := range cells {
		conNodes := make([]concurrent.SmallNode, len(bucket))
		for j := range bucket {
			conNodes[j] = bucket[j].toConcurrentNode()
		}
		workers.AddJob(concurrent.SaveCellJobItem{KeyStr: keyStr, Nodes: conNodes})
		bar.Add(1)
	}
	workers.Close()

	workers.Start(k.SaveCell)
	workers.Wait()
	for err := range workers.CollectResults() {
		if err != nil {
			log.Printf("saving floor cells: %v", err)
		}
	}
}

func (k *KVDB) SaveCell(item concurrent.SaveCellJobItem) error {
	nodes := make([]SmallNode, len(item.Nodes))
	for i, n := range item.Nodes {
		nodes[i] = SmallNode{ID: n.ID, Name: n.Name, Loc: n.Loc, Floor: n.Floor}
	}
	val, err := CompressNodes(nodes)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrInternalServerError, "compressing floor cell %s", item.KeyStr)
	}
	if err := k.db.Set([]byte(item.KeyStr), val, pebble.Sync); err != nil {
		return domain.WrapErrorf(err, domain.ErrInternalServerError, "writing floor cell %s", item.KeyStr)
	}
	return nil
}

// NodesNearPoint returns the nodes stored around (x, y) on one floor: the
// home cell plus its ring of neighbors, widening the ring while nothing is
// found. Fails when the whole search area is empty.
func (k *KVDB) NodesNearPoint(x, y float64, floor int) ([]datastructure.Node, error) {
	cx, cy := cellOf(x, y)

	found := []SmallNode{}
	for level := 1; level <= maxRingLevel; level++ {
		for dx := -level; dx <= level; dx++ {
			for dy := -level; dy <= level; dy++ {
				if level > 1 && abs(dx) < level && abs(dy) < level {
					// inner cells were read on an earlier pass
					continue
				}
				nodes, err := k.readCell(cellKey(floor, cx+dx, cy+dy))
				if err != nil {
					return nil, err
				}
				found = append(found, nodes...)
			}
		}
		if len(found) > 0 {
			break
		}
	}

	if len(found) == 0 {
		return nil, domain.WrapErrorf(nil, domain.ErrNotFound, "no walkable nodes around (%.1f, %.1f) on floor %d", x, y, floor)
	}

	out := make([]datastructure.Node, len(found))
	for i, n := range found {
		out[i] = datastructure.Node{ID: n.ID, Name: n.Name, X: n.Loc[0], Y: n.Loc[1], Floor: n.Floor}
	}
	return out, nil
}

func (k *KVDB) readCell(key string) ([]SmallNode, error) {
	val, closer, err := k.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrInternalServerError, "reading floor cell %s", key)
	}
	defer closer.Close()

	return LoadNodes(val)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
