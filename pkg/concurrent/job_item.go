package concurrent

// SmallNode is the trimmed node record shared with the kv layer, enough for
// nearby-node lookups without dragging the whole graph along.
type SmallNode struct {
	ID    string
	Name  string
	Loc   []float64 // [x, y]
	Floor int
}

type SaveCellJobItem struct {
	KeyStr string
	Nodes  []SmallNode
}

type JobI interface {
	SaveCellJobItem
}

type JobFunc[T JobI, G any] func(job T) G
