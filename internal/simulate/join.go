package simulate

import "github.com/google/uuid"

// JoinSharding records the shard keys of the two join sides.
type JoinSharding struct {
	Outer string
	Inner string
}

// JoinSpec describes a simulated join on a single key. The model is a
// primary-key lookup join: every outer document matches at most one inner
// document, so the outer side fixes the output cardinality.
type JoinSpec struct {
	Key      string
	Sharding *JoinSharding // nil when the deployment is unsharded
}

// Join prices a nested-loop join of outer against inner.
//
// With no sharding metadata a single node reads both sides. When both sides
// are sharded on the join key each node joins its local partitions with no
// data movement. Otherwise the smaller side is shuffled to match the larger
// side's partitioning before the per-node joins run.
func (s *Simulator) Join(outer, inner Source, spec JoinSpec) (*Output, error) {
	totalNodes, err := s.totalNodes()
	if err != nil {
		return nil, err
	}

	outputRows := outer.Rows()
	outputSize := outputRows * (outer.DocBytes() + inner.DocBytes())

	strategy, collocated := joinStrategy(spec)
	bytesRead := outer.TotalBytes() + inner.TotalBytes()

	var bytesTransferred float64
	var nodes int
	switch {
	case spec.Sharding == nil:
		nodes = 1
	case collocated:
		nodes = totalNodes
	default:
		nodes = totalNodes
		bytesTransferred = minFloat(outer.TotalBytes(), inner.TotalBytes())
	}

	vec, err := s.model.Compute(bytesRead, bytesTransferred, nodes)
	if err != nil {
		return nil, err
	}

	var keys []string
	if spec.Sharding != nil {
		keys = shardKeys(spec.Sharding.Outer, spec.Sharding.Inner)
	}

	out := &Output{
		ID:         uuid.New(),
		Database:   s.db.Name,
		Operator:   "join",
		ShardKeys:  keys,
		Strategy:   strategy,
		OutputRows: outputRows,
		OutputSize: outputSize,
		Cost:       vec,
	}
	s.logOutput(out)
	return out, nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
