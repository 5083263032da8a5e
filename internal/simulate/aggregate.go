package simulate

import "github.com/google/uuid"

// AggregateSpec describes a simulated group-by on a single key.
// DistinctGroups is the number of distinct group-key values; when zero the
// simulator falls back to Params.GroupRatio of the input rows, which is a
// coarse guess — supply the real cardinality whenever it is known.
type AggregateSpec struct {
	GroupKey       string
	ShardKey       string // empty when the source collection is not sharded
	DistinctGroups int64
}

// Aggregate prices a group-by over src.
//
// Every strategy reads the whole source once. Without a shard key one node
// does all the work. When the shard key equals the group key each node's
// partial aggregates are already complete and nothing moves. Otherwise
// partial aggregates shuffle between nodes, modeled as Params.ShuffleFactor
// of the bytes read.
func (s *Simulator) Aggregate(src Source, spec AggregateSpec) (*Output, error) {
	if spec.DistinctGroups < 0 {
		return nil, &InvalidParamError{Param: "distinct groups", Reason: "must not be negative"}
	}
	totalNodes, err := s.totalNodes()
	if err != nil {
		return nil, err
	}

	outputRows := float64(spec.DistinctGroups)
	if spec.DistinctGroups == 0 {
		outputRows = src.Rows() * s.params.GroupRatio
	}
	outputSize := outputRows * s.params.AggRowBytes

	strategy, collocated := aggregateStrategy(spec)
	bytesRead := src.TotalBytes()

	var bytesTransferred float64
	var nodes int
	switch {
	case spec.ShardKey == "":
		nodes = 1
	case collocated:
		nodes = totalNodes
	default:
		nodes = totalNodes
		bytesTransferred = bytesRead * s.params.ShuffleFactor
	}

	vec, err := s.model.Compute(bytesRead, bytesTransferred, nodes)
	if err != nil {
		return nil, err
	}

	out := &Output{
		ID:         uuid.New(),
		Database:   s.db.Name,
		Operator:   "aggregate",
		ShardKeys:  shardKeys(spec.ShardKey),
		Strategy:   strategy,
		OutputRows: outputRows,
		OutputSize: outputSize,
		Cost:       vec,
	}
	s.logOutput(out)
	return out, nil
}
