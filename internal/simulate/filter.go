package simulate

import "github.com/google/uuid"

// FilterSpec describes a simulated filter: the predicate key, the expected
// selectivity and the physical design of the source collection.
type FilterSpec struct {
	Key         string
	Selectivity float64
	ShardKey    string // empty when the collection is not sharded
	HasIndex    bool   // an index exists on Key
}

// Filter prices a selection over src.
//
// Output volume is selectivity times the input. When the predicate targets
// the shard key, execution routes to the single owning node and reads only
// that node's share; otherwise every node scans and, if the collection is
// sharded, the matching documents travel to a coordinator.
func (s *Simulator) Filter(src Source, spec FilterSpec) (*Output, error) {
	if spec.Selectivity < 0 || spec.Selectivity > 1 {
		return nil, &InvalidParamError{Param: "selectivity", Reason: "must be within [0, 1]"}
	}
	totalNodes, err := s.totalNodes()
	if err != nil {
		return nil, err
	}

	outputRows := src.Rows() * spec.Selectivity
	outputSize := outputRows * src.DocBytes()

	scanFraction := 1.0
	if spec.HasIndex {
		scanFraction = s.params.IndexScanFraction
	}

	strategy, routed := filterStrategy(spec)

	var bytesRead, bytesTransferred float64
	var nodes int
	if routed {
		nodes = 1
		bytesRead = src.TotalBytes() / float64(totalNodes) * scanFraction
	} else {
		nodes = totalNodes
		bytesRead = src.TotalBytes() * scanFraction
		if spec.ShardKey != "" {
			bytesTransferred = outputSize
		}
	}

	vec, err := s.model.Compute(bytesRead, bytesTransferred, nodes)
	if err != nil {
		return nil, err
	}

	out := &Output{
		ID:         uuid.New(),
		Database:   s.db.Name,
		Operator:   "filter",
		ShardKeys:  shardKeys(spec.ShardKey),
		Index:      indexName(spec),
		Strategy:   strategy,
		OutputRows: outputRows,
		OutputSize: outputSize,
		Cost:       vec,
	}
	s.logOutput(out)
	return out, nil
}

func shardKeys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func indexName(spec FilterSpec) string {
	if spec.HasIndex {
		return spec.Key
	}
	return ""
}
