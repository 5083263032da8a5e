package simulate

// Strategy names the execution plan a simulated operator would run under the
// given sharding and index metadata. The labels are the ones printed in
// reports.
type Strategy string

const (
	StrategyFullScan      Strategy = "Full scan"
	StrategyIndex         Strategy = "Index"
	StrategyShardFullScan Strategy = "Shard / Full scan"
	StrategyShardIndex    Strategy = "Shard / Index"

	StrategyNestedLoop        Strategy = "Nested Loop"
	StrategyShardNestedLoop   Strategy = "Shard / Nested Loop"
	StrategyShuffleNestedLoop Strategy = "Map/Reduce & Nested Loop"

	StrategyLocalAggregate      Strategy = "Local Aggregate"
	StrategyShardLocalAggregate Strategy = "Shard / Local Aggregate"
	StrategyShuffleAggregate    Strategy = "Map/Reduce Aggregate (Shuffle)"
)

// filterStrategy picks the filter plan. Rules are evaluated in order:
//
//  1. predicate on the shard key — the lookup routes to the single owning
//     node (collocated)
//  2. otherwise every node scans; an index narrows each scan, and a sharded
//     collection must gather results to a coordinator
//
// routed reports whether rule 1 matched.
func filterStrategy(f FilterSpec) (strategy Strategy, routed bool) {
	if f.ShardKey != "" && f.Key == f.ShardKey {
		if f.HasIndex {
			return StrategyShardIndex, true
		}
		return StrategyShardFullScan, true
	}
	switch {
	case f.ShardKey != "" && f.HasIndex:
		return StrategyShardIndex, false
	case f.ShardKey != "":
		return StrategyShardFullScan, false
	case f.HasIndex:
		return StrategyIndex, false
	default:
		return StrategyFullScan, false
	}
}

// joinStrategy picks the join plan. Rules in order: no sharding metadata
// means a single-node nested loop; both sides sharded on the join key join
// locally per node (collocated); anything else shuffles the smaller side.
func joinStrategy(j JoinSpec) (strategy Strategy, collocated bool) {
	if j.Sharding == nil {
		return StrategyNestedLoop, false
	}
	if j.Sharding.Outer == j.Key && j.Sharding.Inner == j.Key {
		return StrategyShardNestedLoop, true
	}
	return StrategyShuffleNestedLoop, false
}

// aggregateStrategy picks the aggregation plan. Rules in order: no shard key
// means one node aggregates everything; shard key equal to the group key
// keeps partial aggregates local (collocated); otherwise partials shuffle.
func aggregateStrategy(a AggregateSpec) (strategy Strategy, collocated bool) {
	if a.ShardKey == "" {
		return StrategyLocalAggregate, false
	}
	if a.ShardKey == a.GroupKey {
		return StrategyShardLocalAggregate, true
	}
	return StrategyShuffleAggregate, false
}
