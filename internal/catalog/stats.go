package catalog

// ShardingStats describes how evenly a shard key spreads a collection over
// the database's nodes, assuming uniform hash partitioning.
type ShardingStats struct {
	Collection      string
	ShardKey        string
	DocsPerNode     float64
	DistinctPerNode float64
}

// ShardingStats estimates the per-node document and distinct-key-value
// counts for sharding the named collection on shardKey, given the number of
// distinct values the key takes across the whole collection.
func (db *Database) ShardingStats(name, shardKey string, distinctValues int64) (ShardingStats, error) {
	c, err := db.Collection(name)
	if err != nil {
		return ShardingStats{}, err
	}
	if db.Nodes <= 0 {
		return ShardingStats{}, &InvalidCollectionError{Collection: name, Reason: "database has no nodes"}
	}
	nodes := float64(db.Nodes)
	return ShardingStats{
		Collection:      c.Name,
		ShardKey:        shardKey,
		DocsPerNode:     float64(c.Count) / nodes,
		DistinctPerNode: float64(distinctValues) / nodes,
	}, nil
}
