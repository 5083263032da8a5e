package storage

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Scenario is the declarative description of one simulation run: the
// deployment, the hardware assumptions, the collections and the queries.
type Scenario struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Cost        CostConfig        `mapstructure:"cost"`
	Params      ParamsConfig      `mapstructure:"params"`
	Sizing      SizingConfig      `mapstructure:"sizing"`
	Collections []CollectionEntry `mapstructure:"collections"`
	Queries     []QueryConfig     `mapstructure:"queries"`
	ShardStats  []ShardStatEntry  `mapstructure:"shard_stats"`

	baseDir string
}

// DatabaseConfig names the deployment and its width.
type DatabaseConfig struct {
	Name  string `mapstructure:"name"`
	Nodes int    `mapstructure:"nodes"`
}

// CostConfig overrides the hardware profile; zero fields keep the defaults.
type CostConfig struct {
	IOBytesPerSec  float64 `mapstructure:"io_bytes_per_sec"`
	NetBytesPerSec float64 `mapstructure:"net_bytes_per_sec"`
	PowerWatts     float64 `mapstructure:"power_watts"`
	CarbonPerKWh   float64 `mapstructure:"carbon_per_kwh"`
	PricePerKWh    float64 `mapstructure:"price_per_kwh"`
}

// ParamsConfig overrides the modeling heuristics; zero fields keep the
// defaults.
type ParamsConfig struct {
	IndexScanFraction float64 `mapstructure:"index_scan_fraction"`
	ShuffleFactor     float64 `mapstructure:"shuffle_factor"`
	GroupRatio        float64 `mapstructure:"group_ratio"`
	AggRowBytes       float64 `mapstructure:"agg_row_bytes"`
}

// SizingConfig overrides the document size model; zero fields keep the
// defaults. Types listed here are merged over the default type table.
type SizingConfig struct {
	KeyOverhead             int64            `mapstructure:"key_overhead"`
	DefaultScalarSize       int64            `mapstructure:"default_scalar_size"`
	DefaultArrayCardinality int64            `mapstructure:"default_array_cardinality"`
	Strict                  bool             `mapstructure:"strict"`
	Types                   map[string]int64 `mapstructure:"types"`
}

// CollectionEntry declares one collection: its schema file (relative to the
// scenario file), document count and array-field cardinalities.
type CollectionEntry struct {
	Name          string           `mapstructure:"name"`
	Schema        string           `mapstructure:"schema"`
	Count         int64            `mapstructure:"count"`
	Cardinalities map[string]int64 `mapstructure:"cardinalities"`
}

// QueryConfig is one named query: an ordered list of operator stages whose
// costs sum into the query total.
type QueryConfig struct {
	Name   string        `mapstructure:"name"`
	Stages []StageConfig `mapstructure:"stages"`
}

// StageConfig describes one operator invocation. Source fields accept a
// collection name or the keyword "prev", which chains the previous stage's
// output.
type StageConfig struct {
	Op string `mapstructure:"op"` // filter, join, aggregate

	// filter and aggregate source
	Source string `mapstructure:"source"`

	// filter
	Key         string  `mapstructure:"key"`
	Selectivity float64 `mapstructure:"selectivity"`
	ShardKey    string  `mapstructure:"shard_key"`
	Index       bool    `mapstructure:"index"`

	// join
	Outer         string `mapstructure:"outer"`
	Inner         string `mapstructure:"inner"`
	OuterShardKey string `mapstructure:"outer_shard_key"`
	InnerShardKey string `mapstructure:"inner_shard_key"`

	// aggregate
	GroupKey       string `mapstructure:"group_key"`
	DistinctGroups int64  `mapstructure:"distinct_groups"`
}

// ShardStatEntry requests a sharding-distribution report for one
// collection/key pair.
type ShardStatEntry struct {
	Collection string `mapstructure:"collection"`
	Key        string `mapstructure:"key"`
	Distinct   int64  `mapstructure:"distinct"`
}

// LoadScenario reads a scenario file (any format viper understands; the
// examples use YAML). Schema paths inside the file resolve relative to it.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	var sc Scenario
	if err := v.Unmarshal(&sc); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	if sc.Database.Name == "" {
		return nil, errors.Errorf("scenario %s: database.name is required", path)
	}
	if sc.Database.Nodes <= 0 {
		return nil, errors.Errorf("scenario %s: database.nodes must be positive", path)
	}
	if len(sc.Collections) == 0 {
		return nil, errors.Errorf("scenario %s: at least one collection is required", path)
	}

	sc.baseDir = filepath.Dir(path)
	return &sc, nil
}

// schemaPath resolves a collection's schema file against the scenario dir.
func (sc *Scenario) schemaPath(entry CollectionEntry) string {
	if filepath.IsAbs(entry.Schema) {
		return entry.Schema
	}
	return filepath.Join(sc.baseDir, entry.Schema)
}
