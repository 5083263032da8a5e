package storage

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/leengari/shardsim/internal/catalog"
	"github.com/leengari/shardsim/internal/cost"
	"github.com/leengari/shardsim/internal/simulate"
	"github.com/leengari/shardsim/internal/sizing"
)

// Runtime is a scenario made executable: the built catalog and a simulator
// bound to it.
type Runtime struct {
	Scenario *Scenario
	DB       *catalog.Database
	Sim      *simulate.Simulator
}

// QueryRun pairs a query name with its completed pipeline.
type QueryRun struct {
	Name     string
	Pipeline *simulate.Pipeline
}

// Build loads every schema, sizes every collection and wires the simulator.
func (sc *Scenario) Build(logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sizer := sc.buildSizer()

	model, err := cost.NewModel(sc.buildCostConfig())
	if err != nil {
		return nil, err
	}

	db := catalog.NewDatabase(sc.Database.Name, sc.Database.Nodes)
	for _, entry := range sc.Collections {
		node, err := LoadSchema(sc.schemaPath(entry))
		if err != nil {
			return nil, err
		}
		coll, err := catalog.NewCollection(entry.Name, node, entry.Count, sizer, entry.Cardinalities)
		if err != nil {
			return nil, errors.Wrapf(err, "sizing collection %q", entry.Name)
		}
		db.AddCollection(coll)
	}
	db.LogSummary(logger)

	sim := simulate.New(db, model, sc.buildParams(), logger)
	return &Runtime{Scenario: sc, DB: db, Sim: sim}, nil
}

func (sc *Scenario) buildSizer() *sizing.Sizer {
	sizer := sizing.NewSizer()
	if sc.Sizing.KeyOverhead > 0 {
		sizer.KeyOverhead = sc.Sizing.KeyOverhead
	}
	if sc.Sizing.DefaultScalarSize > 0 {
		sizer.DefaultScalarSize = sc.Sizing.DefaultScalarSize
	}
	if sc.Sizing.DefaultArrayCardinality > 0 {
		sizer.DefaultArrayCardinality = sc.Sizing.DefaultArrayCardinality
	}
	sizer.Strict = sc.Sizing.Strict
	for tag, size := range sc.Sizing.Types {
		sizer.Table[tag] = size
	}
	return sizer
}

func (sc *Scenario) buildCostConfig() cost.Config {
	cfg := cost.DefaultConfig()
	if sc.Cost.IOBytesPerSec > 0 {
		cfg.IOBytesPerSec = sc.Cost.IOBytesPerSec
	}
	if sc.Cost.NetBytesPerSec > 0 {
		cfg.NetBytesPerSec = sc.Cost.NetBytesPerSec
	}
	if sc.Cost.PowerWatts > 0 {
		cfg.PowerWatts = sc.Cost.PowerWatts
	}
	if sc.Cost.CarbonPerKWh > 0 {
		cfg.CarbonPerKWh = sc.Cost.CarbonPerKWh
	}
	if sc.Cost.PricePerKWh > 0 {
		cfg.PricePerKWh = sc.Cost.PricePerKWh
	}
	return cfg
}

func (sc *Scenario) buildParams() simulate.Params {
	params := simulate.DefaultParams()
	if sc.Params.IndexScanFraction > 0 {
		params.IndexScanFraction = sc.Params.IndexScanFraction
	}
	if sc.Params.ShuffleFactor > 0 {
		params.ShuffleFactor = sc.Params.ShuffleFactor
	}
	if sc.Params.GroupRatio > 0 {
		params.GroupRatio = sc.Params.GroupRatio
	}
	if sc.Params.AggRowBytes > 0 {
		params.AggRowBytes = sc.Params.AggRowBytes
	}
	return params
}

// RunQueries executes every query in the scenario in order, stopping at the
// first failing stage.
func (rt *Runtime) RunQueries() ([]QueryRun, error) {
	runs := make([]QueryRun, 0, len(rt.Scenario.Queries))
	for _, q := range rt.Scenario.Queries {
		pipeline, err := rt.runQuery(q)
		if err != nil {
			return nil, errors.Wrapf(err, "query %q", q.Name)
		}
		runs = append(runs, QueryRun{Name: q.Name, Pipeline: pipeline})
	}
	return runs, nil
}

func (rt *Runtime) runQuery(q QueryConfig) (*simulate.Pipeline, error) {
	pipeline := simulate.NewPipeline(q.Name)
	for i, stage := range q.Stages {
		out, err := rt.runStage(stage, pipeline)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d (%s)", i+1, stage.Op)
		}
		pipeline.Append(out)
	}
	return pipeline, nil
}

func (rt *Runtime) runStage(stage StageConfig, pipeline *simulate.Pipeline) (*simulate.Output, error) {
	switch stage.Op {
	case "filter":
		src, err := rt.resolveSource(stage.Source, pipeline)
		if err != nil {
			return nil, err
		}
		return rt.Sim.Filter(src, simulate.FilterSpec{
			Key:         stage.Key,
			Selectivity: stage.Selectivity,
			ShardKey:    stage.ShardKey,
			HasIndex:    stage.Index,
		})

	case "aggregate":
		src, err := rt.resolveSource(stage.Source, pipeline)
		if err != nil {
			return nil, err
		}
		return rt.Sim.Aggregate(src, simulate.AggregateSpec{
			GroupKey:       stage.GroupKey,
			ShardKey:       stage.ShardKey,
			DistinctGroups: stage.DistinctGroups,
		})

	case "join":
		outer, err := rt.resolveSource(stage.Outer, pipeline)
		if err != nil {
			return nil, err
		}
		inner, err := rt.resolveSource(stage.Inner, pipeline)
		if err != nil {
			return nil, err
		}
		spec := simulate.JoinSpec{Key: stage.Key}
		if stage.OuterShardKey != "" || stage.InnerShardKey != "" {
			spec.Sharding = &simulate.JoinSharding{
				Outer: stage.OuterShardKey,
				Inner: stage.InnerShardKey,
			}
		}
		return rt.Sim.Join(outer, inner, spec)

	default:
		return nil, errors.Errorf("unknown operator %q", stage.Op)
	}
}

// resolveSource maps a stage source reference to a Source: the keyword
// "prev" chains the previous stage, anything else is a collection name.
func (rt *Runtime) resolveSource(ref string, pipeline *simulate.Pipeline) (simulate.Source, error) {
	if ref == "prev" {
		last := pipeline.Last()
		if last == nil {
			return nil, errors.New(`"prev" used in the first stage of a pipeline`)
		}
		return last, nil
	}
	if ref == "" {
		return nil, errors.New("stage is missing a source")
	}
	return rt.Sim.Collection(ref)
}

// ShardStats evaluates the scenario's sharding-distribution requests.
func (rt *Runtime) ShardStats() ([]catalog.ShardingStats, error) {
	stats := make([]catalog.ShardingStats, 0, len(rt.Scenario.ShardStats))
	for _, entry := range rt.Scenario.ShardStats {
		st, err := rt.DB.ShardingStats(entry.Collection, entry.Key, entry.Distinct)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}
