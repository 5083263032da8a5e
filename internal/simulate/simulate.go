// Package simulate implements the cost-based operator simulator: filter,
// join and aggregate over a read-only catalog, each picking an execution
// strategy from sharding and index metadata and pricing its modeled I/O and
// network volumes through the cost model. Nothing here executes a query or
// moves data; every call is a pure computation over descriptors.
package simulate

import (
	"fmt"
	"log/slog"

	"github.com/leengari/shardsim/internal/catalog"
	"github.com/leengari/shardsim/internal/cost"
)

// Params are the modeling heuristics of the simulator. All four are coarse
// approximations carried over from the reference model; treat results built
// on the defaults as low-confidence and override them with measured values
// where available.
type Params struct {
	// IndexScanFraction is the share of a scan an index narrows it to.
	IndexScanFraction float64
	// ShuffleFactor is the share of read bytes re-sent during a
	// partial-aggregate shuffle.
	ShuffleFactor float64
	// GroupRatio estimates distinct groups as a share of input rows when the
	// caller supplies no group cardinality.
	GroupRatio float64
	// AggRowBytes is the size of one aggregated output row (group key plus
	// accumulators).
	AggRowBytes float64
}

// DefaultParams returns the reference heuristics: index scans touch 1% of
// the data, shuffles move 50% of it, group-bys produce 10% as many rows,
// aggregated rows are 100 bytes.
func DefaultParams() Params {
	return Params{
		IndexScanFraction: 0.01,
		ShuffleFactor:     0.5,
		GroupRatio:        0.1,
		AggRowBytes:       100,
	}
}

// InvalidParamError reports an operator parameter outside its domain
type InvalidParamError struct {
	Param  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Simulator prices operators against one database deployment. It holds only
// read-only state and may be shared across goroutines.
type Simulator struct {
	db     *catalog.Database
	model  *cost.Model
	params Params
	logger *slog.Logger
}

// New binds a simulator to a database, a cost model and a set of modeling
// heuristics.
func New(db *catalog.Database, model *cost.Model, params Params, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{db: db, model: model, params: params, logger: logger}
}

// Database returns the catalog the simulator prices against.
func (s *Simulator) Database() *catalog.Database { return s.db }

// totalNodes validates the deployment width before any per-node arithmetic.
func (s *Simulator) totalNodes() (int, error) {
	if s.db.Nodes <= 0 {
		return 0, &cost.InvalidTopologyError{Nodes: s.db.Nodes}
	}
	return s.db.Nodes, nil
}

// Collection resolves a catalog collection into an operator source.
func (s *Simulator) Collection(name string) (Source, error) {
	c, err := s.db.Collection(name)
	if err != nil {
		return nil, err
	}
	return collectionSource{c: c}, nil
}

func (s *Simulator) logOutput(out *Output) {
	s.logger.Debug("operator simulated",
		slog.String("operator", out.Operator),
		slog.String("database", out.Database),
		slog.String("strategy", string(out.Strategy)),
		slog.Float64("output_rows", out.OutputRows),
		slog.Float64("output_bytes", out.OutputSize),
		slog.Int("nodes", out.Cost.NodesInvolved),
		slog.Float64("time_s", out.Cost.TimeSec),
	)
}
