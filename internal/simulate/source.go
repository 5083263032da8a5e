package simulate

import (
	"github.com/google/uuid"

	"github.com/leengari/shardsim/internal/catalog"
	"github.com/leengari/shardsim/internal/cost"
)

// Source is anything an operator can read: a catalog collection or the
// output of an earlier stage. Row counts are fractional because selectivity
// estimates rarely land on whole documents.
type Source interface {
	// Rows is the estimated number of documents in the source.
	Rows() float64
	// TotalBytes is the estimated byte volume of the whole source.
	TotalBytes() float64
	// DocBytes is the estimated size of one document; zero for an empty
	// source.
	DocBytes() float64
}

// collectionSource adapts a catalog descriptor to the Source interface.
type collectionSource struct {
	c *catalog.Collection
}

func (s collectionSource) Rows() float64       { return float64(s.c.Count) }
func (s collectionSource) TotalBytes() float64 { return float64(s.c.TotalBytes()) }
func (s collectionSource) DocBytes() float64   { return float64(s.c.DocSize) }

// Output is the immutable result of one operator invocation. It records the
// physical-design metadata the strategy was chosen from, the estimated
// output volume and the resource cost. An Output is itself a Source, so
// stages chain without copying.
type Output struct {
	ID         uuid.UUID
	Database   string
	Operator   string
	ShardKeys  []string
	Index      string
	Strategy   Strategy
	OutputRows float64
	OutputSize float64
	Cost       cost.Vector
}

func (o *Output) Rows() float64       { return o.OutputRows }
func (o *Output) TotalBytes() float64 { return o.OutputSize }

func (o *Output) DocBytes() float64 {
	if o.OutputRows <= 0 {
		return 0
	}
	return o.OutputSize / o.OutputRows
}
