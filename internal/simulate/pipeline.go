package simulate

import "github.com/leengari/shardsim/internal/cost"

// Pipeline accumulates the stages of a multi-operator query. Each stage's
// output may feed later stages as a Source; the pipeline itself only tracks
// order and cost.
type Pipeline struct {
	name   string
	stages []*Output
}

// NewPipeline returns an empty pipeline with a display name.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{name: name}
}

// Name returns the pipeline's display name.
func (p *Pipeline) Name() string { return p.name }

// Append records a completed stage.
func (p *Pipeline) Append(out *Output) {
	p.stages = append(p.stages, out)
}

// Stages returns the recorded stages in execution order.
func (p *Pipeline) Stages() []*Output { return p.stages }

// Last returns the most recent stage, or nil for an empty pipeline.
func (p *Pipeline) Last() *Output {
	if len(p.stages) == 0 {
		return nil
	}
	return p.stages[len(p.stages)-1]
}

// TotalCost folds the stage costs with Vector.Add. Because Add is
// associative and commutative the fold order cannot change the result.
func (p *Pipeline) TotalCost() cost.Vector {
	var total cost.Vector
	for _, out := range p.stages {
		total = total.Add(out.Cost)
	}
	return total
}
