package ctf

// Stage is a Level with its concrete storage/instruction types erased
// behind interface{}, so a Pipeline can chain an arbitrary number of
// levels whose types differ from stage to stage (a tree-stack level's
// If is a push-down level's Ic, and so on down to the coarsest NFA
// stage). Level.RefineErased satisfies this directly.
type Stage interface {
	RefineErased(coarseRun interface{}) []interface{}
}

type pipelineItem struct {
	stage int
	value interface{}
}

// Pipeline drives a coarsest-to-finest chain of Stages, pulling
// candidate runs one at a time rather than materialising the full
// cross product up front: a WAITING/YIELDING/EXHAUSTED iterator
// rendered here as a pull-based Next rather than a channel pipeline.
type Pipeline struct {
	stages []Stage
	queue  []pipelineItem
}

// NewPipeline seeds a Pipeline with every run accepted at the coarsest
// level and the ordered stages that refine it, finest last.
func NewPipeline(coarsestRuns []interface{}, stages []Stage) *Pipeline {
	p := &Pipeline{stages: stages}
	for _, r := range coarsestRuns {
		p.queue = append(p.queue, pipelineItem{stage: 0, value: r})
	}
	return p
}

// Next pulls the next fully-refined run surviving every stage. It
// returns ok=false once every coarsest candidate and its refinements
// have been exhausted (EXHAUSTED); the caller must type-assert the
// returned value to the finest level's concrete Run type.
func (p *Pipeline) Next() (interface{}, bool) {
	for len(p.queue) > 0 {
		item := p.queue[0]
		p.queue = p.queue[1:]

		if item.stage == len(p.stages) {
			return item.value, true
		}

		refined := p.stages[item.stage].RefineErased(item.value)
		for _, r := range refined {
			p.queue = append(p.queue, pipelineItem{stage: item.stage + 1, value: r})
		}
	}
	return nil, false
}

// Take pulls up to n fully-refined runs, stopping early if the
// pipeline is exhausted first.
func (p *Pipeline) Take(n int) []interface{} {
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		v, ok := p.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
