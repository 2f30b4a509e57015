package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Stage is one step of a pipeline. A stage processes every matching player
// before the next stage starts.
type Stage interface {
	Name() string
	Run(r *Round) error
}

type stageFunc struct {
	name string
	fn   func(r *Round) error
}

func (s stageFunc) Name() string { return s.name }
func (s stageFunc) Run(r *Round) error { return s.fn(r) }

// NewStage wraps a function as a named stage
func NewStage(name string, fn func(r *Round) error) Stage {
	return stageFunc{name: name, fn: fn}
}

// Pipeline runs its stages in order, stopping at the first error
type Pipeline struct {
	name   string
	stages []Stage
	logger *log.Logger
}

// NewPipeline creates a pipeline from an ordered list of stages
func NewPipeline(name string, logger *log.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{
		name:   name,
		stages: stages,
		logger: logger.WithPrefix(name),
	}
}

// Run executes every stage against the round
func (p *Pipeline) Run(r *Round) error {
	for _, stage := range p.stages {
		p.logger.Debug("Running stage", "stage", stage.Name(), "tick", r.tick)
		if err := stage.Run(r); err != nil {
			return fmt.Errorf("%s stage %q: %w", p.name, stage.Name(), err)
		}
	}
	return nil
}

// StageNames returns the stage names in execution order
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
