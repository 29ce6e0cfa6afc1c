package pipeline

import (
	"context"
	"log/slog"
)

// Step is one stage of the analysis of a URL.
type Step interface {
	// Do executes the step, reading the outputs of earlier steps from
	// state and adding its own.
	Do(ctx context.Context, state *State) error

	// Name returns the step name. It is used as the failure stage.
	Name() string
}

// Pipeline runs steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0, 4),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in order and stops at the first failure.
// The returned error is a *StepError naming the failed step. Cancellation
// is checked before each step; steps handle their own timeouts.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", state.URL,
				"reason", err,
			)
			return &StepError{Step: step.Name(), Err: err}
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", state.URL,
		)

		if err := step.Do(ctx, state); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"url", state.URL,
				"error", err,
			)
			return &StepError{Step: step.Name(), Err: err}
		}

		state.PerformedSteps = append(state.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
