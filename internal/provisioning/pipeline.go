package provisioning

import (
	"fmt"
	"time"
)

// Step is one unit of work that creates or mutates an external resource.
// Prerequisites are declared statically so the pipeline can validate ordering
// before anything touches cloud state.
type Step struct {
	// Name identifies the step and keys its result in the context.
	Name string

	// Requires lists step names whose results must exist before Run is called.
	Requires []string

	// Run performs the work and returns the result recorded under Name.
	Run func(ctx *Context) (StepResult, error)
}

// Pipeline executes an ordered list of named steps.
type Pipeline struct {
	Steps []Step
}

// NewPipeline creates a pipeline from the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// Validate checks that step names are unique and that every declared
// prerequisite refers to an earlier step. A violation is a programming error
// in the step list, not a runtime condition.
func (p *Pipeline) Validate() error {
	seen := make(map[string]bool, len(p.Steps))
	for _, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("pipeline contains an unnamed step")
		}
		if seen[step.Name] {
			return fmt.Errorf("duplicate step name %q", step.Name)
		}
		for _, req := range step.Requires {
			if !seen[req] {
				return &DependencyError{Step: step.Name, Missing: req}
			}
		}
		seen[step.Name] = true
	}
	return nil
}

// Run executes all steps sequentially, recording each result in the context.
// The first failing step halts the pipeline and is returned wrapped in a
// StepError. Ephemeral credentials registered during the run are released on
// both success and failure paths; resources already created are left in
// place for manual cleanup.
func (p *Pipeline) Run(ctx *Context) (err error) {
	if verr := p.Validate(); verr != nil {
		return verr
	}

	defer ctx.Credentials.ReleaseAll(ctx.Observer)

	start := time.Now()
	ctx.Observer.Printf("Starting deployment with %d steps...", len(p.Steps))

	for i, step := range p.Steps {
		stepStart := time.Now()
		label := fmt.Sprintf("%s (%d/%d)", step.Name, i+1, len(p.Steps))

		for _, req := range step.Requires {
			if _, ok := ctx.Result(req); !ok {
				return &DependencyError{Step: step.Name, Missing: req}
			}
		}

		LogStepStart(ctx.Observer, label)

		result, rerr := step.Run(ctx)
		if rerr != nil {
			LogStepFailed(ctx.Observer, label, rerr)
			return &StepError{Step: step.Name, Err: rerr}
		}

		ctx.record(step.Name, result)
		LogStepComplete(ctx.Observer, label, time.Since(stepStart))
	}

	ctx.Observer.Printf("Deployment completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// DependencyError reports a step whose declared prerequisite is missing.
type DependencyError struct {
	Step    string
	Missing string
}

func (e *DependencyError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("missing prerequisite step %q", e.Missing)
	}
	return fmt.Sprintf("step %q requires %q, which has not run", e.Step, e.Missing)
}

// StepError wraps a failure from an individual step with its name.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
