package provisioning

import (
	"context"

	"github.com/digitalocean/gradient-agent-templates/internal/config"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/database"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/serverless"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/spaces"
)

// StepResult holds the outcome of one resource step. It is immutable once
// stored in the context.
type StepResult struct {
	// ID is the opaque identifier of the created resource (UUID, key name).
	ID string

	// Endpoint is the resource URL, when the resource exposes one.
	Endpoint string

	// Aux carries extra derived values (generated key names, database IDs).
	Aux map[string]string
}

// AuxValue returns the named auxiliary value, or "" when absent.
func (r StepResult) AuxValue(key string) string {
	if r.Aux == nil {
		return ""
	}
	return r.Aux[key]
}

// Context wraps all dependencies and state needed for a provisioning step.
// It is created empty at pipeline start, populated step by step, and
// discarded (with ephemeral-credential release) at pipeline end.
type Context struct {
	context.Context

	Config   *config.Deployment
	Cloud    gradient.Client
	Runner   serverless.Runner
	Observer Observer
	Timeouts *config.Timeouts

	// Storage is set by the bucket step once bucket credentials exist and is
	// consumed by later steps that read or write objects.
	Storage spaces.ObjectStore

	// NewStorage builds an object-storage client from Spaces credentials.
	NewStorage spaces.Factory

	// Database provisions database users for templates that need one.
	Database database.UserManager

	// Credentials tracks generated credentials released on pipeline exit.
	Credentials *CredentialRegistry

	results map[string]StepResult
	order   []string
}

// NewContext creates a provisioning context with an empty result set.
func NewContext(ctx context.Context, cfg *config.Deployment, cloud gradient.Client, runner serverless.Runner) *Context {
	return &Context{
		Context:     ctx,
		Config:      cfg,
		Cloud:       cloud,
		Runner:      runner,
		Observer:    NewConsoleObserver(),
		Timeouts:    config.LoadTimeouts(),
		NewStorage:  spaces.New,
		Database:    database.MySQL{},
		Credentials: NewCredentialRegistry(),
		results:     make(map[string]StepResult),
	}
}

// Result returns the result recorded for a completed step.
func (c *Context) Result(name string) (StepResult, bool) {
	r, ok := c.results[name]
	return r, ok
}

// MustResult returns the result for a step the caller declared as a
// prerequisite. The pipeline guarantees presence before the step runs.
func (c *Context) MustResult(name string) StepResult {
	r, ok := c.results[name]
	if !ok {
		panic(&DependencyError{Missing: name})
	}
	return r
}

// Completed returns the names of completed steps in execution order.
func (c *Context) Completed() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// record stores a step result. Results are write-once; the pipeline rejects
// duplicate step names before execution starts.
func (c *Context) record(name string, r StepResult) {
	c.results[name] = r
	c.order = append(c.order, name)
}
