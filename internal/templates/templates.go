// Package templates defines the deployable agent templates: the agent each
// one creates, the knowledge base and data it needs, and the tool functions
// it attaches.
package templates

import (
	"fmt"
	"sort"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

// Template describes one deployable agent template.
type Template struct {
	// Name is the template identifier used in configuration.
	Name string

	// Summary is a one-line description for listings.
	Summary string

	// Agent describes the agent the template creates.
	Agent steps.AgentSpec

	// NeedsBucket provisions a Spaces bucket and uploads the data directory.
	// Implied by a knowledge base; set it alone for templates whose tools
	// read raw bucket objects.
	NeedsBucket bool

	// NeedsKnowledgeBase provisions a knowledge base over the bucket data.
	NeedsKnowledgeBase bool

	// NeedsDatabaseUser provisions a read-only database user from the
	// admin credentials in the configured secrets.
	NeedsDatabaseUser bool

	// Components lists supporting agents deployed before the main agent.
	Components []steps.ComponentAgentSpec

	// Tools lists the functions attached to the agent. Empty for templates
	// without a tool package.
	Tools []steps.Tool

	// TokenNames lists env vars that receive fresh bearer tokens in the
	// deployed function package.
	TokenNames []string

	// ExtraEnv derives additional function env entries from pipeline state.
	ExtraEnv func(ctx *provisioning.Context) map[string]string

	// OmitSecrets lists configured secrets withheld from the function env.
	OmitSecrets []string
}

// HasTools reports whether the template deploys a function package.
func (t *Template) HasTools() bool {
	return len(t.Tools) > 0
}

// Steps assembles the deployment pipeline for this template.
func (t *Template) Steps() []provisioning.Step {
	var out []provisioning.Step

	if t.NeedsBucket || t.NeedsKnowledgeBase {
		out = append(out, steps.Bucket(), steps.Upload())
	}
	if t.NeedsKnowledgeBase {
		out = append(out,
			steps.KnowledgeBase(),
			steps.DatabaseWait(steps.ContinueDegraded),
			steps.Indexing(),
		)
	}
	if t.NeedsDatabaseUser {
		out = append(out, steps.DatabaseUser())
	}

	for _, component := range t.Components {
		out = append(out, steps.ComponentAgent(component))
	}

	agent := t.Agent
	agent.WithKnowledgeBase = t.NeedsKnowledgeBase
	out = append(out, steps.Agent(agent))

	if t.HasTools() {
		out = append(out,
			steps.Namespace(),
			steps.Functions(steps.FunctionsSpec{
				TokenNames:  t.TokenNames,
				ExtraEnv:    t.ExtraEnv,
				OmitSecrets: t.OmitSecrets,
			}),
			steps.Attach(t.Tools),
		)
	}

	return out
}

// Pipeline builds a ready-to-run pipeline for this template.
func (t *Template) Pipeline() *provisioning.Pipeline {
	return provisioning.NewPipeline(t.Steps()...)
}

var registry = map[string]*Template{}

func register(t *Template) {
	registry[t.Name] = t
}

// Get returns the named template.
func Get(name string) (*Template, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q (available: %v)", name, Names())
	}
	return t, nil
}

// Names returns all registered template names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// objectSchema builds a JSON schema for an object with the given properties.
func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// stringProp builds a string property schema.
func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// intProp builds an integer property schema.
func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
