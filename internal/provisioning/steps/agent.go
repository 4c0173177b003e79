package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// AgentSpec describes the agent a template deploys.
type AgentSpec struct {
	// Name is the default agent name; the deployment config may override it.
	Name string

	// Description appears in the control panel agent listing.
	Description string

	// Instruction is the system prompt.
	Instruction string

	// WithKnowledgeBase attaches the pipeline's knowledge base on creation.
	WithKnowledgeBase bool
}

// Agent creates the agent, applies retrieval settings, and waits for its
// deployment endpoint to come up.
//
// Retrieval settings cannot be supplied on creation, so they are applied as
// an update after a short settle. A deployment that is still rolling out
// when the wait times out is not an error; the endpoint simply stays empty
// in the result.
func Agent(spec AgentSpec) provisioning.Step {
	requires := []string{}
	if spec.WithKnowledgeBase {
		requires = append(requires, StepKnowledgeBase)
	}

	return provisioning.Step{
		Name:     StepAgent,
		Requires: requires,
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config

			name := cfg.AgentName
			if name == "" {
				name = spec.Name
			}

			var kbUUIDs []string
			if spec.WithKnowledgeBase {
				kbUUIDs = []string{ctx.MustResult(StepKnowledgeBase).ID}
			}

			provisioning.LogResourceCreating(ctx.Observer, StepAgent, "agent", name)
			agent, err := ctx.Cloud.CreateAgent(ctx, &gradient.AgentCreateRequest{
				Name:               name,
				Description:        spec.Description,
				Instruction:        spec.Instruction,
				ModelUUID:          cfg.ModelUUID,
				ProjectID:          cfg.ProjectID,
				Region:             cfg.Region,
				KnowledgeBaseUUIDs: kbUUIDs,
			})
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to create agent: %w", err)
			}
			provisioning.LogResourceCreated(ctx.Observer, StepAgent, "agent", name, agent.UUID)

			// A freshly created agent rejects updates for a short window.
			settle(ctx, ctx.Timeouts.AgentSettle)

			if err := ctx.Cloud.UpdateAgentRetrieval(ctx, agent.UUID, gradient.DefaultRetrievalSettings()); err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to apply retrieval settings: %w", err)
			}

			endpoint := ""
			outcome := provisioning.Wait(ctx, provisioning.PollSpec{
				Name: "agent deployment",
				Check: func() (provisioning.Status, error) {
					current, err := ctx.Cloud.GetAgent(ctx, agent.UUID)
					if err != nil {
						return provisioning.StatusPending, err
					}
					if current.Deployment == nil {
						return provisioning.StatusPending, nil
					}
					switch current.Deployment.Status {
					case gradient.DeploymentStatusRunning:
						endpoint = current.Deployment.URL
						return provisioning.StatusReady, nil
					case gradient.DeploymentStatusFailed:
						return provisioning.StatusFailed, nil
					default:
						return provisioning.StatusPending, nil
					}
				},
				Interval: ctx.Timeouts.AgentInterval,
				Timeout:  ctx.Timeouts.AgentDeploy,
			})

			switch outcome {
			case provisioning.Failed:
				return provisioning.StepResult{}, fmt.Errorf("agent %s deployment failed", agent.UUID)
			case provisioning.TimedOut:
				provisioning.LogDegraded(ctx.Observer, StepAgent, "agent deployment", outcome)
			}

			return provisioning.StepResult{ID: agent.UUID, Endpoint: endpoint}, nil
		},
	}
}
