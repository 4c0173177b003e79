package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// ComponentAgentSpec describes a supporting agent deployed alongside the
// template's main agent, such as the auditor's critic and revisor.
type ComponentAgentSpec struct {
	// StepName keys the component's result in the pipeline.
	StepName string

	// Name, Description, and Instruction define the agent itself.
	Name        string
	Description string
	Instruction string

	// KeyName labels the API key created for programmatic access.
	KeyName string
}

// ComponentAgent creates a supporting agent, waits for its endpoint, and
// creates an API key so other functions can invoke it. Unlike the main
// agent, a component without an endpoint is useless to its callers, so a
// deployment that never comes up fails the step.
func ComponentAgent(spec ComponentAgentSpec) provisioning.Step {
	return provisioning.Step{
		Name: spec.StepName,
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config

			provisioning.LogResourceCreating(ctx.Observer, spec.StepName, "agent", spec.Name)
			agent, err := ctx.Cloud.CreateAgent(ctx, &gradient.AgentCreateRequest{
				Name:        spec.Name,
				Description: spec.Description,
				Instruction: spec.Instruction,
				ModelUUID:   cfg.ModelUUID,
				ProjectID:   cfg.ProjectID,
				Region:      cfg.Region,
			})
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to create agent %s: %w", spec.Name, err)
			}
			provisioning.LogResourceCreated(ctx.Observer, spec.StepName, "agent", spec.Name, agent.UUID)

			endpoint := ""
			outcome := provisioning.Wait(ctx, provisioning.PollSpec{
				Name: fmt.Sprintf("%s deployment", spec.Name),
				Check: func() (provisioning.Status, error) {
					current, err := ctx.Cloud.GetAgent(ctx, agent.UUID)
					if err != nil {
						return provisioning.StatusPending, err
					}
					if current.Deployment == nil {
						return provisioning.StatusPending, nil
					}
					if current.Deployment.Status == gradient.DeploymentStatusFailed {
						return provisioning.StatusFailed, nil
					}
					if current.Deployment.URL == "" {
						return provisioning.StatusPending, nil
					}
					endpoint = current.Deployment.URL
					return provisioning.StatusReady, nil
				},
				Interval: ctx.Timeouts.AgentInterval,
				Timeout:  ctx.Timeouts.AgentDeploy,
			})
			if outcome != provisioning.Ready {
				return provisioning.StepResult{}, fmt.Errorf("agent %s did not expose an endpoint (%s)", spec.Name, outcome)
			}

			key, err := ctx.Cloud.CreateAgentAPIKey(ctx, agent.UUID, spec.KeyName)
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to enable access to agent %s: %w", spec.Name, err)
			}

			return provisioning.StepResult{
				ID:       agent.UUID,
				Endpoint: endpoint,
				Aux:      map[string]string{auxAccessKey: key},
			}, nil
		},
	}
}

// ComponentEnv returns the endpoint and access key of a deployed component
// agent as environment entries under the given prefix.
func ComponentEnv(ctx *provisioning.Context, stepName, prefix string) map[string]string {
	result := ctx.MustResult(stepName)
	return map[string]string{
		prefix + "_ENDPOINT":   result.Endpoint,
		prefix + "_ACCESS_KEY": result.AuxValue(auxAccessKey),
	}
}
