package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// Tool describes one deployed function attached to the agent.
type Tool struct {
	// Name is the tool name the agent sees.
	Name string

	// Description tells the agent when to invoke the tool.
	Description string

	// FunctionPath is the "<package>/<function>" path inside the deployed
	// namespace.
	FunctionPath string

	// InputSchema and OutputSchema are JSON schemas for the tool contract.
	InputSchema  map[string]any
	OutputSchema map[string]any
}

// Attach links every deployed tool function to the agent. It requires both
// the agent and the deployed functions, and pauses briefly first since a
// function is not attachable in the instant after deployment.
func Attach(tls []Tool) provisioning.Step {
	return provisioning.Step{
		Name:     StepAttach,
		Requires: []string{StepAgent, StepFunctions},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			agentUUID := ctx.MustResult(StepAgent).ID
			namespaceID := ctx.MustResult(StepFunctions).ID

			settle(ctx, ctx.Timeouts.AttachSettle)

			for _, tool := range tls {
				err := ctx.Cloud.AttachFunction(ctx, &gradient.FunctionLinkRequest{
					AgentUUID:     agentUUID,
					Description:   tool.Description,
					FaasName:      tool.FunctionPath,
					FaasNamespace: namespaceID,
					FunctionName:  tool.Name,
					InputSchema:   tool.InputSchema,
					OutputSchema:  tool.OutputSchema,
				})
				if err != nil {
					return provisioning.StepResult{}, fmt.Errorf("failed to attach tool %s: %w", tool.Name, err)
				}
				ctx.Observer.Printf("attached tool %s (%s)", tool.Name, tool.FunctionPath)
			}

			return provisioning.StepResult{ID: agentUUID}, nil
		},
	}
}
