package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// Namespace creates the serverless function namespace for the template's
// tool package.
func Namespace() provisioning.Step {
	return provisioning.Step{
		Name: StepNamespace,
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config

			provisioning.LogResourceCreating(ctx.Observer, StepNamespace, "namespace", cfg.NamespaceLabel)
			ns, err := ctx.Cloud.CreateNamespace(ctx, cfg.NamespaceLabel, cfg.Region)
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to create namespace: %w", err)
			}
			provisioning.LogResourceCreated(ctx.Observer, StepNamespace, "namespace", cfg.NamespaceLabel, ns.ID)

			return provisioning.StepResult{
				ID:  ns.ID,
				Aux: map[string]string{auxAPIHost: ns.APIHost},
			}, nil
		},
	}
}
