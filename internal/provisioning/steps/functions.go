package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/secrets"
)

// FunctionsSpec describes the function package a template deploys.
type FunctionsSpec struct {
	// TokenNames lists environment variables that receive a fresh random
	// bearer token for this run.
	TokenNames []string

	// ExtraEnv supplies additional environment entries derived from pipeline
	// state (bucket names, regions). May be nil.
	ExtraEnv func(ctx *provisioning.Context) map[string]string

	// OmitSecrets lists configured secrets consumed during provisioning
	// that must not reach the deployed function environment.
	OmitSecrets []string
}

// Functions deploys the template's tool package into the namespace: the
// package directory is staged into a temporary copy, a .env with generated
// tokens and copied-through secrets is written next to it, and doctl
// deploys the staged copy. The staging directory is removed afterwards so
// secret material never outlives the step.
func Functions(spec FunctionsSpec) provisioning.Step {
	return provisioning.Step{
		Name:     StepFunctions,
		Requires: []string{StepNamespace},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config
			namespaceID := ctx.MustResult(StepNamespace).ID

			if err := ctx.Runner.CheckPrerequisites(); err != nil {
				return provisioning.StepResult{}, err
			}
			if err := ctx.Runner.Login(ctx, cfg.Token); err != nil {
				return provisioning.StepResult{}, err
			}

			// A namespace is not immediately connectable after creation.
			settle(ctx, ctx.Timeouts.NamespaceSettle)

			if err := ctx.Runner.Connect(ctx, namespaceID, cfg.Token); err != nil {
				return provisioning.StepResult{}, err
			}

			env, err := secrets.Bundle(spec.TokenNames, cfg.Secrets)
			if err != nil {
				return provisioning.StepResult{}, err
			}
			for _, name := range spec.OmitSecrets {
				delete(env, name)
			}
			if spec.ExtraEnv != nil {
				for k, v := range spec.ExtraEnv(ctx) {
					env[k] = v
				}
			}

			staged, err := secrets.StageDir(cfg.ToolsDir)
			if err != nil {
				return provisioning.StepResult{}, err
			}
			defer func() {
				if rmErr := os.RemoveAll(filepath.Dir(staged)); rmErr != nil {
					ctx.Observer.Printf("failed to remove staging directory: %v", rmErr)
				}
			}()

			if err := secrets.WriteEnvFile(staged, env); err != nil {
				return provisioning.StepResult{}, err
			}

			if err := ctx.Runner.Deploy(ctx, staged); err != nil {
				return provisioning.StepResult{}, fmt.Errorf("function deployment failed: %w", err)
			}

			return provisioning.StepResult{ID: namespaceID}, nil
		},
	}
}
