// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/config"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/serverless"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
	"github.com/digitalocean/gradient-agent-templates/internal/templates"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudClient creates the API client.
	newCloudClient = func(token string, timeouts *config.Timeouts) (gradient.Client, error) {
		return gradient.NewRealClient(token, timeouts)
	}

	// newRunner creates the doctl runner.
	newRunner = func(timeouts *config.Timeouts) serverless.Runner {
		return serverless.NewCLIRunner(timeouts.RetryMaxAttempts, timeouts.RetryInitialDelay)
	}

	// loadConfigFile loads config from a file (for testing injection).
	loadConfigFile = config.LoadFile

	// configFromEnv builds config from the environment (for testing injection).
	configFromEnv = config.FromEnv

	// loadEnvFile loads a dotenv file (for testing injection).
	loadEnvFile = config.LoadEnvFile
)

// Deploy provisions every resource an agent template needs.
//
// Configuration is loaded from the config file when one is given, otherwise
// built from the environment for the named template. An optional dotenv file
// is loaded into the environment first.
func Deploy(ctx context.Context, configPath, template, envFile string) error {
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
	}

	cfg, err := loadDeployConfig(configPath, template)
	if err != nil {
		return err
	}

	tpl, err := templates.Get(cfg.Template)
	if err != nil {
		return err
	}

	timeouts := config.LoadTimeouts()
	cloud, err := newCloudClient(cfg.Token, timeouts)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, cfg, cloud, newRunner(timeouts))
	pctx.Timeouts = timeouts
	if err := tpl.Pipeline().Run(pctx); err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	printDeploySuccess(pctx, tpl)
	return nil
}

func loadDeployConfig(configPath, template string) (*config.Deployment, error) {
	if configPath != "" {
		return loadConfigFile(configPath)
	}
	if template == "" {
		return nil, fmt.Errorf("either --config or --template is required")
	}
	return configFromEnv(template)
}

// printDeploySuccess outputs the created resources and next steps.
func printDeploySuccess(pctx *provisioning.Context, tpl *templates.Template) {
	fmt.Printf("\nDeployment complete!\n\n")

	if agent, ok := pctx.Result(steps.StepAgent); ok {
		fmt.Printf("  Agent:     %s\n", agent.ID)
		if agent.Endpoint != "" {
			fmt.Printf("  Endpoint:  %s\n", agent.Endpoint)
		} else {
			fmt.Printf("  Endpoint:  still rolling out; check the control panel\n")
		}
	}
	if kb, ok := pctx.Result(steps.StepKnowledgeBase); ok {
		fmt.Printf("  Knowledge base: %s\n", kb.ID)
	}
	if bucket, ok := pctx.Result(steps.StepBucket); ok {
		fmt.Printf("  Bucket:    %s\n", bucket.ID)
	}
	if ns, ok := pctx.Result(steps.StepNamespace); ok {
		fmt.Printf("  Namespace: %s (%d tools attached)\n", ns.ID, len(tpl.Tools))
	}

	fmt.Printf("\nTry the agent from its playground in the control panel.\n")
}
