package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/digitalocean/gradient-agent-templates/internal/config"
	"github.com/digitalocean/gradient-agent-templates/internal/templates"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.SaveYAML
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	cfg, err := runWizard(ctx, templates.Names())
	if err != nil {
		return err
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("agentctl - deploy prebuilt agent templates")
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Deployment) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Template: %s\n", cfg.Template)
	fmt.Printf("  Project:  %s\n", cfg.ProjectID)
	fmt.Printf("  Region:   %s\n", cfg.Region)
	if cfg.AgentName != "" {
		fmt.Printf("  Agent:    %s\n", cfg.AgentName)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  export DIGITALOCEAN_TOKEN=<your token>\n")
	fmt.Printf("  agentctl deploy -c %s\n", outputPath)
}
