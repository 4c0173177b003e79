package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

var bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// IsInteractiveTTY reports whether stdout is an interactive terminal. The
// wizard refuses to run without one.
func IsInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RunWizard interactively builds a deployment configuration. templateNames
// are offered as the template choices.
func RunWizard(ctx context.Context, templateNames []string) (*Deployment, error) {
	if !IsInteractiveTTY() {
		return nil, fmt.Errorf("the wizard needs an interactive terminal; write a config file instead")
	}

	cfg := &Deployment{Region: DefaultRegion}

	templateOpts := make([]huh.Option[string], 0, len(templateNames))
	for _, name := range templateNames {
		templateOpts = append(templateOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Template").
				Description("The agent template to deploy").
				Options(templateOpts...).
				Value(&cfg.Template),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("API token").
				Description("Personal access token with read/write scope. Leave empty to use DIGITALOCEAN_TOKEN.").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Token),

			huh.NewInput().
				Title("Project ID").
				Description("The project that receives every created resource").
				Value(&cfg.ProjectID).
				Validate(required("project ID")),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("Region for the bucket, database, and namespace").
				Options(
					huh.NewOption("Toronto (tor1)", "tor1"),
					huh.NewOption("New York (nyc3)", "nyc3"),
					huh.NewOption("Amsterdam (ams3)", "ams3"),
					huh.NewOption("San Francisco (sfo3)", "sfo3"),
				).
				Value(&cfg.Region),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Agent name (optional)").
				Description("Leave empty to use the template default").
				Value(&cfg.AgentName),

			huh.NewInput().
				Title("Bucket name (optional)").
				Description("Leave empty to derive one from the template").
				Value(&cfg.BucketName).
				Validate(validateBucketName),

			huh.NewInput().
				Title("Data directory (optional)").
				Description("Local directory uploaded to the bucket, for templates with a knowledge base").
				Placeholder("./data").
				Value(&cfg.DataPath),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv("DIGITALOCEAN_TOKEN")
	}

	return cfg, nil
}

// SaveYAML writes the deployment configuration to a YAML file. The token is
// dropped so it never lands on disk; load picks it up from the environment.
func SaveYAML(cfg *Deployment, path string) error {
	redacted := *cfg
	redacted.Token = ""

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateBucketName(s string) error {
	if s == "" {
		return nil
	}
	if !bucketNameRe.MatchString(s) {
		return fmt.Errorf("bucket names are lowercase letters, digits, and hyphens")
	}
	return nil
}
