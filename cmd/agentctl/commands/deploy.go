package commands

import (
	"github.com/spf13/cobra"

	"github.com/digitalocean/gradient-agent-templates/cmd/agentctl/handlers"
)

// Deploy returns the command for deploying an agent template.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file
//	--template, -t: Template name, for configuration from environment only
//	--env-file, -e: dotenv file loaded into the environment first
//
// Environment variables:
//
//	DIGITALOCEAN_TOKEN: API token (required unless set in the config file)
//	PROJECT_ID: Project receiving the created resources
func Deploy() *cobra.Command {
	var (
		configPath string
		template   string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an agent template",
		Long: `Deploy an agent template end to end.

This provisions everything the template needs: a Spaces bucket with the
uploaded data, a knowledge base with its search database, the agent itself,
and a function namespace with the template's tools deployed and attached.

Configuration comes from a YAML file (see 'agentctl init'), with unset
fields filled from the environment. With --template and no config file,
everything comes from the environment.

Examples:
  # Deploy using a config file
  agentctl deploy -c sql-agent.yaml

  # Deploy straight from the environment
  agentctl deploy -t logs-assistant

  # Load credentials from a dotenv file first
  agentctl deploy -t sql -e .env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, template, envFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&template, "template", "t", "", "Template name (configuration from environment)")
	cmd.Flags().StringVarP(&envFile, "env-file", "e", "", "dotenv file loaded before reading the environment")

	return cmd
}
