package commands

import (
	"github.com/spf13/cobra"

	"github.com/digitalocean/gradient-agent-templates/cmd/agentctl/handlers"
)

// Init returns the command for interactively creating a deployment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "deployment.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

The wizard asks for the template, project, region, and the names of the
resources to create, then writes a YAML file for 'agentctl deploy'. The API
token is never written to disk; set DIGITALOCEAN_TOKEN when deploying.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "deployment.yaml", "Output file path")

	return cmd
}
