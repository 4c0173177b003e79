package commands

import (
	"github.com/spf13/cobra"

	"github.com/digitalocean/gradient-agent-templates/cmd/agentctl/handlers"
)

// Doctor returns the command for checking deployment prerequisites.
//
// It verifies the doctl binary, the API token, and reachability of the API
// before anything is created.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check deployment prerequisites",
		Long: `Check that the environment can run a deployment.

Verifies:
  - doctl is installed and on PATH
  - DIGITALOCEAN_TOKEN is set
  - the API accepts the token

Examples:
  agentctl doctor`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context())
		},
	}
}
