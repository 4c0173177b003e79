package commands

import (
	"github.com/spf13/cobra"

	"github.com/digitalocean/gradient-agent-templates/cmd/agentctl/handlers"
)

// Templates returns the command listing the deployable templates.
func Templates() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available agent templates",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Templates()
		},
	}
}
