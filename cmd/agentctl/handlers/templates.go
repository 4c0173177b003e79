package handlers

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/templates"
)

// Templates prints the deployable templates with a short description each.
func Templates() error {
	fmt.Println("Available templates:")
	fmt.Println()
	for _, name := range templates.Names() {
		tpl, err := templates.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s %s\n", name, tpl.Summary)
	}
	fmt.Println()
	fmt.Println("Deploy one with: agentctl deploy -t <name>")
	return nil
}
