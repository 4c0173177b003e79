// Package main is the entry point for the agentctl CLI.
//
// agentctl deploys prebuilt agent templates: it provisions the Spaces
// bucket, knowledge base, agent, function namespace, and tool functions a
// template needs, end to end, from a single config file.
//
// Commands: init, deploy, templates, doctor, version.
//
// For detailed usage information, run:
//
//	agentctl --help
package main

import (
	"fmt"
	"os"

	"github.com/digitalocean/gradient-agent-templates/cmd/agentctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
