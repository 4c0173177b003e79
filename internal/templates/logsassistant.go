package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "logs-assistant",
		Summary: "Diagnoses app platform deployments from their logs",
		Agent: steps.AgentSpec{
			Name:        "Logs Assistant",
			Description: "Explains errors and warnings found in app logs",
			Instruction: "You help developers debug their app deployments. When given " +
				"an app ID, fetch its logs with get_logs and explain the errors and " +
				"warnings found, with likely causes and concrete fixes. If the logs " +
				"are clean, say so.",
		},
		Tools: []steps.Tool{
			{
				Name:         "get_logs",
				Description:  "Fetch the error and warning report for an app's build, deploy, and runtime logs",
				FunctionPath: "logs/get_logs",
				InputSchema: objectSchema(map[string]any{
					"app_id": stringProp("The app platform application ID"),
				}, "app_id"),
				OutputSchema: objectSchema(map[string]any{
					"result": stringProp("The extracted error and warning report"),
				}),
			},
		},
		TokenNames: []string{"GET_LOGS_TOKEN"},
		// The log fetcher calls the apps API with the deployment token.
		ExtraEnv: func(ctx *provisioning.Context) map[string]string {
			return map[string]string{"AGENT_TOKEN": ctx.Config.Token}
		},
	})
}
