package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "twilio",
		Summary: "Sends SMS messages on the user's behalf",
		Agent: steps.AgentSpec{
			Name:        "SMS Agent",
			Description: "Composes and sends SMS messages",
			Instruction: "You help users send SMS messages. Confirm the recipient " +
				"number and the message text before calling send_message, and report " +
				"the delivery status returned by the gateway.",
		},
		Tools: []steps.Tool{
			{
				Name:         "send_message",
				Description:  "Send an SMS message to a phone number",
				FunctionPath: "sms/send_message",
				InputSchema: objectSchema(map[string]any{
					"to_number":    stringProp("Recipient phone number in E.164 format"),
					"message_text": stringProp("The message body to send"),
				}, "to_number", "message_text"),
				OutputSchema: objectSchema(map[string]any{
					"success": map[string]any{"type": "boolean", "description": "Whether the message was accepted"},
					"status":  stringProp("Gateway delivery status"),
				}),
			},
		},
		TokenNames: []string{"SEND_MESSAGE_TOKEN"},
	})
}
