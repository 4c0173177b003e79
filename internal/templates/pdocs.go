package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "pdocs",
		Summary: "Answers questions from an uploaded product documentation set",
		Agent: steps.AgentSpec{
			Name:        "Product Docs Agent",
			Description: "Answers product questions from the documentation knowledge base",
			Instruction: "You answer questions about the product using only the " +
				"attached documentation knowledge base. Cite the documents you drew " +
				"from and say when the documentation does not cover a question.",
		},
		NeedsKnowledgeBase: true,
	})
}
