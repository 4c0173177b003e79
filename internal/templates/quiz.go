package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "quiz",
		Summary: "Generates quizzes from an uploaded course material set",
		Agent: steps.AgentSpec{
			Name:        "Quiz Agent",
			Description: "Creates quiz questions from the course knowledge base",
			Instruction: "You create quizzes from the attached course material. " +
				"Generate questions only about topics the material actually covers, " +
				"vary the difficulty, and provide the correct answer with a short " +
				"explanation for each question.",
		},
		NeedsKnowledgeBase: true,
	})
}
