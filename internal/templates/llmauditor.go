package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

// Step names for the auditor's supporting agents.
const (
	criticAgentStep  = "critic-agent"
	revisorAgentStep = "revisor-agent"
)

func init() {
	register(&Template{
		Name:    "llm-auditor",
		Summary: "Fact-checks model responses with web search and a critic agent",
		Agent: steps.AgentSpec{
			Name:        "LLM Auditor",
			Description: "Audits model answers for factual accuracy",
			Instruction: "You audit answers produced by language models. For each " +
				"claim, use web_search to gather current evidence, then use " +
				"assess_response to get a critic's verdict. Report which claims are " +
				"supported, which are contradicted, and cite the evidence used.",
		},
		// The critic and revisor are invoked from the tool functions over
		// their own endpoints, so they deploy first and their endpoints and
		// access keys are exported into the function environment.
		Components: []steps.ComponentAgentSpec{
			{
				StepName:    criticAgentStep,
				Name:        "Auditor Critic",
				Description: "Reviews a response against gathered evidence",
				Instruction: "You are a critic. Given a question, a candidate " +
					"response, and supporting evidence, identify every claim in the " +
					"response and judge whether the evidence supports, contradicts, " +
					"or fails to cover it. Be precise and cite the evidence you used.",
				KeyName: "Auditor Agent Key",
			},
			{
				StepName:    revisorAgentStep,
				Name:        "Auditor Revisor",
				Description: "Rewrites a response to fix the critic's findings",
				Instruction: "You are a revisor. Given a response and a critic's " +
					"findings, rewrite the response so every contradicted or " +
					"unsupported claim is corrected or removed, changing nothing " +
					"that the critic found sound.",
				KeyName: "Auditor Agent Key",
			},
		},
		Tools: []steps.Tool{
			{
				Name:         "web_search",
				Description:  "Search the web for evidence about a claim",
				FunctionPath: "auditor/web_search",
				InputSchema: objectSchema(map[string]any{
					"query": stringProp("Search query"),
				}, "query"),
				OutputSchema: objectSchema(map[string]any{
					"result": stringProp("Search results with source URLs"),
				}),
			},
			{
				Name:         "assess_response",
				Description:  "Ask the critic agent to assess a response against evidence",
				FunctionPath: "auditor/assess_response",
				InputSchema: objectSchema(map[string]any{
					"question": stringProp("The original question"),
					"response": stringProp("The response being audited"),
					"evidence": stringProp("Evidence gathered from search"),
				}, "question", "response"),
				OutputSchema: objectSchema(map[string]any{
					"assessment": stringProp("The critic's verdict"),
				}),
			},
		},
		TokenNames: []string{"SEARCH_TOKEN", "CRITIC_TOKEN", "REVISOR_TOKEN"},
		ExtraEnv: func(ctx *provisioning.Context) map[string]string {
			env := steps.ComponentEnv(ctx, criticAgentStep, "CRITIC_AGENT")
			for k, v := range steps.ComponentEnv(ctx, revisorAgentStep, "REVISOR_AGENT") {
				env[k] = v
			}
			return env
		},
	})
}
