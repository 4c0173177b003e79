// Package critic implements the auditor tool that relays a claim to the
// critic agent's chat completions endpoint and returns its assessment.
package critic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// Client talks to a deployed agent's OpenAI-compatible chat endpoint.
type Client struct {
	Endpoint  string
	AccessKey string
	HTTP      *retryablehttp.Client
}

// NewClientFromEnv builds a client from the function runtime environment.
func NewClientFromEnv() *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 2
	return &Client{
		Endpoint:  os.Getenv("CRITIC_AGENT_ENDPOINT"),
		AccessKey: os.Getenv("CRITIC_AGENT_ACCESS_KEY"),
		HTTP:      httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages              []chatMessage `json:"messages"`
	Stream                bool          `json:"stream"`
	IncludeFunctionsInfo  bool          `json:"include_functions_info"`
	IncludeRetrievalInfo  bool          `json:"include_retrieval_info"`
	IncludeGuardrailsInfo bool          `json:"include_guardrails_info"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Assess sends the query to the critic agent and returns its reply.
func (c *Client) Assess(ctx context.Context, query string) (string, error) {
	if c.Endpoint == "" {
		return "", fmt.Errorf("critic agent endpoint is not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Messages: []chatMessage{{Role: "user", Content: query}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := c.Endpoint + "/api/v1/chat/completions"
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("agent endpoint returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "The agent did not respond", nil
	}
	return decoded.Choices[0].Message.Content, nil
}

// Handler is the FaaS entry point for the critic tool.
func Handler(ctx context.Context, args tools.Args) (tools.Body, error) {
	query := args.String("query")
	if query == "" {
		return nil, fmt.Errorf("a query must be provided")
	}

	assessment, err := NewClientFromEnv().Assess(ctx, query)
	if err != nil {
		return nil, err
	}
	return tools.Body{"assessment": assessment}, nil
}
