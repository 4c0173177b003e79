// Package websearch implements the fact-checking web search tool used by the
// auditor critic agent.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// DefaultAPIURL is the search provider endpoint.
const DefaultAPIURL = "https://api.tavily.com/search"

// CharacterLimit caps the combined search context. Roughly 3K tokens at ~4
// characters per token, which keeps results inside the agent's input window.
const CharacterLimit = 12000

// Client calls the search API.
type Client struct {
	APIURL string
	APIKey string
	HTTP   *retryablehttp.Client
}

// NewClientFromEnv builds a client from the function runtime environment.
func NewClientFromEnv() *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 2
	return &Client{
		APIURL: DefaultAPIURL,
		APIKey: os.Getenv("TAVILY_API_KEY"),
		HTTP:   httpClient,
	}
}

type searchResult struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search runs the query and returns a character-capped context string of
// URL/content pairs.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return "", fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	parts := make([]string, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		parts = append(parts, fmt.Sprintf("Url: %s\nContext: %s", r.URL, r.Content))
	}
	context := strings.Join(parts, "\n\n")
	if len(context) > CharacterLimit {
		context = context[:CharacterLimit]
	}
	return context, nil
}

// Handler is the FaaS entry point for the search tool.
func Handler(ctx context.Context, args tools.Args) (tools.Body, error) {
	query := args.String("query")
	if query == "" {
		return nil, fmt.Errorf("a query must be provided")
	}

	context, err := NewClientFromEnv().Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return tools.Body{"context": context}, nil
}
