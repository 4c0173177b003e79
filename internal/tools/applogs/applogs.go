// Package applogs implements the log-fetching tool: it resolves app-platform
// log URLs, downloads the raw streams, and reports the recent ERROR/WARNING
// blocks for each deployment phase.
package applogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/digitalocean/gradient-agent-templates/internal/logparse"
	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// Log types exposed by the app platform.
const (
	LogTypeBuild  = "BUILD"
	LogTypeDeploy = "DEPLOY"
	LogTypeRun    = "RUN"
)

// Client fetches application logs.
type Client struct {
	BaseURL   string
	Token     string
	HTTP      *retryablehttp.Client
	Extractor logparse.Extractor
}

// NewClientFromEnv builds a client from the function runtime environment.
func NewClientFromEnv() *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 2
	return &Client{
		BaseURL: "https://api.digitalocean.com",
		Token:   os.Getenv("AGENT_TOKEN"),
		HTTP:    httpClient,
	}
}

type logsResponse struct {
	URL          string   `json:"url"`
	HistoricURLs []string `json:"historic_urls"`
	Message      string   `json:"message"`
}

// resolveURL asks the API where the raw logs for the app and log type live.
func (c *Client) resolveURL(ctx context.Context, appID, logType string) (*logsResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/apps/%s/logs?type=%s", c.BaseURL, appID, logType)
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build logs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logs request failed: %w", err)
	}
	defer resp.Body.Close()

	// 400 carries a structured message (e.g. no deployments yet), which is
	// still useful to the agent.
	if resp.StatusCode != 200 && resp.StatusCode != 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("logs API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded logsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode logs response: %w", err)
	}
	return &decoded, nil
}

// fetchLines downloads a raw log stream and splits it into lines.
func (c *Client) fetchLines(ctx context.Context, rawURL string) ([]string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build raw log request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("raw log fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("raw log fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw log body: %w", err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// ErrorLogs returns the windowed ERROR/WARNING report for one log type.
// Failures to fetch degrade to an explanatory string so the agent can relay
// them conversationally.
func (c *Client) ErrorLogs(ctx context.Context, appID, logType string) string {
	resolved, err := c.resolveURL(ctx, appID, logType)
	if err != nil {
		return "An error occurred while fetching the logs."
	}

	rawURL := resolved.URL
	if rawURL == "" {
		if len(resolved.HistoricURLs) == 0 {
			if resolved.Message != "" {
				return resolved.Message
			}
			return "No logs URL or historic log URL could be obtained. No logs were found."
		}
		rawURL = resolved.HistoricURLs[0]
	}

	lines, err := c.fetchLines(ctx, rawURL)
	if err != nil {
		return "An error occurred while fetching the logs."
	}
	return c.Extractor.Report(lines)
}

// LogSet builds the full report across build, deploy, and run phases,
// prefixed with the current time so the agent can reason about recency.
func (c *Client) LogSet(ctx context.Context, appID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The current time is: %s\n---\n", time.Now().UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "\nBuildtime Errors:\n%s", c.ErrorLogs(ctx, appID, LogTypeBuild))
	fmt.Fprintf(&b, "\nDeploytime Errors:\n%s", c.ErrorLogs(ctx, appID, LogTypeDeploy))
	fmt.Fprintf(&b, "\nRuntime Errors:\n%s", c.ErrorLogs(ctx, appID, LogTypeRun))
	return b.String()
}

// Handler is the FaaS entry point for the get_logs tool.
func Handler(ctx context.Context, args tools.Args) (tools.Body, error) {
	appID := args.String("app_id")
	if appID == "" {
		return tools.Body{"result": "Please provide a valid App ID"}, nil
	}
	return tools.Body{"result": NewClientFromEnv().LogSet(ctx, appID)}, nil
}
