// Package smsgateway implements the SMS sending tool over the Twilio
// messages API.
package smsgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// Client sends messages through the Twilio REST API.
type Client struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	HTTP       *retryablehttp.Client
}

// NewClientFromEnv builds a client from the function runtime environment.
func NewClientFromEnv() *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 2
	return &Client{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		BaseURL:    "https://api.twilio.com",
		HTTP:       httpClient,
	}
}

// Message is the delivery receipt returned to the agent.
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
}

// Send submits one outbound SMS.
func (c *Client) Send(ctx context.Context, to, body string) (*Message, error) {
	if c.AccountSID == "" || c.AuthToken == "" {
		return nil, fmt.Errorf("messaging credentials are not configured")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.BaseURL, c.AccountSID)
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.AccountSID, c.AuthToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("message request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("messaging API returned status %d", resp.StatusCode)
	}

	var msg Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("failed to decode message response: %w", err)
	}
	return &msg, nil
}

// Handler is the FaaS entry point for the send_message tool.
func Handler(ctx context.Context, args tools.Args) (tools.Body, error) {
	to := args.String("to_number")
	text := args.String("message_text")
	if to == "" || text == "" {
		return nil, fmt.Errorf("both 'to_number' and 'message_text' fields are required")
	}

	msg, err := NewClientFromEnv().Send(ctx, to, text)
	if err != nil {
		return nil, err
	}
	return tools.Body{"sid": msg.SID, "status": msg.Status, "to": msg.To}, nil
}
