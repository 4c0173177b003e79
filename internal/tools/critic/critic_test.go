package critic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 0
	return &Client{
		Endpoint:  endpoint,
		AccessKey: "test-key",
		HTTP:      httpClient,
	}
}

func TestAssessSendsQueryAndReturnsReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "is the sky green?", req.Messages[0].Content)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "No, it is blue."}},
			},
		})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Assess(context.Background(), "is the sky green?")
	require.NoError(t, err)
	assert.Equal(t, "No, it is blue.", reply)
}

func TestAssessHandlesEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Assess(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "The agent did not respond", reply)
}

func TestAssessRejectsMissingEndpoint(t *testing.T) {
	t.Parallel()

	_, err := newTestClient("").Assess(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAssessReportsUpstreamStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Assess(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHandlerRequiresQuery(t *testing.T) {
	t.Parallel()

	_, err := Handler(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
