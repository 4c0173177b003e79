package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(apiURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 0
	return &Client{APIURL: apiURL, APIKey: "key", HTTP: httpClient}
}

func TestSearchFormatsResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "go generics", req["query"])

		fmt.Fprint(w, `{"results": [
			{"url": "https://a.example.com", "content": "first result"},
			{"url": "https://b.example.com", "content": "second result"}
		]}`)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), "go generics")
	require.NoError(t, err)
	assert.Equal(t,
		"Url: https://a.example.com\nContext: first result\n\nUrl: https://b.example.com\nContext: second result",
		got)
}

func TestSearchCapsContextLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", CharacterLimit)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"results": [{"url": "https://a.example.com", "content": %q}]}`, long)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, got, CharacterLimit)
}

func TestSearchRejectsAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHandlerRequiresQuery(t *testing.T) {
	t.Parallel()

	_, err := Handler(context.Background(), map[string]any{})
	assert.Error(t, err)
}
