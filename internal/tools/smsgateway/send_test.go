package smsgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = 0
	return &Client{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
		BaseURL:    baseURL,
		HTTP:       httpClient,
	}
}

func TestSendSubmitsFormAndDecodesReceipt(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15559992222", r.PostForm.Get("To"))
		assert.Equal(t, "+15550001111", r.PostForm.Get("From"))
		assert.Equal(t, "hello there", r.PostForm.Get("Body"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42","status":"queued","to":"+15559992222"}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(srv.URL).Send(context.Background(), "+15559992222", "hello there")
	require.NoError(t, err)
	assert.Equal(t, "SM42", msg.SID)
	assert.Equal(t, "queued", msg.Status)
	assert.Equal(t, "+15559992222", msg.To)
}

func TestSendRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://localhost")
	client.AuthToken = ""

	_, err := client.Send(context.Background(), "+15559992222", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendReportsAPIFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Send(context.Background(), "+15559992222", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestHandlerRequiresRecipientAndText(t *testing.T) {
	t.Parallel()

	_, err := Handler(context.Background(), map[string]any{"to_number": "+15559992222"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message_text")
}
