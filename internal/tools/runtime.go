// Package tools provides the runtime contract for FaaS tool handlers: a
// stateless request/response function taking a flat argument mapping and
// returning a body payload. Every failure inside a handler is converted to a
// structured error body at the boundary; a tool invocation never crashes.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Args is the flat argument mapping an agent passes to a tool.
type Args map[string]any

// String returns the named argument as a string, or "" when absent.
func (a Args) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the named argument as an int, or def when absent or
// unparseable. JSON numbers arrive as float64.
func (a Args) Int(key string, def int) int {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// Body is the payload returned to the calling agent.
type Body map[string]any

// Response is the envelope a FaaS invocation returns.
type Response struct {
	Body Body `json:"body"`
}

// Handler is one stateless tool function.
type Handler func(ctx context.Context, args Args) (Body, error)

// ErrorBody builds the standard error payload.
func ErrorBody(msg string) Body {
	return Body{"success": false, "error": msg}
}

// Invoke runs a handler at the invocation boundary. Errors and panics are
// caught and converted to an error payload, since each invocation is a
// one-shot request with nobody above it to recover.
func Invoke(ctx context.Context, h Handler, args Args) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{Body: ErrorBody(fmt.Sprintf("tool handler panicked: %v", r))}
		}
	}()

	body, err := h(ctx, args)
	if err != nil {
		return Response{Body: ErrorBody(err.Error())}
	}
	if body == nil {
		body = Body{}
	}
	return Response{Body: body}
}

// Serve exposes a handler as an HTTP endpoint that takes the argument
// mapping as a JSON body. The response is always 200 with a body payload;
// failures surface as error bodies, matching Invoke.
func Serve(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args := Args{}
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
				writeBody(w, ErrorBody("request body is not a JSON object"))
				return
			}
		}
		resp := Invoke(r.Context(), h, args)
		writeBody(w, resp.Body)
	}
}

func writeBody(w http.ResponseWriter, body Body) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Body: body})
}
