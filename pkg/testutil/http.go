// Package testutil provides a fake holiday API for client tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

// RecordedRequest is what the fake upstream saw of one request.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Upstream is an httptest server that records every request and answers
// with whatever handler is currently installed. The default answer is an
// empty success document.
type Upstream struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	handler  http.HandlerFunc
}

// NewUpstream starts a fake upstream. It is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{}
	u.Respond(http.StatusOK, `{"status":"success","feiertage":[]}`)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(u.record)
	r.Get("/*", u.serve)

	u.server = httptest.NewServer(r)
	t.Cleanup(u.server.Close)
	return u
}

// URL is the base URL of the fake upstream.
func (u *Upstream) URL() string {
	return u.server.URL
}

// Handle installs h for subsequent requests.
func (u *Upstream) Handle(h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handler = h
}

// Respond answers subsequent requests with a fixed status and raw body.
func (u *Upstream) Respond(status int, body string) {
	u.Handle(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// RespondJSON answers subsequent requests with v marshaled to JSON.
func (u *Upstream) RespondJSON(t *testing.T, status int, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal upstream response")
	u.Respond(status, string(body))
}

// Requests returns a copy of every request seen so far.
func (u *Upstream) Requests() []RecordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]RecordedRequest, len(u.requests))
	copy(out, u.requests)
	return out
}

// LastRequest returns the most recent request, failing the test if none arrived.
func (u *Upstream) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := u.Requests()
	require.NotEmpty(t, reqs, "upstream received no requests")
	return reqs[len(reqs)-1]
}

func (u *Upstream) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.requests = append(u.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		u.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	h := u.handler
	u.mu.Unlock()
	h(w, r)
}
