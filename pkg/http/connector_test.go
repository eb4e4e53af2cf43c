package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, srv *httptest.Server, opts ...HttpOpts) *Connector {
	t.Helper()

	return NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()}, opts...)
}

func TestDoRequest_SendsJSONAndDecodes(t *testing.T) {
	var gotKey, gotUA, gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotUA = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	c := newTestConnector(t, srv, WithAPIKeyHeader("x-goog-api-key", "secret"), WithRequestLogging())

	var resp struct {
		Result string `json:"result"`
	}
	err := c.DoRequest(context.Background(), http.MethodPost, "/v1/thing", map[string]string{"q": "hi"}, &resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Result != "ok" {
		t.Errorf("expected result 'ok', got %q", resp.Result)
	}
	if gotKey != "secret" {
		t.Errorf("expected api key header 'secret', got %q", gotKey)
	}
	if gotUA != "readme-backend" {
		t.Errorf("expected default user agent, got %q", gotUA)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}
	if gotBody["q"] != "hi" {
		t.Errorf("expected body q=hi, got %v", gotBody)
	}
}

func TestDoRequest_Non2xxReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`quota exceeded`))
	}))
	defer srv.Close()

	c := newTestConnector(t, srv)

	err := c.DoRequest(context.Background(), http.MethodPost, "/", nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T (%v)", err, err)
	}
	if httpErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", httpErr.StatusCode)
	}
	if httpErr.Message != "quota exceeded" {
		t.Errorf("expected upstream body in message, got %q", httpErr.Message)
	}
}

func TestDoRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestConnector(t, srv)
	srv.Close()

	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T (%v)", err, err)
	}
}

func TestDoRawRequest_ReturnsBodyAndBearer(t *testing.T) {
	var gotAuth, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<h1>hi</h1>"))
	}))
	defer srv.Close()

	c := newTestConnector(t, srv, WithAuthToken("tok"))

	body, err := c.DoRawRequest(context.Background(), http.MethodPost, "/markdown", map[string]string{"text": "# hi"}, WithAccept("text/html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(body) != "<h1>hi</h1>" {
		t.Errorf("unexpected body %q", body)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
	if gotAccept != "text/html" {
		t.Errorf("expected accept override, got %q", gotAccept)
	}
}

func TestWithAuthToken_EmptySendsNothing(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := newTestConnector(t, srv, WithAuthToken(""))

	if err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer tok")
	h.Set("X-Goog-Api-Key", "secret")
	h.Set("Accept", "application/json")

	out := redactHeaders(h)

	if out.Get("Authorization") != redacted {
		t.Errorf("authorization not redacted: %q", out.Get("Authorization"))
	}
	if out.Get("X-Goog-Api-Key") != redacted {
		t.Errorf("api key not redacted: %q", out.Get("X-Goog-Api-Key"))
	}
	if out.Get("Accept") != "application/json" {
		t.Errorf("accept should pass through, got %q", out.Get("Accept"))
	}
	if h.Get("Authorization") != "Bearer tok" {
		t.Errorf("original header mutated")
	}
}
