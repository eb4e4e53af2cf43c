package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/readme-backend/internal/config"
	"github.com/futig/readme-backend/internal/entity"
	pkghttp "github.com/futig/readme-backend/pkg/http"
	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc) *Connector {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: srv.URL},
		RewriteModel:     "fast",
		ReadmeModel:      "standard",
		APIKey:           "test-key",
	}
	return NewConnector(cfg, zap.NewNop())
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq entity.LLMGenerateContentRequest

	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"world"}]},"finishReason":"STOP"}],"usageMetadata":{"totalTokenCount":12}}`))
	})

	text, err := c.Generate(context.Background(), "gemini-2.5-flash", "say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Hello world" {
		t.Errorf("expected joined parts, got %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "say hi" {
		t.Errorf("prompt not sent as single user part: %+v", gotReq)
	}
}

func TestGenerate_ReturnsTextUntrimmed(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  # Title\n"}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "m", "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "  # Title\n" {
		t.Errorf("connector must not alter text, got %q", text)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota"}}`))
	})

	_, err := c.Generate(context.Background(), "m", "p")

	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status %d", httpErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "quota") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	if _, err := c.Generate(context.Background(), "m", "p"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		resp    entity.LLMGenerateContentResponse
		want    string
		wantErr string
	}{
		{
			name:    "no candidates",
			resp:    entity.LLMGenerateContentResponse{},
			wantErr: "no candidates",
		},
		{
			name: "blocked prompt",
			resp: entity.LLMGenerateContentResponse{
				PromptFeedback: &entity.LLMPromptFeedback{BlockReason: "SAFETY"},
			},
			wantErr: "SAFETY",
		},
		{
			name: "empty parts with finish reason",
			resp: entity.LLMGenerateContentResponse{
				Candidates: []entity.LLMCandidate{{FinishReason: "MAX_TOKENS"}},
			},
			wantErr: "MAX_TOKENS",
		},
		{
			name: "first candidate wins",
			resp: entity.LLMGenerateContentResponse{
				Candidates: []entity.LLMCandidate{
					{Content: entity.LLMContent{Parts: []entity.LLMPart{{Text: "one"}}}},
					{Content: entity.LLMContent{Parts: []entity.LLMPart{{Text: "two"}}}},
				},
			},
			want: "one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText(&tt.resp)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !errors.Is(err, entity.ErrEmptyCompletion) {
					t.Errorf("expected ErrEmptyCompletion, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected %q in error, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector()

	rewrite, err := m.Generate(context.Background(), "fast", "Original description:\n\"x\"")
	if err != nil || rewrite == "" {
		t.Fatalf("unexpected rewrite result %q, %v", rewrite, err)
	}

	readme, err := m.Generate(context.Background(), "standard", "Project Name: Foo\nDescription: bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(readme, "# Foo\n") {
		t.Errorf("expected README titled with project name, got %q", readme)
	}
}
