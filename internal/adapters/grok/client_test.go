package grok

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

const feedbackJSON = `{
	"bpmRange": {"short": "Versatile tempo", "why": "why text", "improve": "improve text"},
	"keyMode": {"short": "Bright and open", "why": "why text", "improve": "improve text"},
	"vibe": {"short": "Momentum energy", "why": "why text", "improve": "improve text"},
	"length": {"short": "Editor friendly", "why": "why text", "improve": "improve text"}
}`

func completionBody(t *testing.T, content string) string {
	t.Helper()
	wrapper := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, err := json.Marshal(wrapper)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestGenerateFeedback(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    func(t *testing.T) string
		wantErr bool
	}{
		{
			name:   "bare JSON",
			status: http.StatusOK,
			body:   func(t *testing.T) string { return completionBody(t, feedbackJSON) },
		},
		{
			name:   "fenced JSON with prose",
			status: http.StatusOK,
			body: func(t *testing.T) string {
				return completionBody(t, "Here is your analysis:\n```json\n"+feedbackJSON+"\n```\nGood luck!")
			},
		},
		{
			name:    "unparseable completion",
			status:  http.StatusOK,
			body:    func(t *testing.T) string { return completionBody(t, "I cannot help with that.") },
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    func(t *testing.T) string { return `{"error":{"message":"overloaded"}}` },
			wantErr: true,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    func(t *testing.T) string { return `{"choices":[]}` },
			wantErr: true,
		},
	}

	track := domain.Track{Title: "Night Drive", Artist: "Test Artist", DurationMs: 165000}
	meta := domain.TrackMetadata{
		Music:  domain.MusicCharacteristics{BPM: 128, Key: "A", Mode: "minor"},
		Audio:  domain.AudioCharacteristics{PerceivedIntensity: "high"},
		Genres: []string{"house"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest chatRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/chat/completions" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body(t)))
			}))
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL, APIKey: "key", Model: "grok-3"})
			feedback, err := client.GenerateFeedback(context.Background(), track, meta, "electronic")

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}

			if feedback.BpmRange.Short != "Versatile tempo" {
				t.Errorf("BpmRange.Short: got %q", feedback.BpmRange.Short)
			}
			if feedback.Length.Improve != "improve text" {
				t.Errorf("Length.Improve: got %q", feedback.Length.Improve)
			}
			if gotRequest.Model != "grok-3" {
				t.Errorf("model: got %q, want grok-3", gotRequest.Model)
			}
			if len(gotRequest.Messages) != 1 {
				t.Fatalf("messages: got %d, want 1", len(gotRequest.Messages))
			}
			prompt := gotRequest.Messages[0].Content
			for _, fragment := range []string{"Night Drive", "128", "2:45", "electronic"} {
				if !strings.Contains(prompt, fragment) {
					t.Errorf("prompt missing %q", fragment)
				}
			}
		})
	}
}

func TestParseFeedbackRecoversWrappedJSON(t *testing.T) {
	wrapped := "Sure! Here you go:\n\n```json\n" + feedbackJSON + "\n```"
	feedback, err := parseFeedback(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback.Vibe.Why != "why text" {
		t.Errorf("Vibe.Why: got %q", feedback.Vibe.Why)
	}
}

func TestParseFeedbackRejectsEmptyObject(t *testing.T) {
	if _, err := parseFeedback("{}"); err == nil {
		t.Fatal("expected error for empty object")
	}
}
