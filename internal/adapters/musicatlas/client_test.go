package musicatlas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

const validDescribeBody = `{
	"music_characteristics": {"bpm": 128, "key": "A", "mode": "Minor"},
	"audio_characteristics": {"perceived_intensity": "High"},
	"genres": ["house", "electronic"]
}`

// fakeAtlas scripts describe responses in order and records calls.
type fakeAtlas struct {
	describeBodies   []string
	describeStatuses []int
	describeCalls    int
	addCalls         int
	addStatus        int
	addBody          string
	progressBody     string
	progressStatus   int
}

func (f *fakeAtlas) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/describe_track", func(w http.ResponseWriter, r *http.Request) {
		i := f.describeCalls
		if i >= len(f.describeStatuses) {
			i = len(f.describeStatuses) - 1
		}
		f.describeCalls++
		w.WriteHeader(f.describeStatuses[i])
		_, _ = w.Write([]byte(f.describeBodies[i]))
	})
	mux.HandleFunc("POST /api/add_track", func(w http.ResponseWriter, r *http.Request) {
		f.addCalls++
		var req addTrackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("add_track body: %v", err)
		}
		status := f.addStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.addBody))
	})
	mux.HandleFunc("GET /api/add_track_progress", func(w http.ResponseWriter, r *http.Request) {
		status := f.progressStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.progressBody))
	})
	return mux
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		RetryDelay:  time.Millisecond,
		MaxRetries:  1,
		BaseBackoff: time.Millisecond,
	})
}

func TestGetTrackMetadataDirectHit(t *testing.T) {
	fake := &fakeAtlas{
		describeBodies:   []string{validDescribeBody},
		describeStatuses: []int{http.StatusOK},
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	meta, err := newTestClient(srv.URL).GetTrackMetadata(context.Background(), "Artist", "Song")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Music.BPM != 128 {
		t.Errorf("BPM: got %v, want 128", meta.Music.BPM)
	}
	if meta.Music.Mode != "minor" {
		t.Errorf("Mode: got %q, want folded \"minor\"", meta.Music.Mode)
	}
	if meta.Audio.PerceivedIntensity != "high" {
		t.Errorf("Intensity: got %q, want folded \"high\"", meta.Audio.PerceivedIntensity)
	}
	if fake.addCalls != 0 {
		t.Errorf("add_track called %d times, want 0", fake.addCalls)
	}
}

func TestGetTrackMetadataSubmitThenHit(t *testing.T) {
	// Not found, submitted, then found on the single retry: valid metadata,
	// not a processing result.
	fake := &fakeAtlas{
		describeBodies:   []string{`{"error":"not found"}`, validDescribeBody},
		describeStatuses: []int{http.StatusNotFound, http.StatusOK},
		addBody:          `{"job_id":"job-1"}`,
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	meta, err := newTestClient(srv.URL).GetTrackMetadata(context.Background(), "Artist", "Song")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !meta.Valid() {
		t.Fatalf("expected valid metadata, got %+v", meta)
	}
	if fake.addCalls != 1 {
		t.Errorf("add_track called %d times, want 1", fake.addCalls)
	}
	if fake.describeCalls != 2 {
		t.Errorf("describe called %d times, want 2", fake.describeCalls)
	}
}

func TestGetTrackMetadataStillMissingIsProcessing(t *testing.T) {
	fake := &fakeAtlas{
		describeBodies:   []string{`{}`, `{}`},
		describeStatuses: []int{http.StatusNotFound, http.StatusNotFound},
		addBody:          `{"job_id":"job-42"}`,
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetTrackMetadata(context.Background(), "Artist", "Song")
	if !errors.Is(err, ports.ErrProcessing) {
		t.Fatalf("expected processing, got %v", err)
	}

	var procErr *ports.ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ports.ProcessingError, got %T", err)
	}
	if procErr.JobID != "job-42" {
		t.Errorf("JobID: got %q, want job-42", procErr.JobID)
	}
}

func TestGetTrackMetadataIncompleteRecordResubmits(t *testing.T) {
	// A record without a positive BPM is incomplete: resubmit and report
	// processing instead of scoring garbage.
	fake := &fakeAtlas{
		describeBodies:   []string{`{"music_characteristics":{"bpm":0},"genres":["pop"]}`},
		describeStatuses: []int{http.StatusOK},
		addBody:          `{"job_id":"job-7"}`,
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetTrackMetadata(context.Background(), "Artist", "Song")

	var procErr *ports.ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ports.ProcessingError, got %v", err)
	}
	if procErr.JobID != "job-7" {
		t.Errorf("JobID: got %q, want job-7", procErr.JobID)
	}
	if fake.addCalls != 1 {
		t.Errorf("add_track called %d times, want 1", fake.addCalls)
	}
}

func TestGetTrackMetadataGatewayErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeAtlas
	}{
		{
			name: "describe server error",
			fake: &fakeAtlas{
				describeBodies:   []string{`{}`},
				describeStatuses: []int{http.StatusInternalServerError},
			},
		},
		{
			name: "add fails after not found",
			fake: &fakeAtlas{
				describeBodies:   []string{`{}`},
				describeStatuses: []int{http.StatusNotFound},
				addStatus:        http.StatusBadGateway,
				addBody:          `{}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.fake.handler(t))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GetTrackMetadata(context.Background(), "Artist", "Song")
			if err == nil {
				t.Fatal("expected gateway error, got nil")
			}
			if errors.Is(err, ports.ErrProcessing) {
				t.Fatalf("gateway failure must not masquerade as processing: %v", err)
			}
		})
	}
}

func TestJobProgress(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus domain.JobStatus
		wantErrMsg string
	}{
		{
			name:       "started with percent",
			body:       `{"job_id":"j1","status":"started","percent_complete":40,"eta_seconds":90}`,
			wantStatus: domain.JobStatusStarted,
		},
		{
			name:       "terminal error carries message",
			body:       `{"job_id":"j1","status":"error","error_message":"analysis failed"}`,
			wantStatus: domain.JobStatusError,
			wantErrMsg: "analysis failed",
		},
		{
			name:       "unrecognized status treated as queued",
			body:       `{"job_id":"j1","status":"warming_up"}`,
			wantStatus: domain.JobStatusQueued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAtlas{progressBody: tt.body}
			srv := httptest.NewServer(fake.handler(t))
			defer srv.Close()

			job, err := newTestClient(srv.URL).JobProgress(context.Background(), "j1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if job.Status != tt.wantStatus {
				t.Errorf("Status: got %q, want %q", job.Status, tt.wantStatus)
			}
			if job.ErrorMessage != tt.wantErrMsg {
				t.Errorf("ErrorMessage: got %q, want %q", job.ErrorMessage, tt.wantErrMsg)
			}
		})
	}
}

func TestDoRequestWithRetryRecovers(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(validDescribeBody))
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:     srv.URL,
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		RetryDelay:  time.Millisecond,
	})

	meta, err := client.describeTrack(context.Background(), "Artist", "Song")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts: got %d, want 3", attempts)
	}
	if meta.Music.BPM != 128 {
		t.Errorf("BPM: got %v, want 128", meta.Music.BPM)
	}
}
