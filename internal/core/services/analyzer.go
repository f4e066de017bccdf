// Package services contains the analysis orchestrator: it owns session
// lifecycle, drives metadata retrieval and polling, runs the scoring engine,
// and dispatches feedback generation.
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
	"github.com/atwell-labs/syncscore/internal/core/scoring"
	"github.com/atwell-labs/syncscore/internal/metrics"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxPollWait  = 10 * time.Minute
)

// FeedbackRequester dispatches a feedback job for a scored session. Dispatch
// is fire-and-forget; results arrive later through AttachFeedback.
type FeedbackRequester interface {
	RequestFeedback(sessionID string, track domain.Track, meta domain.TrackMetadata, matchedGenre string)
}

// Analyzer coordinates one analysis session per track selection: metadata
// retrieval, scoring, progress polling, and feedback dispatch.
type Analyzer struct {
	search   ports.TrackSearcher
	metadata ports.MetadataProvider
	feedback FeedbackRequester

	pollInterval time.Duration
	maxPollWait  time.Duration

	store *sessionStore
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPollInterval sets the delay between job progress polls.
func WithPollInterval(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.pollInterval = d
		}
	}
}

// WithMaxPollWait bounds how long a processing session is polled before it
// fails.
func WithMaxPollWait(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.maxPollWait = d
		}
	}
}

// NewAnalyzer creates the orchestrator. The feedback requester may be nil,
// in which case sessions keep their built-in explanations.
func NewAnalyzer(search ports.TrackSearcher, metadata ports.MetadataProvider, feedback FeedbackRequester, opts ...Option) *Analyzer {
	a := &Analyzer{
		search:       search,
		metadata:     metadata,
		feedback:     feedback,
		pollInterval: defaultPollInterval,
		maxPollWait:  defaultMaxPollWait,
		store:        newSessionStore(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SearchTracks validates the query and delegates to the search provider.
func (a *Analyzer) SearchTracks(ctx context.Context, query string) ([]domain.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ports.ValidationError{Reason: "search query must not be empty"}
	}
	metrics.Get().RecordSearch()
	return a.search.SearchTracks(ctx, query)
}

// StartAnalysis opens a new session for the selected track and kicks off
// metadata retrieval in the background. It returns immediately with the
// session in the loading state.
func (a *Analyzer) StartAnalysis(track domain.Track) (SessionView, error) {
	if strings.TrimSpace(track.Artist) == "" {
		return SessionView{}, &ports.ValidationError{Reason: "track artist must not be empty"}
	}
	if strings.TrimSpace(track.Title) == "" {
		return SessionView{}, &ports.ValidationError{Reason: "track title must not be empty"}
	}
	track = track.WithDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:        uuid.NewString(),
		track:     track,
		state:     StateLoading,
		createdAt: time.Now(),
		cancel:    cancel,
	}
	a.store.put(s)
	metrics.Get().RecordAnalysisStarted()

	go a.run(ctx, s.id, track)

	return s.view(), nil
}

// GetSession returns a snapshot of the session, if it exists.
func (a *Analyzer) GetSession(id string) (SessionView, bool) {
	return a.store.view(id)
}

// CancelSession deletes the session and cancels its in-flight work. Any
// response that arrives afterwards is discarded.
func (a *Analyzer) CancelSession(id string) bool {
	cancel, ok := a.store.remove(id)
	if !ok {
		return false
	}
	if cancel != nil {
		cancel()
	}
	return true
}

// AttachFeedback delivers a completed feedback job onto its session. Results
// for cancelled or failed sessions are discarded.
func (a *Analyzer) AttachFeedback(sessionID string, feedback domain.Feedback, err error) {
	metrics.Get().RecordFeedback(err == nil)
	if err != nil {
		return
	}
	a.store.mutate(sessionID, func(s *session) {
		if s.state != StateResult {
			return
		}
		fb := feedback
		s.feedback = &fb
	})
}

// run drives one session from loading to a terminal state.
func (a *Analyzer) run(ctx context.Context, id string, track domain.Track) {
	meta, err := a.metadata.GetTrackMetadata(ctx, track.Artist, track.Title)
	switch {
	case err == nil:
		a.finish(id, track, meta)
	case isProcessing(err):
		jobID := processingJobID(err)
		a.store.mutate(id, func(s *session) {
			s.state = StateProcessing
			s.jobID = jobID
			s.job = domain.AnalysisJob{ID: jobID, Status: domain.JobStatusQueued}
		})
		metrics.Get().RecordAnalysisProcessing()
		a.poll(ctx, id, track, jobID)
	case ctx.Err() != nil:
		// Cancelled mid-flight; the session is already gone.
	default:
		a.fail(id, "we couldn't analyze this track right now, check your connection and try again")
	}
}

// poll watches the provider job until the track record is complete, the job
// reports an error, or the wait budget runs out. Polls are sequential: a
// slow response delays the next tick rather than overlapping it.
func (a *Analyzer) poll(ctx context.Context, id string, track domain.Track, jobID string) {
	deadline := time.Now().Add(a.maxPollWait)
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			a.fail(id, "analysis is taking longer than expected, try again later")
			return
		}

		if jobID == "" {
			// The provider accepted the track without handing back a job
			// handle. Re-attempt retrieval until the record is complete.
			meta, err := a.metadata.GetTrackMetadata(ctx, track.Artist, track.Title)
			switch {
			case err == nil:
				a.finish(id, track, meta)
				return
			case isProcessing(err):
				if newID := processingJobID(err); newID != "" {
					jobID = newID
					a.store.mutate(id, func(s *session) {
						s.jobID = newID
						s.job.ID = newID
					})
				}
			case ctx.Err() != nil:
				return
			default:
				a.fail(id, "we couldn't analyze this track right now, check your connection and try again")
				return
			}
			continue
		}

		job, err := a.metadata.JobProgress(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Transient poll failures keep the session in processing.
			log.Printf("WARN analyzer: progress poll failed for session %s: %v", id, err)
			continue
		}

		a.store.mutate(id, func(s *session) {
			if s.state != StateProcessing {
				return
			}
			s.job = job
		})

		switch job.Status {
		case domain.JobStatusDone:
			meta, err := a.metadata.GetTrackMetadata(ctx, track.Artist, track.Title)
			switch {
			case err == nil:
				a.finish(id, track, meta)
				return
			case isProcessing(err):
				// Job reports done but the record is not readable yet; keep
				// polling until the deadline.
			case ctx.Err() != nil:
				return
			default:
				a.fail(id, "we couldn't analyze this track right now, check your connection and try again")
				return
			}
		case domain.JobStatusError:
			msg := job.ErrorMessage
			if msg == "" {
				msg = "the analysis service couldn't process this track"
			}
			metrics.Get().RecordJobError()
			a.fail(id, msg)
			return
		}
	}
}

// finish scores the metadata, publishes the result, and dispatches feedback.
func (a *Analyzer) finish(id string, track domain.Track, meta domain.TrackMetadata) {
	score := scoring.Score(meta, track.DurationMs)

	ok := a.store.mutate(id, func(s *session) {
		s.state = StateResult
		s.metadata = &meta
		s.score = &score
	})
	if !ok {
		return
	}
	metrics.Get().RecordAnalysisCompleted()

	if a.feedback != nil {
		a.feedback.RequestFeedback(id, track, meta, score.MatchedGenre)
	}
}

func (a *Analyzer) fail(id string, message string) {
	ok := a.store.mutate(id, func(s *session) {
		s.state = StateFailed
		s.errorMsg = message
	})
	if ok {
		metrics.Get().RecordAnalysisFailed()
	}
}

func isProcessing(err error) bool {
	return errors.Is(err, ports.ErrProcessing)
}

func processingJobID(err error) string {
	var procErr *ports.ProcessingError
	if errors.As(err, &procErr) {
		return procErr.JobID
	}
	return ""
}
