package services

import (
	"sync"
	"time"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// State is the lifecycle stage of one analysis session.
//
//	loading -> result | processing | failed
//	processing -> result | failed
//
// Deleting the session ("back") is allowed from any state and cancels all
// in-flight work for it.
type State string

const (
	StateLoading    State = "loading"
	StateProcessing State = "processing"
	StateResult     State = "result"
	StateFailed     State = "failed"
)

// session is the mutable per-analysis record. All access goes through the
// store's lock; the per-session goroutine never touches fields directly.
type session struct {
	id        string
	track     domain.Track
	state     State
	jobID     string
	job       domain.AnalysisJob
	metadata  *domain.TrackMetadata
	score     *domain.CompositeScore
	feedback  *domain.Feedback
	errorMsg  string
	createdAt time.Time
	cancel    func()
}

// SessionView is an immutable snapshot handed to callers.
type SessionView struct {
	ID           string
	Track        domain.Track
	State        State
	JobID        string
	Job          domain.AnalysisJob
	Metadata     *domain.TrackMetadata
	Score        *domain.CompositeScore
	Feedback     *domain.Feedback
	ErrorMessage string
	CreatedAt    time.Time
}

func (s *session) view() SessionView {
	v := SessionView{
		ID:           s.id,
		Track:        s.track,
		State:        s.state,
		JobID:        s.jobID,
		Job:          s.job,
		ErrorMessage: s.errorMsg,
		CreatedAt:    s.createdAt,
	}
	if s.metadata != nil {
		meta := *s.metadata
		v.Metadata = &meta
	}
	if s.score != nil {
		score := *s.score
		v.Score = &score
	}
	if s.feedback != nil {
		fb := *s.feedback
		v.Feedback = &fb
	}
	return v
}

// sessionStore is the in-memory session registry. There is no persistence:
// sessions live for the duration of one analysis and die on "back" or
// restart.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (st *sessionStore) put(s *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.id] = s
}

func (st *sessionStore) view(id string) (SessionView, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return SessionView{}, false
	}
	return s.view(), true
}

// remove deletes the session and returns its cancel func, if any. The
// deletion is what makes later stale responses no-ops: every mutation
// re-checks presence under the lock.
func (st *sessionStore) remove(id string) (func(), bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	delete(st.sessions, id)
	return s.cancel, true
}

// mutate applies fn to the live session, if it still exists.
func (st *sessionStore) mutate(id string, fn func(*session)) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return false
	}
	fn(s)
	return true
}
