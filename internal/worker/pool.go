// Package worker provides background delivery of AI feedback onto finished
// analysis sessions. Feedback is best-effort by contract: a full queue drops
// the job and the session keeps its built-in explanations.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

const defaultRequestTimeout = 60 * time.Second

// Job is one feedback request for a scored session.
type Job struct {
	SessionID    string
	Track        domain.Track
	Metadata     domain.TrackMetadata
	MatchedGenre string
}

// ResultSink receives the outcome of a feedback job. Implementations must
// discard results for sessions that no longer exist.
type ResultSink interface {
	AttachFeedback(sessionID string, feedback domain.Feedback, err error)
}

// Pool manages background workers for feedback jobs.
type Pool struct {
	gen            ports.FeedbackGenerator
	sink           ResultSink
	jobs           chan Job
	wg             sync.WaitGroup
	requestTimeout time.Duration
}

// NewPool creates a worker pool with the given queue size.
func NewPool(gen ports.FeedbackGenerator, sink ResultSink, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		gen:            gen,
		sink:           sink,
		jobs:           make(chan Job, queueSize),
		requestTimeout: defaultRequestTimeout,
	}
}

// SetSink wires the result sink after construction. Must be called before
// Start when the sink itself depends on the pool.
func (p *Pool) SetSink(sink ResultSink) {
	p.sink = sink
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: feedback queue full, dropping job for session %s", job.SessionID)
	}
}

// RequestFeedback satisfies the orchestrator's dispatch interface.
func (p *Pool) RequestFeedback(sessionID string, track domain.Track, meta domain.TrackMetadata, matchedGenre string) {
	p.Submit(Job{SessionID: sessionID, Track: track, Metadata: meta, MatchedGenre: matchedGenre})
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.requestTimeout)
	defer cancel()

	feedback, err := p.gen.GenerateFeedback(ctx, job.Track, job.Metadata, job.MatchedGenre)
	if err != nil {
		log.Printf("WARN worker: feedback generation failed for session %s: %v", job.SessionID, err)
	}
	if p.sink != nil {
		p.sink.AttachFeedback(job.SessionID, feedback, err)
	}
}
