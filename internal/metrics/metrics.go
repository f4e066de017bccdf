// Package metrics tracks runtime counters for the analysis service.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application runtime metrics.
type Metrics struct {
	startTime time.Time

	// Request counters
	requestsTotal   uint64
	requestsSuccess uint64
	requestsError   uint64

	// Analysis flow counters
	searchesTotal      uint64
	analysesStarted    uint64
	analysesCompleted  uint64
	analysesProcessing uint64
	analysesFailed     uint64
	jobErrors          uint64
	feedbackDelivered  uint64
	feedbackFailures   uint64

	// Latency tracking
	mu           sync.RWMutex
	latencySum   time.Duration
	latencyCount uint64
}

// Global metrics instance
var global = &Metrics{
	startTime: time.Now(),
}

// Get returns the global metrics instance.
func Get() *Metrics {
	return global
}

// RecordRequest records a request with status and latency.
func (m *Metrics) RecordRequest(status int, latency time.Duration) {
	atomic.AddUint64(&m.requestsTotal, 1)
	if status >= 200 && status < 400 {
		atomic.AddUint64(&m.requestsSuccess, 1)
	} else if status >= 400 {
		atomic.AddUint64(&m.requestsError, 1)
	}

	m.mu.Lock()
	m.latencySum += latency
	m.latencyCount++
	m.mu.Unlock()
}

// RecordSearch records a track search.
func (m *Metrics) RecordSearch() {
	atomic.AddUint64(&m.searchesTotal, 1)
}

// RecordAnalysisStarted records a new analysis session.
func (m *Metrics) RecordAnalysisStarted() {
	atomic.AddUint64(&m.analysesStarted, 1)
}

// RecordAnalysisCompleted records a session reaching the result state.
func (m *Metrics) RecordAnalysisCompleted() {
	atomic.AddUint64(&m.analysesCompleted, 1)
}

// RecordAnalysisProcessing records a session entering the processing state.
func (m *Metrics) RecordAnalysisProcessing() {
	atomic.AddUint64(&m.analysesProcessing, 1)
}

// RecordAnalysisFailed records a terminal analysis failure.
func (m *Metrics) RecordAnalysisFailed() {
	atomic.AddUint64(&m.analysesFailed, 1)
}

// RecordJobError records a provider-side job failure.
func (m *Metrics) RecordJobError() {
	atomic.AddUint64(&m.jobErrors, 1)
}

// RecordFeedback records a feedback delivery attempt.
func (m *Metrics) RecordFeedback(ok bool) {
	if ok {
		atomic.AddUint64(&m.feedbackDelivered, 1)
	} else {
		atomic.AddUint64(&m.feedbackFailures, 1)
	}
}

// Snapshot returns current metrics as a map.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.RLock()
	avgLatency := float64(0)
	if m.latencyCount > 0 {
		avgLatency = float64(m.latencySum.Milliseconds()) / float64(m.latencyCount)
	}
	m.mu.RUnlock()

	return map[string]any{
		"uptime_seconds":      time.Since(m.startTime).Seconds(),
		"requests_total":      atomic.LoadUint64(&m.requestsTotal),
		"requests_success":    atomic.LoadUint64(&m.requestsSuccess),
		"requests_error":      atomic.LoadUint64(&m.requestsError),
		"searches_total":      atomic.LoadUint64(&m.searchesTotal),
		"analyses_started":    atomic.LoadUint64(&m.analysesStarted),
		"analyses_completed":  atomic.LoadUint64(&m.analysesCompleted),
		"analyses_processing": atomic.LoadUint64(&m.analysesProcessing),
		"analyses_failed":     atomic.LoadUint64(&m.analysesFailed),
		"job_errors":          atomic.LoadUint64(&m.jobErrors),
		"feedback_delivered":  atomic.LoadUint64(&m.feedbackDelivered),
		"feedback_failures":   atomic.LoadUint64(&m.feedbackFailures),
		"avg_latency_ms":      avgLatency,
	}
}
