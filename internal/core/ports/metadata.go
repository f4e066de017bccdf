package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// ErrTrackNotFound indicates the provider has no record for the track.
var ErrTrackNotFound = errors.New("track not found")

// ErrProcessing indicates the track was submitted for analysis and results
// are not available yet. It is an intermediate state, not a failure.
var ErrProcessing = errors.New("track is processing")

// ProcessingError carries the provider job id (may be empty) so the caller
// can transition to asynchronous polling instead of failing outright.
type ProcessingError struct {
	JobID string
}

func (e *ProcessingError) Error() string {
	if e.JobID == "" {
		return ErrProcessing.Error()
	}
	return fmt.Sprintf("track is processing (job %s)", e.JobID)
}

func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

// TrackNotFoundError provides context for a missing track.
type TrackNotFoundError struct {
	Artist string
	Title  string
}

func (e *TrackNotFoundError) Error() string {
	if e.Artist == "" && e.Title == "" {
		return ErrTrackNotFound.Error()
	}
	return fmt.Sprintf("no record for artist %q title %q", e.Artist, e.Title)
}

func (e *TrackNotFoundError) Is(target error) bool {
	return target == ErrTrackNotFound
}

// MetadataProvider obtains a valid TrackMetadata for an (artist, title) pair,
// handling the submit-if-missing protocol internally.
//
// GetTrackMetadata returns a *ProcessingError when the track had to be
// submitted and is still being analyzed; any other non-nil error is a
// gateway failure.
type MetadataProvider interface {
	GetTrackMetadata(ctx context.Context, artist, title string) (domain.TrackMetadata, error)
	JobProgress(ctx context.Context, jobID string) (domain.AnalysisJob, error)
}
