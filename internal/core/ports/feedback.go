package ports

import (
	"context"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// FeedbackGenerator produces narrative sync-licensing commentary for a
// scored track. Errors are non-fatal to the analysis: callers fall back to
// the scoring engine's built-in explanations.
type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, track domain.Track, meta domain.TrackMetadata, matchedGenre string) (domain.Feedback, error)
}
