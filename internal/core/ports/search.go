package ports

import (
	"context"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// TrackSearcher looks up candidate tracks for a free-text query. It feeds
// the analysis entry point; result ranking is the adapter's concern.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query string) ([]domain.Track, error)
}
