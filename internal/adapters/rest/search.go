package rest

import (
	"errors"
	"net/http"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

type trackResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
	DurationMs int    `json:"durationMs"`
	Popularity int    `json:"popularity"`
}

func toTrackResponse(t domain.Track) trackResponse {
	return trackResponse{
		ID:         t.ID,
		Title:      t.Title,
		Artist:     t.Artist,
		ArtworkURL: t.ArtworkURL,
		DurationMs: t.DurationMs,
		Popularity: t.Popularity,
	}
}

// SearchTracks handles GET /api/tracks/search?q=
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	tracks, err := h.svc.SearchTracks(r.Context(), query)
	if err != nil {
		if errors.Is(err, ports.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "track search is unavailable right now")
		return
	}

	resp := make([]trackResponse, 0, len(tracks))
	for _, t := range tracks {
		resp = append(resp, toTrackResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": resp})
}
