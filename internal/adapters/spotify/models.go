package spotify

import (
	"strings"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// spotifyTrack mirrors the provider's track object, trimmed to the fields
// the analysis flow needs.
type spotifyTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DurationMs int    `json:"duration_ms"`
	Popularity int    `json:"popularity"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

// toDomain flattens the nested provider shape into a domain Track.
func (st spotifyTrack) toDomain() domain.Track {
	names := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		names = append(names, a.Name)
	}

	artworkURL := ""
	if len(st.Album.Images) > 0 {
		artworkURL = st.Album.Images[0].URL
	}

	return domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		Artist:     strings.Join(names, ", "),
		ArtworkURL: artworkURL,
		DurationMs: st.DurationMs,
		Popularity: st.Popularity,
	}
}
