package musicatlas

import (
	"strings"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

type describeRequest struct {
	Artist string `json:"artist"`
	Track  string `json:"track"`
}

type addTrackRequest struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

type addTrackResponse struct {
	JobID string `json:"job_id"`
}

// describeResponse mirrors the provider payload. Fields have been optional
// across provider versions; defaulting happens once here, at the boundary.
type describeResponse struct {
	MusicCharacteristics struct {
		BPM  float64 `json:"bpm"`
		Key  string  `json:"key"`
		Mode string  `json:"mode"`
	} `json:"music_characteristics"`
	AudioCharacteristics struct {
		PerceivedIntensity string `json:"perceived_intensity"`
	} `json:"audio_characteristics"`
	Genres []string `json:"genres"`
}

func (r describeResponse) toDomain() domain.TrackMetadata {
	key := strings.TrimSpace(r.MusicCharacteristics.Key)
	if key == "" {
		key = "Unknown"
	}
	mode := strings.ToLower(strings.TrimSpace(r.MusicCharacteristics.Mode))
	if mode == "" {
		mode = "major"
	}
	intensity := strings.ToLower(strings.TrimSpace(r.AudioCharacteristics.PerceivedIntensity))
	if intensity == "" {
		intensity = "medium"
	}

	return domain.TrackMetadata{
		Music: domain.MusicCharacteristics{
			BPM:  r.MusicCharacteristics.BPM,
			Key:  key,
			Mode: mode,
		},
		Audio: domain.AudioCharacteristics{
			PerceivedIntensity: intensity,
		},
		Genres: r.Genres,
	}
}

type jobProgressResponse struct {
	JobID           string  `json:"job_id"`
	Status          string  `json:"status"`
	PercentComplete float64 `json:"percent_complete"`
	ETASeconds      float64 `json:"eta_seconds"`
	ErrorMessage    string  `json:"error_message"`
}

func (r jobProgressResponse) toDomain(fallbackID string) domain.AnalysisJob {
	id := r.JobID
	if id == "" {
		id = fallbackID
	}

	status := domain.JobStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	switch status {
	case domain.JobStatusQueued, domain.JobStatusStarted, domain.JobStatusDone, domain.JobStatusError:
	default:
		// Providers have reported transitional labels; treat anything
		// unrecognized as still queued rather than failing the poll.
		status = domain.JobStatusQueued
	}

	return domain.AnalysisJob{
		ID:              id,
		Status:          status,
		PercentComplete: r.PercentComplete,
		ETASeconds:      r.ETASeconds,
		ErrorMessage:    r.ErrorMessage,
	}
}
