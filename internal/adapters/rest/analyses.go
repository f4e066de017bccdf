package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
	"github.com/atwell-labs/syncscore/internal/core/services"
)

// startAnalysisRequest defines what the client sends us
type startAnalysisRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artworkUrl"`
	DurationMs int    `json:"durationMs"`
	Popularity int    `json:"popularity"`
}

type breakdownItemResponse struct {
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Value       string `json:"value"`
	Explanation string `json:"explanation"`
}

type scoreResponse struct {
	FinalScore   int                     `json:"finalScore"`
	MatchedGenre string                  `json:"matchedGenre,omitempty"`
	Breakdown    []breakdownItemResponse `json:"breakdown"`
}

type jobResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	PercentComplete float64 `json:"percentComplete"`
	ETASeconds      float64 `json:"etaSeconds,omitempty"`
}

type sessionResponse struct {
	ID       string           `json:"id"`
	State    string           `json:"state"`
	Track    trackResponse    `json:"track"`
	Job      *jobResponse     `json:"job,omitempty"`
	Score    *scoreResponse   `json:"score,omitempty"`
	Feedback *domain.Feedback `json:"feedback,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func toSessionResponse(v services.SessionView) sessionResponse {
	resp := sessionResponse{
		ID:    v.ID,
		State: string(v.State),
		Track: toTrackResponse(v.Track),
		Error: v.ErrorMessage,
	}
	if v.State == services.StateProcessing {
		resp.Job = &jobResponse{
			ID:              v.Job.ID,
			Status:          string(v.Job.Status),
			PercentComplete: v.Job.PercentComplete,
			ETASeconds:      v.Job.ETASeconds,
		}
	}
	if v.Score != nil {
		score := &scoreResponse{
			FinalScore:   v.Score.FinalScore,
			MatchedGenre: v.Score.MatchedGenre,
			Breakdown:    make([]breakdownItemResponse, 0, len(v.Score.Breakdown)),
		}
		for _, item := range v.Score.Breakdown {
			score.Breakdown = append(score.Breakdown, breakdownItemResponse{
				Category:    string(item.Category),
				Score:       item.DisplayScore,
				Value:       item.Value,
				Explanation: item.Explanation,
			})
		}
		resp.Score = score
	}
	resp.Feedback = v.Feedback
	return resp
}

// StartAnalysis handles POST /api/analyses
func (h *Handler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req startAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.svc.StartAnalysis(domain.Track{
		ID:         req.ID,
		Title:      req.Title,
		Artist:     req.Artist,
		ArtworkURL: req.ArtworkURL,
		DurationMs: req.DurationMs,
		Popularity: req.Popularity,
	})
	if err != nil {
		if errors.Is(err, ports.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Location", "/api/analyses/"+view.ID)
	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// GetAnalysis handles GET /api/analyses/{id}
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	view, ok := h.svc.GetSession(id)
	if !ok {
		writeError(w, http.StatusNotFound, "analysis session not found")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// CancelAnalysis handles DELETE /api/analyses/{id}
func (h *Handler) CancelAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	if !h.svc.CancelSession(id) {
		writeError(w, http.StatusNotFound, "analysis session not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
