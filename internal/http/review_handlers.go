package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/school4u/api/internal/http/middleware"
	"github.com/school4u/api/internal/repo"
)

type createReviewRequest struct {
	SchoolName string `json:"school_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// CreateReview stores a school review for the authenticated user.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if strings.TrimSpace(req.SchoolName) == "" {
		WriteError(w, http.StatusBadRequest, "Invalid school name", "School name cannot be empty")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		WriteError(w, http.StatusBadRequest, "Invalid rating", "Rating must be between 1 and 5")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), repo.CreateReviewInput{
		SchoolName: req.SchoolName,
		UserID:     httpmiddleware.GetUserID(r.Context()),
		Username:   httpmiddleware.GetUsername(r.Context()),
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		log.Error().Err(err).Msg("review insert failed")
		WriteError(w, http.StatusInternalServerError, "Database error while posting review", err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, review)
}

// ListReviews returns a school's reviews, newest first.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	schoolName := chi.URLParam(r, "school_name")
	if decoded, err := url.PathUnescape(schoolName); err == nil {
		schoolName = decoded
	}
	if strings.TrimSpace(schoolName) == "" {
		WriteError(w, http.StatusBadRequest, "Invalid school name", "School name cannot be empty")
		return
	}

	reviews, err := h.reviews.ListReviews(r.Context(), schoolName)
	if err != nil {
		log.Error().Err(err).Msg("review fetch failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch reviews", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}
