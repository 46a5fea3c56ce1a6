package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/school4u/api/internal/http/middleware"
)

type addFavoriteRequest struct {
	Data string `json:"data"`
}

// AddToFav saves a school for the authenticated user.
func (h *Handler) AddToFav(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if strings.TrimSpace(req.Data) == "" {
		WriteError(w, http.StatusBadRequest, "Invalid school name", "School name cannot be empty")
		return
	}

	userID := httpmiddleware.GetUserID(r.Context())
	if err := h.favorites.AddFavorite(r.Context(), userID, req.Data); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("favorite insert failed")
		WriteError(w, http.StatusInternalServerError, "An error occurred while adding school", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "School added to favourites"})
}

// FetchFav lists the authenticated user's saved schools.
func (h *Handler) FetchFav(w http.ResponseWriter, r *http.Request) {
	userID := httpmiddleware.GetUserID(r.Context())

	favorites, err := h.favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("favorite fetch failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch favorites", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}
