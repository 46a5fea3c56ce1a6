package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/school4u/api/internal/cache"
	httpmiddleware "github.com/school4u/api/internal/http/middleware"
	"github.com/school4u/api/internal/repo"
)

// listChat returns the read handler for one room. Reads inside the cache TTL
// are answered from the cache byte-for-byte; writes always bypass it.
func (h *Handler) listChat(room repo.Room, route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID, err := strconv.ParseInt(chi.URLParam(r, "school_id"), 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid school_id parameter", "school_id must be a valid number")
			return
		}

		key := cache.Key(route, schoolID)
		if data, ok := h.cache.Get(r.Context(), key); ok {
			WriteRawJSON(w, http.StatusOK, data)
			return
		}

		messages, err := h.chat.ListMessages(r.Context(), room, schoolID)
		if err != nil {
			log.Error().Err(err).Str("room", route).Int64("school_id", schoolID).Msg("chat fetch failed")
			WriteError(w, http.StatusInternalServerError, "Database error while fetching messages", err.Error())
			return
		}

		data, err := json.Marshal(messages)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		h.cache.Put(r.Context(), key, data)
		WriteRawJSON(w, http.StatusOK, data)
	}
}

type postChatRequest struct {
	Message  string          `json:"message"`
	SchoolID json.RawMessage `json:"school_id"`
}

type postedChatMessage struct {
	repo.ChatMessage
	Username string `json:"username"`
}

// postChat returns the write handler for one room. The author has no column
// in the legacy schema, so the body is stored as "<username>: <text>" and the
// username is echoed back separately for client display.
func (h *Handler) postChat(room repo.Room, route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body", "")
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			WriteError(w, http.StatusBadRequest, "Invalid message", "Message cannot be empty")
			return
		}

		schoolID, ok := parseSchoolID(req.SchoolID)
		if !ok {
			WriteError(w, http.StatusBadRequest, "Invalid school_id", "school_id must be a valid number")
			return
		}

		username := httpmiddleware.GetUsername(r.Context())
		if username == "" {
			WriteError(w, http.StatusBadRequest, "Authentication error", "Username not found in token")
			return
		}

		body := repo.EncodeChatBody(username, req.Message)
		stored, err := h.chat.InsertMessage(r.Context(), room, schoolID, body)
		if err != nil {
			log.Error().Err(err).Str("room", route).Int64("school_id", schoolID).Msg("chat insert failed")
			WriteError(w, http.StatusInternalServerError, "Database error while posting message", err.Error())
			return
		}

		WriteJSON(w, http.StatusCreated, postedChatMessage{ChatMessage: stored, Username: username})
	}
}

// parseSchoolID accepts the id as a JSON number or numeric string; frontend
// callers have sent both.
func parseSchoolID(raw json.RawMessage) (int64, bool) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
