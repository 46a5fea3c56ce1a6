package http

import (
	"encoding/json"
	"net/http"

	"github.com/school4u/api/internal/dataset"
)

// Schools runs the five-source aggregation. Upstream failures degrade to
// empty collections per source, so this route always answers 200.
func (h *Handler) Schools(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := dataset.Query{
		Name:     params.Get("query"),
		Level:    params.Get("level"),
		Location: params.Get("location"),
		Sort:     params.Get("sortBy"),
	}

	result := h.aggregator.Aggregate(r.Context(), query)
	WriteJSON(w, http.StatusOK, result)
}

type coordinatesRequest struct {
	Address string `json:"address"`
}

// GetCoordinates geocodes an address, answering a fixed Singapore fallback
// when no mapping API key is configured or the lookup fails.
func (h *Handler) GetCoordinates(w http.ResponseWriter, r *http.Request) {
	var req coordinatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	WriteJSON(w, http.StatusOK, h.geocoder.Lookup(r.Context(), req.Address))
}
