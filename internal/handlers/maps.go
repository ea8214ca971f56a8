package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dconn.dev/dungeon/internal/generation"
	"dconn.dev/dungeon/internal/services"
)

// MapHandler handles map endpoints
type MapHandler struct {
	mapService *services.MapService
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(ms *services.MapService) *MapHandler {
	return &MapHandler{mapService: ms}
}

// ListProfiles handles GET /api/profiles
func (h *MapHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.mapService.Profiles())
}

// GetMap handles GET /api/maps/{seed} - returns the map document
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	seed, ok := parseSeed(w, r)
	if !ok {
		return
	}

	doc, err := h.mapService.Document(seed, r.URL.Query().Get("profile"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// GetImage handles GET /api/maps/{seed}/image - returns the rendered PNG
func (h *MapHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	seed, ok := parseSeed(w, r)
	if !ok {
		return
	}

	data, err := h.mapService.PNG(seed, r.URL.Query().Get("profile"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

func parseSeed(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	seed, err := strconv.ParseUint(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seed")
		return 0, false
	}
	return seed, true
}

// respondServiceError maps service failures to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownProfile):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, generation.ErrInvalidConfig):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Error generating map: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
