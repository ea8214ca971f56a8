package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dconn.dev/dungeon/internal/config"
	"dconn.dev/dungeon/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config) (http.Handler, error) {
	// Initialize services
	mapService, err := services.NewMapService(cfg, log.Default())
	if err != nil {
		return nil, err
	}
	return NewRouter(mapService), nil
}

// NewRouter builds the router around an existing MapService
func NewRouter(mapService *services.MapService) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	mapHandler := NewMapHandler(mapService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", mapHandler.ListProfiles)

		r.Route("/maps/{seed}", func(r chi.Router) {
			r.Get("/", mapHandler.GetMap)
			r.Get("/image", mapHandler.GetImage)
			r.Get("/stream", mapHandler.StreamStages)
		})

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
