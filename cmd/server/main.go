package main

import (
	"log"
	"net/http"

	"dconn.dev/dungeon/internal/config"
	"dconn.dev/dungeon/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	router, err := handlers.SetupRoutes(cfg)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	log.Printf("Serving %d profiles on %s (default %s)", len(cfg.ProfileNames()), cfg.ServerAddr, cfg.Profile)
	log.Fatal(http.ListenAndServe(cfg.ServerAddr, router))
}
