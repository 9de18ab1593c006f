// ABOUTME: Main entry point for the sales agent HTTP server
// ABOUTME: Initializes config, services, optional index rebuild, and the gin router
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/api"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/app"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/config"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if cfg.IndexOnStart {
		log.Println("Rebuilding vector index...")
		if err := application.RebuildIndex(ctx); err != nil {
			log.Fatalf("Failed to rebuild index: %v", err)
		}
	}

	router := api.NewRouter(application)
	log.Printf("Sales agent listening on %s", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
