package main

import (
	"fmt"
	"log"

	"bommerge/internal/config"
	"bommerge/internal/handler"
	"bommerge/internal/router"
	"bommerge/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize services
	mergeSvc := service.NewMergeService(&cfg.Merge)

	// Initialize handlers
	mergeH := handler.NewMergeHandler(mergeSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, mergeH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
