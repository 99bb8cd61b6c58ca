package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopgrid/backend/config"
	httpDelivery "github.com/shopgrid/backend/internal/delivery/http"
	"github.com/shopgrid/backend/internal/infrastructure/cache"
	"github.com/shopgrid/backend/internal/infrastructure/catalog"
	"github.com/shopgrid/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopGrid Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store := catalog.NewMemoryCatalog()
	responseCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(store, usecase.SearchConfig{
		FuzzyEnabled:       cfg.Search.FuzzyEnabled,
		FuzzyThreshold:     cfg.Search.FuzzyThreshold,
		CandidateCap:       cfg.Search.CandidateCap,
		ExactMatchFloor:    cfg.Search.ExactMatchFloor,
		EnableDebugLogging: cfg.Search.DebugLogging,
	})
	relatedService := usecase.NewRelatedService(store, cfg.Search.DebugLogging)

	log.Printf("Search: fuzzy=%v, threshold=%d, candidate cap=%d, exact floor=%d",
		cfg.Search.FuzzyEnabled,
		cfg.Search.FuzzyThreshold,
		cfg.Search.CandidateCap,
		cfg.Search.ExactMatchFloor)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, relatedService, store, responseCache, httpDelivery.HandlerConfig{
		CacheTTL:     cfg.Cache.TTL,
		RelatedLimit: cfg.Search.RelatedLimit,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
