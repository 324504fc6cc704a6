// package main provides the entry point for the contact-backend service,
// wiring the configuration, organization store, source registry and research
// orchestrator behind the REST and GraphQL API.
package main

import (
	"log"
	"os"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/internal/api"
	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/sources"
	"github.com/tzleads/contact-backend/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st := store.New()
	registry := sources.NewRegistry(cfg)
	finder := services.NewContactFinder(cfg, st, registry)

	app := api.NewFiberApp(finder)

	log.Printf("Starting server on %s", cfg.Listen)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
