package main

import (
	"log"

	"storefront/internal/api"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/woocommerce"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Pick the catalog source: the signed upstream client when credentials
	// are configured, fixture data otherwise.
	var service *catalog.Service
	var source catalog.Source
	if cfg.UpstreamConfigured() {
		client := woocommerce.NewClient(cfg.UpstreamURL, cfg.ConsumerKey, cfg.ConsumerSecret, logger)
		service = catalog.NewService(client, logger)
		source = client
	} else {
		logger.Warn("WC_API_URL/WC_CONSUMER_KEY/WC_CONSUMER_SECRET not set, serving fixture data")
		service = catalog.NewService(nil, logger)
		source = catalog.NewFixtureSource()
	}

	// Initialize API server
	server := api.New(cfg, logger, service, source)

	// Start server
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
