package main

import (
	"log"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/proxy"
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

	// The proxy always runs against an upstream; placeholders stand in for
	// missing settings and fail loudly on the first request.
	url, key, secret := cfg.ProxyUpstream()
	logger.Info("WooCommerce URL: %s", url)
	if key == config.PlaceholderKey || secret == config.PlaceholderSecret {
		logger.Warn("WooCommerce credentials not configured, using placeholders")
	}

	client := woocommerce.NewClient(url, key, secret, logger)
	server := proxy.New(cfg, logger, client)

	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start proxy: %v", err)
	}
}
