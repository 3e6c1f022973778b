package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Upstream WooCommerce REST API
	UpstreamURL    string
	ConsumerKey    string
	ConsumerSecret string

	// Storefront API
	APIPort string
	APIHost string

	// Signing proxy
	ProxyPort string

	// Environment
	Env      string
	LogLevel string
}

// Placeholder upstream settings used by the proxy when nothing is configured.
// They will fail against a real store, which keeps the failure visible on the
// proxy surface instead of silently serving nothing.
const (
	PlaceholderURL    = "https://your-woocommerce-site.com/wp-json/wc/v3"
	PlaceholderKey    = "your_consumer_key"
	PlaceholderSecret = "your_consumer_secret"
)

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		UpstreamURL:    getEnv("WC_API_URL", ""),
		ConsumerKey:    getEnv("WC_CONSUMER_KEY", ""),
		ConsumerSecret: getEnv("WC_CONSUMER_SECRET", ""),
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		ProxyPort:      getEnv("PORT", "4000"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// UpstreamConfigured reports whether every setting needed for live catalog
// calls is present. When false the storefront serves fixture data.
func (c *Config) UpstreamConfigured() bool {
	return c.UpstreamURL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// ProxyUpstream returns the upstream settings with placeholder defaults
// applied for anything missing.
func (c *Config) ProxyUpstream() (url, key, secret string) {
	url, key, secret = c.UpstreamURL, c.ConsumerKey, c.ConsumerSecret
	if url == "" {
		url = PlaceholderURL
	}
	if key == "" {
		key = PlaceholderKey
	}
	if secret == "" {
		secret = PlaceholderSecret
	}
	return url, key, secret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
