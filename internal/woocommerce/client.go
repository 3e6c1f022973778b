package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"storefront/internal/logger"
	"storefront/internal/models"
)

// DefaultPageSize is the page size used when aggregating the full catalog.
const DefaultPageSize = 100

// Client talks to a WooCommerce REST API. Every request is signed with a
// one-legged OAuth1 HMAC-SHA1 signature (consumer key/secret, empty token),
// which is what WooCommerce expects for server-to-server key access.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, logger *logger.Logger) *Client {
	oauthConfig := oauth1.NewConfig(consumerKey, consumerSecret)
	httpClient := oauthConfig.Client(oauth1.NoContext, oauth1.NewToken("", ""))
	httpClient.Timeout = 30 * time.Second

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   DefaultPageSize,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ProductsPage fetches a single page of raw product records in the upstream
// schema. The upstream returns a bare JSON array; an empty array means there
// is no more data.
func (c *Client) ProductsPage(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/products?per_page=%d&page=%d", c.baseURL, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return records, nil
}

// FetchAll aggregates every catalog page into one ordered collection. Pages
// are requested sequentially; a page shorter than the page size is the
// end-of-data signal, so a catalog that is an exact multiple of the page size
// costs one extra request that returns an empty page. Any page error aborts
// the whole aggregation.
func (c *Client) FetchAll(ctx context.Context) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for page := 1; ; page++ {
		records, err := c.ProductsPage(ctx, page, c.pageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, records...)
		if len(records) < c.pageSize {
			c.logger.Debug("aggregated %d products over %d pages", len(all), page)
			return all, nil
		}
	}
}

// Catalog returns the full catalog normalized into canonical products.
func (c *Client) Catalog(ctx context.Context) ([]models.Product, error) {
	records, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(records)
}

// CatalogPage returns one normalized catalog page.
func (c *Client) CatalogPage(ctx context.Context, page, perPage int) ([]models.Product, error) {
	records, err := c.ProductsPage(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(records)
}
