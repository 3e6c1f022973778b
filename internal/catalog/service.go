package catalog

import (
	"context"
	"errors"

	"storefront/internal/logger"
	"storefront/internal/models"
)

var ErrNotFound = errors.New("product not found")

// Fixed user-facing messages. Internal error detail stays in the logs.
const (
	MsgFetchProducts = "Failed to fetch products"
	MsgFetchProduct  = "Failed to fetch product"
	MsgNotFound      = "Product not found"
)

// Source yields normalized catalog data from an upstream store.
type Source interface {
	Catalog(ctx context.Context) ([]models.Product, error)
	CatalogPage(ctx context.Context, page, perPage int) ([]models.Product, error)
}

// Service is the catalog read surface for the storefront. It degrades
// silently: an unconfigured or failing upstream is replaced with fixture data
// and logged as a warning, so callers never observe upstream outages. That is
// deliberate and callers rely on it.
type Service struct {
	source   Source // nil when no upstream is configured
	fixtures *FixtureSource
	logger   *logger.Logger
}

func NewService(source Source, logger *logger.Logger) *Service {
	return &Service{
		source:   source,
		fixtures: NewFixtureSource(),
		logger:   logger,
	}
}

// Products returns the full normalized catalog. It never fails.
func (s *Service) Products(ctx context.Context) []models.Product {
	if s.source == nil {
		s.logger.Warn("catalog: no upstream configured, serving fixture data")
		products, err := s.fixtures.Catalog(ctx)
		if err != nil {
			return Fixtures()
		}
		return products
	}

	products, err := s.source.Catalog(ctx)
	if err != nil {
		s.logger.Warn("catalog: upstream fetch failed, serving fixture data: %v", err)
		return Fixtures()
	}
	return products
}

// Product looks a product up by id. The upstream has no stable single-record
// endpoint across both schemas, so the lookup scans the aggregated catalog.
func (s *Service) Product(ctx context.Context, id int64) (models.Product, error) {
	for _, p := range s.Products(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Categories derives the category set from the catalog, deduplicated by name
// (case-sensitive) in first-seen order.
func (s *Service) Categories(ctx context.Context) []models.Category {
	seen := make(map[string]bool)
	var categories []models.Category
	for _, p := range s.Products(ctx) {
		for _, c := range p.Categories {
			if c.Name == "" || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			if c.Slug == "" {
				c.Slug = models.Slugify(c.Name)
			}
			categories = append(categories, c)
		}
	}
	return categories
}
