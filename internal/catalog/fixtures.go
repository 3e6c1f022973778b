package catalog

import (
	"context"
	"time"

	"storefront/internal/models"
)

// fixtureDelay simulates upstream latency so the fixture path exercises the
// same loading states as a live catalog.
const fixtureDelay = 150 * time.Millisecond

var fixtureProducts = []models.Product{
	{
		ID:           101,
		Name:         "Classic Cotton T-Shirt",
		Slug:         "classic-cotton-t-shirt",
		CreatedAt:    time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC),
		Price:        19.99,
		RegularPrice: 24.99,
		SalePrice:    19.99,
		OnSale:       true,
		Categories: []models.Category{
			{ID: 11, Name: "Clothing", Slug: "clothing"},
			{ID: 12, Name: "Men", Slug: "men"},
			{ID: 13, Name: "Tops", Slug: "tops"},
		},
		Images: []models.Image{
			{URL: "https://example.com/media/classic-cotton-t-shirt.jpg", Alt: "Classic Cotton T-Shirt"},
		},
		AverageRating: 4.5,
		RatingCount:   38,
		StockStatus:   models.StockInStock,
		Attributes: []models.Attribute{
			{Name: "Size", Options: []string{"S", "M", "L", "XL"}},
			{Name: "Color", Options: []string{"White", "Black", "Navy"}},
		},
		Description:      "<p>A soft, breathable everyday t-shirt in 100% combed cotton.</p>",
		ShortDescription: "Soft everyday t-shirt in combed cotton.",
		TotalSales:       412,
	},
	{
		ID:           102,
		Name:         "Wireless Earbuds Pro",
		Slug:         "wireless-earbuds-pro",
		CreatedAt:    time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC),
		Price:        89.00,
		RegularPrice: 89.00,
		Categories: []models.Category{
			{ID: 21, Name: "Electronics", Slug: "electronics"},
			{ID: 22, Name: "Audio", Slug: "audio"},
		},
		Images: []models.Image{
			{URL: "https://example.com/media/wireless-earbuds-pro.jpg", Alt: "Wireless Earbuds Pro"},
		},
		AverageRating: 4.2,
		RatingCount:   121,
		StockStatus:   models.StockInStock,
		Attributes: []models.Attribute{
			{Name: "Color", Options: []string{"Black", "White"}},
		},
		Description:      "<p>Noise-isolating wireless earbuds with a 24-hour charging case.</p>",
		ShortDescription: "Noise-isolating earbuds with 24h battery.",
		TotalSales:       976,
	},
}

// Fixtures returns a copy of the built-in sample catalog served when no live
// upstream is reachable.
func Fixtures() []models.Product {
	out := make([]models.Product, len(fixtureProducts))
	copy(out, fixtureProducts)
	return out
}

// FixtureSource is a Source over the fixture set, used in place of a live
// upstream when no credentials are configured. It pages the fixtures the same
// way the upstream would so callers cannot tell the two apart.
type FixtureSource struct {
	delay time.Duration
}

func NewFixtureSource() *FixtureSource {
	return &FixtureSource{delay: fixtureDelay}
}

func (s *FixtureSource) Catalog(ctx context.Context) ([]models.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	return Fixtures(), nil
}

func (s *FixtureSource) CatalogPage(ctx context.Context, page, perPage int) ([]models.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	all := Fixtures()
	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Product{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *FixtureSource) sleep(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
