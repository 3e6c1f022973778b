package woocommerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"storefront/internal/models"
)

// Upstream product records come in two shapes: the structured WooCommerce REST
// schema and a flattened export schema (spreadsheet-style column names, nested
// collections squashed into delimited strings). Both are decoded from the same
// raw record and reconciled field by field: structured value first, flattened
// equivalent second, defined zero value last.

// restRecord is the structured WooCommerce REST shape.
type restRecord struct {
	ID               int64           `mapstructure:"id"`
	Name             string          `mapstructure:"name"`
	Slug             string          `mapstructure:"slug"`
	DateCreated      string          `mapstructure:"date_created"`
	Price            string          `mapstructure:"price"`
	RegularPrice     string          `mapstructure:"regular_price"`
	SalePrice        string          `mapstructure:"sale_price"`
	OnSale           bool            `mapstructure:"on_sale"`
	Categories       []restCategory  `mapstructure:"categories"`
	Images           []restImage     `mapstructure:"images"`
	AverageRating    string          `mapstructure:"average_rating"`
	RatingCount      int             `mapstructure:"rating_count"`
	StockStatus      string          `mapstructure:"stock_status"`
	Attributes       []restAttribute `mapstructure:"attributes"`
	Description      string          `mapstructure:"description"`
	ShortDescription string          `mapstructure:"short_description"`
	TotalSales       int64           `mapstructure:"total_sales"`
}

type restCategory struct {
	ID   int64  `mapstructure:"id"`
	Name string `mapstructure:"name"`
	Slug string `mapstructure:"slug"`
}

type restImage struct {
	Src string `mapstructure:"src"`
	Alt string `mapstructure:"alt"`
}

type restAttribute struct {
	Name    string   `mapstructure:"name"`
	Options []string `mapstructure:"options"`
}

// flatRecord is the flattened export shape.
type flatRecord struct {
	ID               int64  `mapstructure:"ID"`
	Name             string `mapstructure:"Name"`
	Categories       string `mapstructure:"Categories"`
	Images           string `mapstructure:"Images"`
	RegularPrice     string `mapstructure:"Regular price"`
	SalePrice        string `mapstructure:"Sale price"`
	InStock          string `mapstructure:"In stock?"`
	Description      string `mapstructure:"Description"`
	ShortDescription string `mapstructure:"Short description"`
	DateCreated      string `mapstructure:"Date Created"`
	AverageRating    string `mapstructure:"Average Rating"`
	TotalSales       string `mapstructure:"Total Sales"`
}

// NormalizeAll converts raw upstream records into canonical products.
func NormalizeAll(records []json.RawMessage) ([]models.Product, error) {
	products := make([]models.Product, 0, len(records))
	for i, raw := range records {
		product, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// Normalize reconciles one raw record into a canonical product. A record that
// carries neither shape normalizes to zero values, never to an error; only a
// record that is not a JSON object is rejected.
func Normalize(raw json.RawMessage) (models.Product, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Product{}, fmt.Errorf("failed to decode record: %w", err)
	}

	var rest restRecord
	var flat flatRecord
	decodeRecord(fields, &rest)
	decodeRecord(fields, &flat)

	name := firstNonEmpty(rest.Name, flat.Name)
	slug := rest.Slug
	if slug == "" {
		slug = models.Slugify(name)
	}

	product := models.Product{
		ID:               rest.ID,
		Name:             name,
		Slug:             slug,
		CreatedAt:        parseDate(firstNonEmpty(rest.DateCreated, flat.DateCreated)),
		RegularPrice:     parseDecimal(firstNonEmpty(rest.RegularPrice, flat.RegularPrice)),
		SalePrice:        parseDecimal(firstNonEmpty(rest.SalePrice, flat.SalePrice)),
		OnSale:           rest.OnSale || (rest.SalePrice == "" && flat.SalePrice != ""),
		Categories:       normalizeCategories(rest.Categories, flat.Categories),
		Images:           normalizeImages(rest.Images, flat.Images),
		AverageRating:    parseDecimal(firstNonEmpty(rest.AverageRating, flat.AverageRating)),
		RatingCount:      rest.RatingCount,
		StockStatus:      normalizeStock(rest.StockStatus, flat.InStock),
		Attributes:       normalizeAttributes(rest.Attributes),
		Description:      firstNonEmpty(rest.Description, flat.Description),
		ShortDescription: firstNonEmpty(rest.ShortDescription, flat.ShortDescription),
		TotalSales:       rest.TotalSales,
	}
	if product.ID == 0 {
		product.ID = flat.ID
	}
	if product.TotalSales == 0 {
		product.TotalSales = parseCount(flat.TotalSales)
	}

	// Resolved price: price, else sale price, else regular price.
	product.Price = parseDecimal(firstNonEmpty(
		rest.Price, rest.SalePrice, rest.RegularPrice, flat.SalePrice, flat.RegularPrice,
	))

	return product, nil
}

// decodeRecord maps raw fields onto a wire record. Key matching is exact so
// the two schemas cannot bleed into each other ("Categories" is a string in
// the flattened shape but a collection in the REST shape). Decode errors on
// individual fields leave those fields at their zero value.
func decodeRecord(fields map[string]interface{}, out interface{}) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return
	}
	_ = decoder.Decode(fields)
}

// ParseCategories splits a ">"-delimited category string into segments:
// trimmed, empties dropped, deduplicated by name (case-sensitive) preserving
// first-seen order.
func ParseCategories(s string) []string {
	var segments []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ">") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		segments = append(segments, part)
	}
	return segments
}

func normalizeCategories(rest []restCategory, flat string) []models.Category {
	if len(rest) > 0 {
		categories := make([]models.Category, len(rest))
		for i, c := range rest {
			slug := c.Slug
			if slug == "" {
				slug = models.Slugify(c.Name)
			}
			categories[i] = models.Category{ID: c.ID, Name: c.Name, Slug: slug}
		}
		return categories
	}

	var categories []models.Category
	for _, name := range ParseCategories(flat) {
		categories = append(categories, models.Category{
			Name: name,
			Slug: models.Slugify(name),
		})
	}
	return categories
}

func normalizeImages(rest []restImage, flat string) []models.Image {
	if len(rest) > 0 {
		images := make([]models.Image, len(rest))
		for i, img := range rest {
			images[i] = models.Image{URL: img.Src, Alt: img.Alt}
		}
		return images
	}

	var images []models.Image
	for _, url := range strings.Split(flat, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, models.Image{URL: url})
	}
	return images
}

func normalizeAttributes(rest []restAttribute) []models.Attribute {
	if len(rest) == 0 {
		return nil
	}
	attributes := make([]models.Attribute, len(rest))
	for i, a := range rest {
		attributes[i] = models.Attribute{Name: a.Name, Options: a.Options}
	}
	return attributes
}

func normalizeStock(rest, flat string) models.StockStatus {
	switch rest {
	case string(models.StockInStock):
		return models.StockInStock
	case string(models.StockOutOfStock):
		return models.StockOutOfStock
	}
	switch strings.ToLower(strings.TrimSpace(flat)) {
	case "no", "0", "false":
		return models.StockOutOfStock
	}
	return models.StockInStock
}

// parseDecimal parses a decimal-as-text value. Missing or unparseable input
// resolves to 0, negative values are clamped to 0.
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseCount(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate tries the formats both schemas are known to use; anything else
// resolves to the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
