package models

import (
	"strings"
	"time"
)

// Product is the canonical catalog record. Upstream records arrive in two
// shapes (the WooCommerce REST schema and a flattened export schema); both are
// reconciled into this form once at ingestion, so consumers never deal with
// field fallbacks.
type Product struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	CreatedAt        time.Time   `json:"date_created"`
	Price            float64     `json:"price"`
	RegularPrice     float64     `json:"regular_price"`
	SalePrice        float64     `json:"sale_price"`
	OnSale           bool        `json:"on_sale"`
	Categories       []Category  `json:"categories"`
	Images           []Image     `json:"images"`
	AverageRating    float64     `json:"average_rating"`
	RatingCount      int         `json:"rating_count"`
	StockStatus      StockStatus `json:"stock_status"`
	Attributes       []Attribute `json:"attributes"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	TotalSales       int64       `json:"total_sales"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Image struct {
	URL string `json:"src"`
	Alt string `json:"alt"`
}

type Attribute struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type StockStatus string

const (
	StockInStock    StockStatus = "instock"
	StockOutOfStock StockStatus = "outofstock"
)

// CategoryNames returns the product's category names in order.
func (p *Product) CategoryNames() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Name
	}
	return names
}

// Slugify derives a URL-safe slug for records that arrive without one.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
