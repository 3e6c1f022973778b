package catalog

import (
	"sort"
	"strings"

	"storefront/internal/models"
)

// Evaluate applies the filter's predicate conjunction to the product
// collection, then sorts the survivors. Pure: the input slice is not touched.
// The sort is stable, so products with equal sort-key values keep their
// relative input order.
func Evaluate(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesSearch(p, f.Search) && matchesCategory(p, f.Categories) && matchesPrice(p, f.MinPrice, f.MaxPrice) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortValue(out[i], f.SortBy), sortValue(out[j], f.SortBy)
		if f.Order == OrderAsc {
			return a < b
		}
		return a > b
	})

	return out
}

// matchesSearch is a case-insensitive substring match on name or short
// description. An empty term matches everything.
func matchesSearch(p models.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.ShortDescription), term)
}

// matchesCategory holds when any selected name equals any of the product's
// category names, case-insensitively. An empty selection matches everything.
func matchesCategory(p models.Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		for _, c := range p.Categories {
			if strings.EqualFold(c.Name, want) {
				return true
			}
		}
	}
	return false
}

func matchesPrice(p models.Product, min, max float64) bool {
	return p.Price >= min && p.Price <= max
}

// sortValue projects a product onto the numeric axis named by the sort key.
// Unknown keys compare equal, which leaves the input order untouched.
func sortValue(p models.Product, key SortKey) float64 {
	switch key {
	case SortPrice:
		return p.Price
	case SortDate:
		if p.CreatedAt.IsZero() {
			return 0
		}
		return float64(p.CreatedAt.Unix())
	case SortRating:
		return p.AverageRating
	case SortPopularity:
		return float64(p.TotalSales)
	}
	return 0
}
