package catalog

// SortKey names the field a product listing is ordered by.
type SortKey string

const (
	SortDate       SortKey = "date"
	SortPrice      SortKey = "price"
	SortRating     SortKey = "rating"
	SortPopularity SortKey = "popularity"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter is the current catalog query: selected category names, inclusive
// price bounds, a free-text search term and the sort policy. The zero-length
// category selection means "match all", not "match none".
type Filter struct {
	Categories []string  `json:"categories"`
	MinPrice   float64   `json:"min_price"`
	MaxPrice   float64   `json:"max_price"`
	Search     string    `json:"search"`
	SortBy     SortKey   `json:"sort_by"`
	Order      SortOrder `json:"order"`
}

// DefaultFilter is the state a cleared filter returns to.
func DefaultFilter() Filter {
	return Filter{
		MinPrice: 0,
		MaxPrice: 1000,
		SortBy:   SortDate,
		Order:    OrderDesc,
	}
}

// Equal reports whether two filters describe the same query. Category
// selection is a set; order does not matter.
func (f Filter) Equal(other Filter) bool {
	if f.MinPrice != other.MinPrice || f.MaxPrice != other.MaxPrice ||
		f.Search != other.Search || f.SortBy != other.SortBy || f.Order != other.Order {
		return false
	}
	if len(f.Categories) != len(other.Categories) {
		return false
	}
	set := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		set[c] = true
	}
	for _, c := range other.Categories {
		if !set[c] {
			return false
		}
	}
	return true
}
