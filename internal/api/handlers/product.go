package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *catalog.Service
	source  catalog.Source
	logger  *logger.Logger
}

func NewProductHandler(service *catalog.Service, source catalog.Source, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		source:  source,
		logger:  logger,
	}
}

// List serves the filtered, sorted, paginated catalog. Each request drives a
// fresh loader over the source, so the response reflects the upstream as of
// this request; nothing is retained between requests.
func (h *ProductHandler) List(c *gin.Context) {
	loader := catalog.NewLoader(h.source)
	loader.SetFilter(filterFromQuery(c))

	if err := loader.LoadAll(c.Request.Context()); err != nil {
		h.logger.Error("list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": catalog.MsgFetchProducts})
		return
	}

	filtered := catalog.Evaluate(loader.Products(), loader.Filter())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(catalog.LoaderPageSize)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = catalog.LoaderPageSize
	}

	c.JSON(http.StatusOK, gin.H{
		"data": paginate(filtered, page, perPage),
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    len(filtered),
		},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.service.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.MsgNotFound})
			return
		}
		h.logger.Error("get product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": catalog.MsgFetchProduct})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// filterFromQuery builds the filter state for one request. Absent parameters
// keep their defaults, so a bare request behaves like a cleared filter.
func filterFromQuery(c *gin.Context) catalog.Filter {
	filter := catalog.DefaultFilter()

	filter.Search = c.Query("search")

	if raw := c.Query("categories"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Categories = append(filter.Categories, name)
			}
		}
	}

	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}

	switch key := catalog.SortKey(c.Query("sort")); key {
	case catalog.SortDate, catalog.SortPrice, catalog.SortRating, catalog.SortPopularity:
		filter.SortBy = key
	}
	switch order := catalog.SortOrder(c.Query("order")); order {
	case catalog.OrderAsc, catalog.OrderDesc:
		filter.Order = order
	}

	return filter
}

func paginate(products []models.Product, page, perPage int) []models.Product {
	start := (page - 1) * perPage
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
