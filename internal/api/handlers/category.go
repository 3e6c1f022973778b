package handlers

import (
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

func NewCategoryHandler(service *catalog.Service, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories := h.service.Categories(c.Request.Context())
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}
