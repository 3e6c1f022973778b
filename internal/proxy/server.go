package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/api/middleware"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/woocommerce"

	"github.com/gin-gonic/gin"
)

// Server is the signing proxy: a single open endpoint that aggregates every
// upstream catalog page into one merged JSON array, signing each outbound
// page request. Failures surface as 500s here; the fixture fallback belongs
// to the storefront, not the proxy.
type Server struct {
	config *config.Config
	logger *logger.Logger
	client *woocommerce.Client
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, client *woocommerce.Client) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	s := &Server{
		config: cfg,
		logger: logger,
		client: client,
		router: router,
	}

	router.GET("/api/products", s.products)

	return s
}

func (s *Server) products(c *gin.Context) {
	records, err := s.client.FetchAll(c.Request.Context())
	if err != nil {
		s.logger.Error("aggregate products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) Start() error {
	addr := ":" + s.config.ProxyPort

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// The response is written only after full aggregation, which can
		// take a while on large catalogs.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("WooCommerce proxy running on port " + s.config.ProxyPort)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down proxy...")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router, mainly for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
