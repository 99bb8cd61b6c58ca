package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/backend/internal/domain"
	"github.com/shopgrid/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search       *usecase.SearchService
	related      *usecase.RelatedService
	writer       domain.CatalogWriter
	cache        domain.CacheRepository
	cacheTTL     time.Duration
	relatedLimit int
}

// HandlerConfig holds handler-level settings
type HandlerConfig struct {
	CacheTTL     time.Duration
	RelatedLimit int
}

// searchResultItem flattens a scored product for the response body: fuzzy
// metadata rides on the product object itself, only for fuzzy-tier hits.
type searchResultItem struct {
	domain.Product
	IsFuzzyMatch bool    `json:"isFuzzyMatch,omitempty"`
	FuzzyScore   float64 `json:"fuzzyScore,omitempty"`
}

// relatedResultItem flattens a related product for the response body
type relatedResultItem struct {
	domain.Product
	SimilarityScore float64  `json:"similarityScore"`
	CommonKeywords  []string `json:"commonKeywords"`
}

// NewHandler creates a new HTTP handler
func NewHandler(
	search *usecase.SearchService,
	related *usecase.RelatedService,
	writer domain.CatalogWriter,
	cache domain.CacheRepository,
	cfg HandlerConfig,
) *Handler {
	relatedLimit := cfg.RelatedLimit
	if relatedLimit <= 0 {
		relatedLimit = usecase.DefaultRelatedLimit
	}

	return &Handler{
		search:       search,
		related:      related,
		writer:       writer,
		cache:        cache,
		cacheTTL:     cfg.CacheTTL,
		relatedLimit: relatedLimit,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopgrid-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles GET /products/search/:keyword
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := c.Param("keyword")
	cacheKey := "search:" + keyword

	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	results, err := h.search.Search(c.Request.Context(), keyword)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUpstreamFetch) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": "error in search product API",
		})
		return
	}

	items := make([]searchResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, searchResultItem{
			Product:      r.Product,
			IsFuzzyMatch: r.IsFuzzyMatch,
			FuzzyScore:   r.FuzzyScore,
		})
	}

	response := gin.H{
		"success":    true,
		"totalCount": len(items),
		"products":   items,
	}

	if h.cache != nil && h.cacheTTL > 0 {
		// Cache write failures are not worth failing the request over
		_ = h.cache.Set(c.Request.Context(), cacheKey, response, h.cacheTTL)
	}

	c.JSON(http.StatusOK, response)
}

// RelatedProducts handles GET /products/related/:pid/:cid
func (h *Handler) RelatedProducts(c *gin.Context) {
	pid := c.Param("pid")
	cid := c.Param("cid")

	limit := h.relatedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "limit must be an integer",
			})
			return
		}
		limit = parsed
	}

	results, err := h.related.Related(c.Request.Context(), pid, cid, limit)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "product not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "error while getting related products",
		})
		return
	}

	items := make([]relatedResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, relatedResultItem{
			Product:         r.Product,
			SimilarityScore: r.SimilarityScore,
			CommonKeywords:  r.CommonKeywords,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": items,
	})
}

// CreateProduct handles POST /products (catalog ingest)
func (h *Handler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	created, err := h.writer.Add(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "error in creating product",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "product created successfully",
		"product": created,
	})
}
