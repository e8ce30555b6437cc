package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanha-9770/bulkimport/internal/logger"
	"github.com/kanha-9770/bulkimport/internal/middleware"
	"github.com/kanha-9770/bulkimport/internal/store"
)

// CatalogHandler serves read access to the imported catalog, translations
// included, so operators can verify what an import wrote.
type CatalogHandler struct {
	categories store.CategoryStore
	products   store.ProductStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(categories store.CategoryStore, products store.ProductStore) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		products:   products,
	}
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list categories",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// ListProducts handles GET /api/v1/catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list products",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
