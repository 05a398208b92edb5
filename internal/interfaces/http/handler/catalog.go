package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
)

// CatalogHandler serves the product catalog
type CatalogHandler struct {
	BaseHandler
	catalog catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// GetFeatured returns the product shown on the product page
// GET /api/v1/catalog/product
func (h *CatalogHandler) GetFeatured(c *gin.Context) {
	h.Success(c, dto.ToProductView(h.catalog.Featured()))
}
