package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
)

// HeaderHandler serves the header badges
type HeaderHandler struct {
	BaseHandler
	header *storefrontapp.HeaderService
}

// NewHeaderHandler creates a new HeaderHandler
func NewHeaderHandler(header *storefrontapp.HeaderService) *HeaderHandler {
	return &HeaderHandler{header: header}
}

// GetHeader returns the cart and wishlist counts
// GET /api/v1/header
func (h *HeaderHandler) GetHeader(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	h.Success(c, h.header.Header(c.Request.Context(), visitorID))
}
