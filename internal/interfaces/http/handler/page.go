package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
)

// PageHandler handles the product page: variant selection, postal code
// lookup and staging cart and wishlist actions
type PageHandler struct {
	BaseHandler
	page    *storefrontapp.PageService
	confirm *storefrontapp.ConfirmationService
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(page *storefrontapp.PageService, confirm *storefrontapp.ConfirmationService) *PageHandler {
	return &PageHandler{page: page, confirm: confirm}
}

// SelectColorRequest picks a color variant
type SelectColorRequest struct {
	Color string `json:"color" binding:"required,hexcolor"`
}

// SelectSizeRequest picks a size of the selected color
type SelectSizeRequest struct {
	Size string `json:"size" binding:"required,max=8"`
}

// SelectImageRequest shows another image of the selected color
type SelectImageRequest struct {
	URL string `json:"url" binding:"required,max=500"`
}

// SetPostalCodeRequest carries the raw postal code input. Empty clears it.
type SetPostalCodeRequest struct {
	PostalCode string `json:"postal_code" binding:"max=20,postalcode"`
}

// GetPage returns the visitor's product page
// GET /api/v1/page
func (h *PageHandler) GetPage(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	view, err := h.page.GetPage(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SelectColor switches the color variant and resets the size
// PUT /api/v1/page/color
func (h *PageHandler) SelectColor(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req SelectColorRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.page.SelectColor(c.Request.Context(), visitorID, req.Color)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SelectSize picks one of the selected color's sizes
// PUT /api/v1/page/size
func (h *PageHandler) SelectSize(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req SelectSizeRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.page.SelectSize(c.Request.Context(), visitorID, req.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SelectImage changes the main image
// PUT /api/v1/page/image
func (h *PageHandler) SelectImage(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req SelectImageRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.page.SelectImage(c.Request.Context(), visitorID, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetPostalCode stores the masked postal code. A resolved address stays until
// the next lookup completes.
// PUT /api/v1/page/postal-code
func (h *PageHandler) SetPostalCode(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req SetPostalCodeRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.page.SetPostalCode(c.Request.Context(), visitorID, req.PostalCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// LookupShipping resolves the address of the stored postal code. Failed and
// stale lookups still return the page so the client can re-render.
// POST /api/v1/page/shipping
func (h *PageHandler) LookupShipping(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	view, err := h.page.LookupShipping(c.Request.Context(), visitorID)
	if err != nil {
		if view != nil {
			h.HandleErrorWithData(c, err, view)
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// StageCart asks the visitor to confirm adding the selected variant to the cart
// POST /api/v1/page/cart
func (h *PageHandler) StageCart(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	pending, err := h.confirm.StageCart(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pending)
}

// StageWishlist asks the visitor to confirm saving or removing the product
// POST /api/v1/page/wishlist
func (h *PageHandler) StageWishlist(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	pending, err := h.confirm.StageWishlist(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pending)
}
