package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
)

// CartHandler handles the cart drawer
type CartHandler struct {
	BaseHandler
	cart *storefrontapp.CartStore
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *storefrontapp.CartStore) *CartHandler {
	return &CartHandler{cart: store}
}

// CartLineRequest identifies a cart line by product, color and size
type CartLineRequest struct {
	ID    string `json:"id" binding:"required,max=100"`
	Color string `json:"color" binding:"required,hexcolor"`
	Size  string `json:"size" binding:"required,max=8"`
}

func (r CartLineRequest) key() cart.Key {
	return cart.Key{ProductID: r.ID, Color: r.Color, Size: r.Size}
}

// UpdateQuantityRequest sets a line's quantity. Values below 1 are stored as 1.
type UpdateQuantityRequest struct {
	CartLineRequest
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

// SetDrawerRequest opens or closes the drawer
type SetDrawerRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// GetCart returns the cart with its totals
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	h.Success(c, h.cart.Cart(c.Request.Context(), visitorID))
}

// UpdateQuantity changes the quantity of one line
// PATCH /api/v1/cart/items
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.cart.UpdateQuantity(c.Request.Context(), visitorID, req.key(), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem deletes the line matching product, color and size
// DELETE /api/v1/cart/items
func (h *CartHandler) RemoveItem(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req CartLineRequest
	if !h.bind(c, &req) {
		return
	}
	view, err := h.cart.RemoveItem(c.Request.Context(), visitorID, req.key())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the cart
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	view, err := h.cart.Clear(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetDrawer opens or closes the drawer and returns its contents
// PUT /api/v1/cart/drawer
func (h *CartHandler) SetDrawer(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req SetDrawerRequest
	if !h.bind(c, &req) {
		return
	}
	h.Success(c, h.cart.SetOpen(c.Request.Context(), visitorID, *req.Open))
}
