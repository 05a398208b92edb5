package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
)

// WishlistHandler handles the wishlist page
type WishlistHandler struct {
	BaseHandler
	wishlist *storefrontapp.WishlistStore
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(store *storefrontapp.WishlistStore) *WishlistHandler {
	return &WishlistHandler{wishlist: store}
}

// MoveToCartRequest picks the size of the cart line. Empty uses the default size.
type MoveToCartRequest struct {
	Size string `json:"size" binding:"max=8"`
}

// GetWishlist returns the saved products
// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	h.Success(c, h.wishlist.Wishlist(c.Request.Context(), visitorID))
}

// Remove deletes a saved product
// DELETE /api/v1/wishlist/:product_id
func (h *WishlistHandler) Remove(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	view, err := h.wishlist.Remove(c.Request.Context(), visitorID, c.Param("product_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the wishlist
// DELETE /api/v1/wishlist
func (h *WishlistHandler) Clear(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	view, err := h.wishlist.Clear(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// MoveToCart adds a saved product to the cart. The body is optional.
// POST /api/v1/wishlist/:product_id/cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	var req MoveToCartRequest
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}
	view, err := h.wishlist.MoveToCart(c.Request.Context(), visitorID, c.Param("product_id"), req.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
