package router

import (
	"net/http"

	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/handler"
)

// Handlers are the storefront endpoints mounted under the API prefix
type Handlers struct {
	Catalog      *handler.CatalogHandler
	Page         *handler.PageHandler
	Confirmation *handler.ConfirmationHandler
	Cart         *handler.CartHandler
	Wishlist     *handler.WishlistHandler
	Header       *handler.HeaderHandler
}

// StorefrontGroups builds the route groups of the storefront API
func StorefrontGroups(h Handlers) []*DomainGroup {
	catalogRoutes := NewDomainGroup("catalog", "/catalog").
		Handle(http.MethodGet, "/product", "featured product", h.Catalog.GetFeatured)

	pageRoutes := NewDomainGroup("page", "/page").
		Handle(http.MethodGet, "", "product page state", h.Page.GetPage).
		Handle(http.MethodPut, "/color", "select color", h.Page.SelectColor).
		Handle(http.MethodPut, "/size", "select size", h.Page.SelectSize).
		Handle(http.MethodPut, "/image", "select main image", h.Page.SelectImage).
		Handle(http.MethodPut, "/postal-code", "set postal code input", h.Page.SetPostalCode).
		Handle(http.MethodPost, "/shipping", "look up the postal code address", h.Page.LookupShipping).
		Handle(http.MethodPost, "/cart", "stage add to cart", h.Page.StageCart).
		Handle(http.MethodPost, "/wishlist", "stage wishlist toggle", h.Page.StageWishlist)

	confirmationRoutes := NewDomainGroup("confirmations", "/confirmations").
		Handle(http.MethodGet, "/pending", "pending action", h.Confirmation.GetPending).
		Handle(http.MethodPost, "/:id/confirm", "commit the pending action", h.Confirmation.Confirm).
		Handle(http.MethodPost, "/:id/cancel", "discard the pending action", h.Confirmation.Cancel)

	cartRoutes := NewDomainGroup("cart", "/cart").
		Handle(http.MethodGet, "", "cart and totals", h.Cart.GetCart).
		Handle(http.MethodPatch, "/items", "change line quantity", h.Cart.UpdateQuantity).
		Handle(http.MethodDelete, "/items", "remove line", h.Cart.RemoveItem).
		Handle(http.MethodDelete, "", "empty the cart", h.Cart.Clear).
		Handle(http.MethodPut, "/drawer", "open or close the drawer", h.Cart.SetDrawer)

	wishlistRoutes := NewDomainGroup("wishlist", "/wishlist").
		Handle(http.MethodGet, "", "saved products", h.Wishlist.GetWishlist).
		Handle(http.MethodDelete, "/:product_id", "remove saved product", h.Wishlist.Remove).
		Handle(http.MethodDelete, "", "empty the wishlist", h.Wishlist.Clear).
		Handle(http.MethodPost, "/:product_id/cart", "add saved product to the cart", h.Wishlist.MoveToCart)

	headerRoutes := NewDomainGroup("header", "/header").
		Handle(http.MethodGet, "", "cart and wishlist badges", h.Header.GetHeader)

	return []*DomainGroup{catalogRoutes, pageRoutes, confirmationRoutes, cartRoutes, wishlistRoutes, headerRoutes}
}
