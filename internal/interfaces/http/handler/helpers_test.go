package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/cache"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/middleware"
)

const testVisitor = "5d0f6a52-8c1e-4b3a-9d7e-0c2f1a4b6e8d"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// lookupFunc adapts a function to shipping.AddressLookup
type lookupFunc func(ctx context.Context, code valueobject.PostalCode) (*shipping.Address, error)

func (f lookupFunc) Lookup(ctx context.Context, code valueobject.PostalCode) (*shipping.Address, error) {
	return f(ctx, code)
}

// paulista resolves 01310-100 and reports every other code as unknown
var paulista = lookupFunc(func(_ context.Context, code valueobject.PostalCode) (*shipping.Address, error) {
	if code.String() != "01310100" {
		return nil, shared.ErrPostalCodeNotFound
	}
	return &shipping.Address{
		PostalCode:   "01310-100",
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}, nil
})

// newTestEngine wires the storefront handlers over an in-memory store. The
// visitor is taken from the X-Visitor header, defaulting to testVisitor.
func newTestEngine(t *testing.T, lookup shipping.AddressLookup) *gin.Engine {
	t.Helper()

	store := cache.NewInMemorySnapshotStore(0)
	t.Cleanup(func() { _ = store.Close() })

	cat := catalog.NewStaticCatalog(catalog.CourtVisionLow())
	svc := storefrontapp.NewServices(store, cat, lookup)

	catalogH := NewCatalogHandler(cat)
	page := NewPageHandler(svc.Page, svc.Confirmation)
	confirm := NewConfirmationHandler(svc.Confirmation)
	cartH := NewCartHandler(svc.Cart)
	wish := NewWishlistHandler(svc.Wishlist)
	header := NewHeaderHandler(svc.Header)

	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		id := c.GetHeader("X-Visitor")
		if id == "" {
			id = testVisitor
		}
		c.Set(logger.GinVisitorIDKey, id)
		c.Next()
	})

	api := r.Group("/api/v1")
	api.GET("/catalog/product", catalogH.GetFeatured)
	api.GET("/page", page.GetPage)
	api.PUT("/page/color", page.SelectColor)
	api.PUT("/page/size", page.SelectSize)
	api.PUT("/page/image", page.SelectImage)
	api.PUT("/page/postal-code", page.SetPostalCode)
	api.POST("/page/shipping", page.LookupShipping)
	api.POST("/page/cart", page.StageCart)
	api.POST("/page/wishlist", page.StageWishlist)
	api.GET("/confirmations/pending", confirm.GetPending)
	api.POST("/confirmations/:id/confirm", confirm.Confirm)
	api.POST("/confirmations/:id/cancel", confirm.Cancel)
	api.GET("/cart", cartH.GetCart)
	api.PATCH("/cart/items", cartH.UpdateQuantity)
	api.DELETE("/cart/items", cartH.RemoveItem)
	api.DELETE("/cart", cartH.Clear)
	api.PUT("/cart/drawer", cartH.SetDrawer)
	api.GET("/wishlist", wish.GetWishlist)
	api.DELETE("/wishlist/:product_id", wish.Remove)
	api.DELETE("/wishlist", wish.Clear)
	api.POST("/wishlist/:product_id/cart", wish.MoveToCart)
	api.GET("/header", header.GetHeader)
	return r
}

// do sends a JSON request and decodes the envelope into T
func do[T any](t *testing.T, r http.Handler, method, path string, body any) (int, APIResponse[T]) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// selectVariant picks a color and size through the API
func selectVariant(t *testing.T, r http.Handler, color, size string) {
	t.Helper()
	code, _ := do[map[string]any](t, r, http.MethodPut, "/api/v1/page/color", gin.H{"color": color})
	require.Equal(t, http.StatusOK, code)
	code, _ = do[map[string]any](t, r, http.MethodPut, "/api/v1/page/size", gin.H{"size": size})
	require.Equal(t, http.StatusOK, code)
}
