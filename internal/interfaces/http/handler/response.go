package handler

import (
	appdto "github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/dto"
)

// APIResponse is the typed form of the response envelope, used by clients
// and tests to decode payloads
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// Typed envelopes of the storefront endpoints
type (
	PageResponse          = APIResponse[appdto.PageView]
	ProductResponse       = APIResponse[appdto.ProductView]
	CartResponse          = APIResponse[appdto.CartView]
	DrawerResponse        = APIResponse[appdto.DrawerView]
	WishlistResponse      = APIResponse[appdto.WishlistView]
	HeaderResponse        = APIResponse[appdto.HeaderView]
	PendingResponse       = APIResponse[appdto.PendingView]
	ConfirmResultResponse = APIResponse[appdto.ConfirmResult]
	HealthCheckResponse   = APIResponse[HealthResponse]
)
