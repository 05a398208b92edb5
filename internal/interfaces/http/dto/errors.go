package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Request error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeInvalidState    = "ERR_INVALID_STATE"
)

// Storefront error codes
const (
	// ErrCodePostalCodeInvalid is used when the postal code does not have 8 digits
	ErrCodePostalCodeInvalid = "ERR_POSTAL_CODE_INVALID"
	// ErrCodePostalCodeNotFound is used when the address service does not know the code
	ErrCodePostalCodeNotFound = "ERR_POSTAL_CODE_NOT_FOUND"
	// ErrCodeAddressLookupFailed is used when the address service could not be reached
	ErrCodeAddressLookupFailed = "ERR_ADDRESS_LOOKUP_FAILED"
	// ErrCodeStaleLookup is used when the postal code changed while it was being looked up
	ErrCodeStaleLookup          = "ERR_STALE_LOOKUP"
	ErrCodeSelectionIncomplete  = "ERR_SELECTION_INCOMPLETE"
	ErrCodeColorRequired        = "ERR_COLOR_REQUIRED"
	ErrCodeInvalidSelection     = "ERR_INVALID_SELECTION"
	ErrCodeNoPendingAction      = "ERR_NO_PENDING_ACTION"
	ErrCodeInvalidCartItem      = "ERR_INVALID_CART_ITEM"
	ErrCodeInvalidWishlistEntry = "ERR_INVALID_WISHLIST_ITEM"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,

	ErrCodePostalCodeInvalid:    http.StatusBadRequest,
	ErrCodePostalCodeNotFound:   http.StatusNotFound,
	ErrCodeAddressLookupFailed:  http.StatusBadGateway,
	ErrCodeStaleLookup:          http.StatusConflict,
	ErrCodeSelectionIncomplete:  http.StatusUnprocessableEntity,
	ErrCodeColorRequired:        http.StatusUnprocessableEntity,
	ErrCodeInvalidSelection:     http.StatusUnprocessableEntity,
	ErrCodeNoPendingAction:      http.StatusNotFound,
	ErrCodeInvalidCartItem:      http.StatusBadRequest,
	ErrCodeInvalidWishlistEntry: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"INVALID_POSTAL_CODE":   ErrCodePostalCodeInvalid,
	"POSTAL_CODE_NOT_FOUND": ErrCodePostalCodeNotFound,
	"ADDRESS_LOOKUP_FAILED": ErrCodeAddressLookupFailed,
	"STALE_LOOKUP":          ErrCodeStaleLookup,
	"SELECTION_INCOMPLETE":  ErrCodeSelectionIncomplete,
	"COLOR_REQUIRED":        ErrCodeColorRequired,
	"INVALID_SELECTION":     ErrCodeInvalidSelection,
	"NO_PENDING_ACTION":     ErrCodeNoPendingAction,
	"INVALID_CART_ITEM":     ErrCodeInvalidCartItem,
	"INVALID_QUANTITY":      ErrCodeInvalidCartItem,
	"INVALID_PRICE":         ErrCodeInvalidCartItem,
	"INVALID_WISHLIST_ITEM": ErrCodeInvalidWishlistEntry,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown ones, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
