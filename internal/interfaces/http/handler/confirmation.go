package handler

import (
	"github.com/gin-gonic/gin"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
)

// ConfirmationHandler answers the confirmation dialog
type ConfirmationHandler struct {
	BaseHandler
	confirm *storefrontapp.ConfirmationService
}

// NewConfirmationHandler creates a new ConfirmationHandler
func NewConfirmationHandler(confirm *storefrontapp.ConfirmationService) *ConfirmationHandler {
	return &ConfirmationHandler{confirm: confirm}
}

// GetPending returns the action waiting for an answer
// GET /api/v1/confirmations/pending
func (h *ConfirmationHandler) GetPending(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	pending, err := h.confirm.Pending(c.Request.Context(), visitorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pending)
}

// Confirm commits the pending action
// POST /api/v1/confirmations/:id/confirm
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	result, err := h.confirm.Confirm(c.Request.Context(), visitorID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel discards the pending action
// POST /api/v1/confirmations/:id/cancel
func (h *ConfirmationHandler) Cancel(c *gin.Context) {
	visitorID, ok := h.visitor(c)
	if !ok {
		return
	}
	if err := h.confirm.Cancel(c.Request.Context(), visitorID, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"cancelled": true})
}
