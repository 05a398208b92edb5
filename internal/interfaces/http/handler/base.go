package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/dto"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getVisitorID returns the visitor the Visitor middleware resolved
func getVisitorID(c *gin.Context) (string, error) {
	id := middleware.GetVisitorID(c)
	if id == "" {
		return "", errors.New("visitor ID not found in context")
	}
	return id, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// visitor resolves the visitor id or writes a 500. The Visitor middleware
// always sets it, so a miss is a wiring error.
func (h *BaseHandler) visitor(c *gin.Context) (string, bool) {
	id, err := getVisitorID(c)
	if err != nil {
		h.InternalError(c, "Visitor session unavailable")
		return "", false
	}
	return id, true
}

// bind decodes the JSON body into req, answering 400 with field details on failure
func (h *BaseHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// HandleError is a generic error handler that handles both domain and standard errors
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	h.HandleErrorWithData(c, err, nil)
}

// HandleErrorWithData answers with the error and, when data is not nil, the
// state the page should render alongside it. Errors the visitor can act on
// carry their notice.
func (h *BaseHandler) HandleErrorWithData(c *gin.Context, err error, data any) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal,
			"An unexpected error occurred",
			requestID,
		))
		return
	}

	code := dto.NormalizeErrorCode(domainErr.Code)
	resp := dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID)
	if notice, ok := storefront.NoticeForError(err); ok {
		resp = resp.WithNotice(notice, data)
	} else if data != nil {
		resp.Data = data
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}
