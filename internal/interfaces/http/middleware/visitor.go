package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/auth"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/dto"
)

// VisitorConfig holds configuration for the visitor middleware
type VisitorConfig struct {
	Tokens     *auth.VisitorTokenService
	CookieName string
	Secure     bool
	SameSite   http.SameSite
	Logger     *zap.Logger
}

// ParseSameSite maps the configured SameSite name to its cookie mode
func ParseSameSite(name string) http.SameSite {
	switch strings.ToLower(name) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Visitor identifies the anonymous visitor behind a request by the signed
// token in its cookie. Requests without a valid token get a new visitor id.
// The token is reissued once less than half of its lifetime is left.
func Visitor(cfg VisitorConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		var visitor uuid.UUID
		needsCookie := true

		if raw, err := c.Cookie(cfg.CookieName); err == nil && raw != "" {
			claims, err := cfg.Tokens.Validate(raw)
			if err == nil {
				visitor, _ = claims.VisitorID()
				needsCookie = time.Until(claims.ExpiresAt.Time) < cfg.Tokens.TTL()/2
			} else {
				logger.WithLogger(c.Request.Context(), log).Debug("replacing visitor token", zap.Error(err))
			}
		}

		var (
			issued *auth.IssuedToken
			err    error
		)
		if needsCookie {
			if visitor == uuid.Nil {
				issued, err = cfg.Tokens.Issue()
			} else {
				issued, err = cfg.Tokens.IssueFor(visitor)
			}
			if err != nil {
				logger.WithLogger(c.Request.Context(), log).Error("failed to issue visitor token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
				return
			}
			visitor = issued.VisitorID
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    issued.Token,
				Path:     "/",
				Expires:  issued.ExpiresAt,
				MaxAge:   int(time.Until(issued.ExpiresAt).Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: cfg.SameSite,
			})
		}

		visitorID := visitor.String()
		c.Set(logger.GinVisitorIDKey, visitorID)
		ctx, _ := logger.WithVisitorID(c.Request.Context(), logger.FromContextOr(c.Request.Context(), log), visitorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetVisitorID returns the visitor id set by Visitor
func GetVisitorID(c *gin.Context) string {
	return c.GetString(logger.GinVisitorIDKey)
}
