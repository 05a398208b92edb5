// Package auth issues and verifies the signed token that identifies an anonymous storefront visitor.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
)

const tokenTypeVisitor = "visitor"

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingVisitorID = errors.New("missing visitor id in claims")
)

// VisitorClaims are the claims of a visitor token; the subject is the visitor id
type VisitorClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// VisitorID parses the subject as a UUID
func (c *VisitorClaims) VisitorID() (uuid.UUID, error) {
	if c.Subject == "" {
		return uuid.Nil, ErrMissingVisitorID
	}
	return uuid.Parse(c.Subject)
}

// IssuedToken is a signed visitor token and its expiry
type IssuedToken struct {
	VisitorID uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// VisitorTokenService signs and validates HS256 visitor tokens
type VisitorTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewVisitorTokenService creates a new visitor token service
func NewVisitorTokenService(cfg config.VisitorConfig) *VisitorTokenService {
	return &VisitorTokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens
func (s *VisitorTokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a token for a new random visitor id
func (s *VisitorTokenService) Issue() (*IssuedToken, error) {
	return s.IssueFor(uuid.New())
}

// IssueFor signs a fresh token for an existing visitor, extending its lifetime
func (s *VisitorTokenService) IssueFor(visitorID uuid.UUID) (*IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   visitorID.String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: tokenTypeVisitor,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{VisitorID: visitorID, Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies a token and returns its claims
func (s *VisitorTokenService) Validate(tokenString string) (*VisitorClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &VisitorClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*VisitorClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeVisitor {
		return nil, ErrInvalidClaims
	}
	if _, err := claims.VisitorID(); err != nil {
		return nil, ErrMissingVisitorID
	}
	return claims, nil
}
