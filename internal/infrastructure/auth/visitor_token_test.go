package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
)

func newTestService() *VisitorTokenService {
	return NewVisitorTokenService(config.VisitorConfig{
		Secret:   "test-secret-key-at-least-32-chars",
		Issuer:   "montink-store",
		TokenTTL: 24 * time.Hour,
	})
}

func TestVisitorTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestService()

	issued, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, issued.VisitorID)
	assert.NotEmpty(t, issued.Token)

	claims, err := svc.Validate(issued.Token)
	require.NoError(t, err)

	id, err := claims.VisitorID()
	require.NoError(t, err)
	assert.Equal(t, issued.VisitorID, id)
	assert.Equal(t, "montink-store", claims.Issuer)
}

func TestVisitorTokenService_IssueFor_KeepsVisitor(t *testing.T) {
	svc := newTestService()
	visitor := uuid.New()

	first, err := svc.IssueFor(visitor)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	second, err := svc.IssueFor(visitor)
	require.NoError(t, err)

	assert.Equal(t, first.VisitorID, second.VisitorID)
	assert.True(t, second.ExpiresAt.After(first.ExpiresAt))
}

func TestVisitorTokenService_Validate_Errors(t *testing.T) {
	svc := newTestService()
	issued, err := svc.Issue()
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		late := newTestService()
		late.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

		_, err := late.Validate(issued.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVisitorTokenService(config.VisitorConfig{
			Secret:   "another-secret-key-at-least-32-chars",
			Issuer:   "montink-store",
			TokenTTL: time.Hour,
		})

		_, err := other.Validate(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewVisitorTokenService(config.VisitorConfig{
			Secret:   "test-secret-key-at-least-32-chars",
			Issuer:   "someone-else",
			TokenTTL: time.Hour,
		})

		_, err := other.Validate(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &VisitorClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), Issuer: "montink-store"},
			TokenType:        tokenTypeVisitor,
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong token type", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &VisitorClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				Issuer:    "montink-store",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TokenType: "access",
		})
		signed, err := token.SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("subject not a uuid", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &VisitorClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "visitor-1",
				Issuer:    "montink-store",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TokenType: tokenTypeVisitor,
		})
		signed, err := token.SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrMissingVisitorID)
	})
}
