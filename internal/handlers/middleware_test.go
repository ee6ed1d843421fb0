package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algoforge.net/internal/adapter/crypto"
	"gitlab.com/algoforge.net/internal/config"
)

func newTestMiddleware() (*MiddlewareProvider, string) {
	jwtService := crypto.NewJWTService(&config.JwtConfig{Secret: "test-secret"})
	token, _ := jwtService.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Alg(), map[string]interface{}{
		"sub":      "user-42",
		"username": "alice",
	})
	return New(jwtService), token
}

func TestJWTMiddlewareInjectsUserID(t *testing.T) {
	middleware, token := newTestMiddleware()

	var gotUserID string
	handler := middleware.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFrom(r.Context())
		require.True(t, ok)
		gotUserID = userID
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", gotUserID)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	middleware, _ := newTestMiddleware()

	handler := middleware.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsBadToken(t *testing.T) {
	middleware, _ := newTestMiddleware()

	handler := middleware.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	middleware, _ := newTestMiddleware()

	otherService := crypto.NewJWTService(&config.JwtConfig{Secret: "other-secret"})
	forged, err := otherService.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Alg(), map[string]interface{}{
		"sub": "user-42",
	})
	require.NoError(t, err)

	handler := middleware.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
