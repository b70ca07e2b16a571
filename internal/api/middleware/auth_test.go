package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/storefront/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestExtractToken_Header(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	assert.Equal(t, "abc.def.ghi", ExtractToken(req))
}

func TestExtractToken_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

	assert.Equal(t, "cookie-token", ExtractToken(req))
}

func TestExtractToken_HeaderWinsOverCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

	assert.Equal(t, "header-token", ExtractToken(req))
}

func TestExtractToken_NonBearerScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	assert.Empty(t, ExtractToken(req))
}

func TestCredential_PutsTokenOnContext(t *testing.T) {
	var captured string
	handler := Credential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = auth.CredentialFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/shops", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "some-token", captured)
}

func TestCredential_NoTokenPassesThrough(t *testing.T) {
	captured := "unset"
	handler := Credential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = auth.CredentialFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, captured)
}

func TestRequireCredential_MissingToken(t *testing.T) {
	called := false
	handler := RequireCredential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seller/shop", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), `"status":false`)
}

func TestRequireCredential_WithToken(t *testing.T) {
	handler := RequireCredential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/seller/shop", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
