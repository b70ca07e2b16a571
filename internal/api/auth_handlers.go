package api

import (
	"net/http"

	"github.com/example/storefront/internal/gateway"
)

// Login exchanges a firebase_token or phone for an access token. The token
// is also set as an HttpOnly cookie for browser clients.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req gateway.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	env, err := h.gw.Login(r.Context(), req)
	if err == nil && env.Status {
		http.SetCookie(w, &http.Cookie{
			Name:     "access_token",
			Value:    env.Data.AccessToken,
			Path:     "/",
			Expires:  env.Data.ExpiresAt,
			MaxAge:   int(env.Data.ExpiresIn),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	respond(w, h, env, err, http.StatusOK)
}

// Logout clears the cookie. Bearer clients simply drop their token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, gateway.Envelope[any]{Status: true, Message: "Logged out successfully"})
}

// Register signs up a customer. The caller logs in separately.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req gateway.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	env, err := h.gw.Register(r.Context(), req)
	respond(w, h, env, err, http.StatusCreated)
}

func (h *Handlers) VerifyToken(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.VerifyToken(r.Context())
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.CurrentUser(r.Context())
	respond(w, h, env, err, http.StatusOK)
}
