package api

import (
	"net/http"
	"strings"

	"github.com/example/storefront/internal/catalog"
)

// AdminListShops lists every shop, optionally filtered by ?status=.
func (h *Handlers) AdminListShops(w http.ResponseWriter, r *http.Request) {
	status := catalog.ShopStatus(r.URL.Query().Get("status"))
	env, err := h.gw.AdminShops(r.Context(), status)
	respond(w, h, env, err, http.StatusOK)
}

// SetShopStatus handles PUT /admin/shops/{id}/status.
func (h *Handlers) SetShopStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/admin/shops/"), "/status")

	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	env, err := h.gw.SetShopStatus(r.Context(), id, req.Status)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.AdminStats(r.Context())
	respond(w, h, env, err, http.StatusOK)
}
