package api

import (
	"net/http"
	"strings"

	"github.com/example/storefront/internal/catalog"
)

func (h *Handlers) GetSellerShop(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.SellerShop(r.Context())
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) CreateSellerShop(w http.ResponseWriter, r *http.Request) {
	var shop catalog.Shop
	if !decodeBody(w, r, &shop) {
		return
	}
	env, err := h.gw.CreateSellerShop(r.Context(), shop)
	respond(w, h, env, err, http.StatusCreated)
}

func (h *Handlers) UpdateSellerShop(w http.ResponseWriter, r *http.Request) {
	var shop catalog.Shop
	if !decodeBody(w, r, &shop) {
		return
	}
	env, err := h.gw.UpdateSellerShop(r.Context(), shop)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) GetSellerProducts(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.SellerProducts(r.Context())
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) AddSellerProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if !decodeBody(w, r, &p) {
		return
	}
	env, err := h.gw.AddSellerProduct(r.Context(), p)
	respond(w, h, env, err, http.StatusCreated)
}

// UpdateSellerProduct takes the product ID from the path; an ID in the body
// is ignored.
func (h *Handlers) UpdateSellerProduct(w http.ResponseWriter, r *http.Request, prefix string) {
	var p catalog.Product
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = productIDFromPath(r.URL.Path, prefix)
	env, err := h.gw.UpdateSellerProduct(r.Context(), p)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) DeleteSellerProduct(w http.ResponseWriter, r *http.Request, prefix string) {
	env, err := h.gw.DeleteSellerProduct(r.Context(), productIDFromPath(r.URL.Path, prefix))
	respond(w, h, env, err, http.StatusOK)
}

func productIDFromPath(path, prefix string) string {
	return strings.Trim(extractPathParam(path, prefix), "/")
}
