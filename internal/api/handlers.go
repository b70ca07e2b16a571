package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/gateway"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/search"
	"go.uber.org/zap"
)

// Handlers serves the storefront HTTP surface on top of a gateway.
type Handlers struct {
	gw     gateway.Gateway
	logger *zap.Logger
}

func NewHandlers(gw gateway.Gateway, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{gw: gw, logger: logger}
}

// Shop Handlers

func (h *Handlers) ListShops(w http.ResponseWriter, r *http.Request) {
	loc, ok := parseLocation(w, r)
	if !ok {
		return
	}
	env, err := h.gw.ListShops(r.Context(), gateway.ShopQuery{Location: loc})
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) NearbyShops(w http.ResponseWriter, r *http.Request) {
	loc, ok := parseLocation(w, r)
	if !ok {
		return
	}
	q := gateway.ShopQuery{Location: loc, Nearby: true}
	if v := r.URL.Query().Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(radius) || math.IsInf(radius, 0) {
			respondInvalid(w, "radius must be a number")
			return
		}
		q.RadiusKm = radius
	}
	env, err := h.gw.ListShops(r.Context(), q)
	respond(w, h, env, err, http.StatusOK)
}

// SearchShops handles GET /shops/search?query=&latitude=&longitude=.
func (h *Handlers) SearchShops(w http.ResponseWriter, r *http.Request) {
	loc, ok := parseLocation(w, r)
	if !ok {
		return
	}
	env, err := h.gw.SearchShops(r.Context(), r.URL.Query().Get("query"), loc)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) GetShop(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/shops/")
	env, err := h.gw.GetShop(r.Context(), id)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) GetShopProducts(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/shops/"), "/products")
	env, err := h.gw.ShopProducts(r.Context(), id)
	respond(w, h, env, err, http.StatusOK)
}

// Product Handlers

// GetProducts lists products of one category, or every visible product when
// no category is given.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		env, err := h.gw.ListProducts(r.Context())
		respond(w, h, env, err, http.StatusOK)
		return
	}
	env, err := h.gw.ProductsByCategory(r.Context(), category)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	env, err := h.gw.GetProduct(r.Context(), id)
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	env, err := h.gw.Search(r.Context(), search.Params{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Type:     search.Type(q.Get("type")),
	})
	respond(w, h, env, err, http.StatusOK)
}

// SearchProducts serves the product-only search paths: /products/search
// (?query=) and the catalog service's /items (?search=). Both take an
// optional exact category.
func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request, queryParam string) {
	q := r.URL.Query()
	env, err := h.gw.Search(r.Context(), search.Params{
		Query:    q.Get(queryParam),
		Category: q.Get("category"),
		Type:     search.TypeProducts,
	})
	if err == nil && env.Status {
		respond(w, h, gateway.OK(env.Data.Products), nil, http.StatusOK)
		return
	}
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	env, err := h.gw.Categories(r.Context())
	respond(w, h, env, err, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, gateway.OK("ok"))
}

// respond maps a gateway result onto HTTP: handled failures keep their
// envelope with 404 or 400, errors become 401, 403, 502, 504 or 500.
func respond[T any](w http.ResponseWriter, h *Handlers, env gateway.Envelope[T], err error, okStatus int) {
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("gateway operation failed", zap.Error(err))
		}
		respondJSON(w, status, gateway.Envelope[any]{Message: message})
		return
	}
	if !env.Status {
		status := http.StatusNotFound
		if env.Code == gateway.CodeValidation {
			status = http.StatusBadRequest
		}
		respondJSON(w, status, env)
		return
	}
	respondJSON(w, okStatus, env)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, gateway.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, gateway.ErrTimeout):
		return http.StatusGatewayTimeout, "upstream timed out"
	case errors.Is(err, gateway.ErrTransport):
		return http.StatusBadGateway, "upstream unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondInvalid(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, gateway.Invalid[any](message))
}

// respondJSON encodes before writing the header so an unencodable value
// still produces an envelope.
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"status":false,"data":null,"message":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// parseLocation reads latitude/longitude; both or neither must be present.
// NaN and infinities are rejected along with out-of-range values.
func parseLocation(w http.ResponseWriter, r *http.Request) (*geo.Point, bool) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("latitude"), q.Get("longitude")
	if latStr == "" && lngStr == "" {
		return nil, true
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	p := geo.Point{Lat: lat, Lng: lng}
	if err1 != nil || err2 != nil || !p.Valid() {
		respondInvalid(w, "latitude and longitude must be valid coordinates")
		return nil, false
	}
	return &p, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondInvalid(w, "invalid request body")
		return false
	}
	return true
}

// statusRequest is the body of an admin status change.
type statusRequest struct {
	Status catalog.ShopStatus `json:"status"`
}
