package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/search"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every HTTP call made by Client.
const DefaultTimeout = 10 * time.Second

// Endpoints are the base URLs of the backend capabilities. Empty entries
// fall back to API.
type Endpoints struct {
	API      string
	User     string
	Customer string
	Seller   string
	Admin    string
}

func (e Endpoints) withDefaults() Endpoints {
	e.API = strings.TrimRight(e.API, "/")
	fill := func(v string) string {
		if v == "" {
			return e.API
		}
		return strings.TrimRight(v, "/")
	}
	e.User = fill(e.User)
	e.Customer = fill(e.Customer)
	e.Seller = fill(e.Seller)
	e.Admin = fill(e.Admin)
	return e
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying client. When hc has no timeout the
// Client uses a copy of it with DefaultTimeout; hc itself is not modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithClientLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// Client talks to the storefront HTTP services.
type Client struct {
	endpoints Endpoints
	session   *SessionGuard
	http      *http.Client
	logger    *zap.Logger
}

var _ Gateway = (*Client)(nil)

func NewClient(endpoints Endpoints, session *SessionGuard, opts ...ClientOption) *Client {
	c := &Client{
		endpoints: endpoints.withDefaults(),
		session:   session,
		http:      &http.Client{Timeout: DefaultTimeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Timeout == 0 {
		hc := *c.http
		hc.Timeout = DefaultTimeout
		c.http = &hc
	}
	return c
}

type request struct {
	base   string
	method string
	path   string
	query  url.Values
	body   any
}

// call performs one request and decodes the envelope. 401 and 403 become
// errors; 400 and 404 become status:false envelopes; anything else outside
// 2xx is a transport failure.
func call[T any](ctx context.Context, c *Client, req request) (Envelope[T], error) {
	var env Envelope[T]

	target := req.base + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return env, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return env, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// A credential on the context (the API proxying a caller) wins over the
	// session and is never cleared by a 401.
	token := auth.CredentialFromContext(ctx)
	fromSession := false
	if token == "" && c.session != nil {
		if token, err = c.session.Token(); err != nil {
			return env, fmt.Errorf("read token: %w", err)
		}
		fromSession = true
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", req.method), zap.String("url", target), zap.Error(err))
		if isTimeout(err) {
			return env, fmt.Errorf("%w: %s %s", ErrTimeout, req.method, req.path)
		}
		return env, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.method, req.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", req.method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if fromSession {
			c.session.Unauthorized(token)
		}
		return env, fmt.Errorf("%w: %s %s", ErrUnauthorized, req.method, req.path)
	case resp.StatusCode == http.StatusForbidden:
		return env, fmt.Errorf("%w: %s %s", ErrForbidden, req.method, req.path)
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		code := CodeNotFound
		if resp.StatusCode == http.StatusBadRequest {
			code = CodeValidation
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Status {
			return Fail[T](code, http.StatusText(resp.StatusCode)), nil
		}
		if env.Code == "" {
			env.Code = code
		}
		return env, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return env, fmt.Errorf("%w: %s %s: status %d", ErrTransport, req.method, req.path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if isTimeout(err) {
			return env, fmt.Errorf("%w: %s %s", ErrTimeout, req.method, req.path)
		}
		return env, fmt.Errorf("%w: decode %s %s: %v", ErrTransport, req.method, req.path, err)
	}
	return env, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ==== catalog reads ====

func (c *Client) ListShops(ctx context.Context, q ShopQuery) (Envelope[[]catalog.Shop], error) {
	query := url.Values{}
	if q.Location != nil {
		query.Set("latitude", formatFloat(q.Location.Lat))
		query.Set("longitude", formatFloat(q.Location.Lng))
	}
	path := "/shops"
	if q.Nearby {
		path = "/shops/nearby"
		if q.RadiusKm != 0 {
			query.Set("radius", formatFloat(q.RadiusKm))
		}
	}
	return call[[]catalog.Shop](ctx, c, request{base: c.endpoints.Customer, method: http.MethodGet, path: path, query: query})
}

func (c *Client) SearchShops(ctx context.Context, q string, loc *geo.Point) (Envelope[[]catalog.Shop], error) {
	query := url.Values{"query": {q}}
	if loc != nil {
		query.Set("latitude", formatFloat(loc.Lat))
		query.Set("longitude", formatFloat(loc.Lng))
	}
	return call[[]catalog.Shop](ctx, c, request{base: c.endpoints.Customer, method: http.MethodGet, path: "/shops/search", query: query})
}

func (c *Client) GetShop(ctx context.Context, id string) (Envelope[catalog.Shop], error) {
	return call[catalog.Shop](ctx, c, request{base: c.endpoints.Customer, method: http.MethodGet, path: "/shops/" + url.PathEscape(id)})
}

func (c *Client) ShopProducts(ctx context.Context, shopID string) (Envelope[[]catalog.Product], error) {
	return call[[]catalog.Product](ctx, c, request{base: c.endpoints.Customer, method: http.MethodGet, path: "/shops/" + url.PathEscape(shopID) + "/products"})
}

func (c *Client) GetProduct(ctx context.Context, id string) (Envelope[catalog.Product], error) {
	return call[catalog.Product](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/products/" + url.PathEscape(id)})
}

func (c *Client) ListProducts(ctx context.Context) (Envelope[[]catalog.Product], error) {
	return call[[]catalog.Product](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/products"})
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) (Envelope[[]catalog.Product], error) {
	query := url.Values{"category": {category}}
	return call[[]catalog.Product](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/products", query: query})
}

func (c *Client) Search(ctx context.Context, p search.Params) (Envelope[search.Result], error) {
	query := url.Values{}
	if p.Query != "" {
		query.Set("q", p.Query)
	}
	if p.Category != "" {
		query.Set("category", p.Category)
	}
	if p.Type != "" {
		query.Set("type", string(p.Type))
	}
	return call[search.Result](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/search", query: query})
}

func (c *Client) Categories(ctx context.Context) (Envelope[[]string], error) {
	return call[[]string](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/catalog/categories"})
}

// ==== session ====

// Login exchanges credentials for a bearer token and stores it.
func (c *Client) Login(ctx context.Context, req LoginRequest) (Envelope[LoginResponse], error) {
	env, err := call[LoginResponse](ctx, c, request{base: c.endpoints.User, method: http.MethodPost, path: "/auth/login", body: req})
	if err != nil || !env.Status {
		return env, err
	}
	if c.session != nil {
		if err := c.session.SetToken(env.Data.AccessToken); err != nil {
			return env, fmt.Errorf("store token: %w", err)
		}
	}
	return env, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (Envelope[catalog.User], error) {
	return call[catalog.User](ctx, c, request{base: c.endpoints.User, method: http.MethodPost, path: "/auth/register", body: req})
}

func (c *Client) VerifyToken(ctx context.Context) (Envelope[TokenInfo], error) {
	return call[TokenInfo](ctx, c, request{base: c.endpoints.User, method: http.MethodGet, path: "/auth/verify-token"})
}

// Logout drops the stored token. No request is made.
func (c *Client) Logout() error {
	if c.session == nil {
		return nil
	}
	return c.session.Clear()
}

func (c *Client) CurrentUser(ctx context.Context) (Envelope[catalog.User], error) {
	return call[catalog.User](ctx, c, request{base: c.endpoints.API, method: http.MethodGet, path: "/users/me"})
}

// ==== seller ====

func (c *Client) SellerShop(ctx context.Context) (Envelope[catalog.Shop], error) {
	return call[catalog.Shop](ctx, c, request{base: c.endpoints.Seller, method: http.MethodGet, path: "/seller/shop"})
}

func (c *Client) CreateSellerShop(ctx context.Context, shop catalog.Shop) (Envelope[catalog.Shop], error) {
	return call[catalog.Shop](ctx, c, request{base: c.endpoints.Seller, method: http.MethodPost, path: "/seller/shop", body: shop})
}

func (c *Client) UpdateSellerShop(ctx context.Context, shop catalog.Shop) (Envelope[catalog.Shop], error) {
	return call[catalog.Shop](ctx, c, request{base: c.endpoints.Seller, method: http.MethodPut, path: "/seller/shop", body: shop})
}

func (c *Client) SellerProducts(ctx context.Context) (Envelope[[]catalog.Product], error) {
	return call[[]catalog.Product](ctx, c, request{base: c.endpoints.Seller, method: http.MethodGet, path: "/seller/products"})
}

func (c *Client) AddSellerProduct(ctx context.Context, p catalog.Product) (Envelope[catalog.Product], error) {
	return call[catalog.Product](ctx, c, request{base: c.endpoints.Seller, method: http.MethodPost, path: "/seller/products", body: p})
}

func (c *Client) UpdateSellerProduct(ctx context.Context, p catalog.Product) (Envelope[catalog.Product], error) {
	return call[catalog.Product](ctx, c, request{base: c.endpoints.Seller, method: http.MethodPut, path: "/seller/products/" + url.PathEscape(p.ID), body: p})
}

func (c *Client) DeleteSellerProduct(ctx context.Context, id string) (Envelope[catalog.Product], error) {
	return call[catalog.Product](ctx, c, request{base: c.endpoints.Seller, method: http.MethodDelete, path: "/seller/products/" + url.PathEscape(id)})
}

// ==== admin ====

func (c *Client) AdminShops(ctx context.Context, status catalog.ShopStatus) (Envelope[[]catalog.Shop], error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	return call[[]catalog.Shop](ctx, c, request{base: c.endpoints.Admin, method: http.MethodGet, path: "/admin/shops", query: query})
}

func (c *Client) SetShopStatus(ctx context.Context, id string, status catalog.ShopStatus) (Envelope[catalog.Shop], error) {
	body := map[string]catalog.ShopStatus{"status": status}
	return call[catalog.Shop](ctx, c, request{base: c.endpoints.Admin, method: http.MethodPut, path: "/admin/shops/" + url.PathEscape(id) + "/status", body: body})
}

func (c *Client) AdminStats(ctx context.Context) (Envelope[catalog.Stats], error) {
	return call[catalog.Stats](ctx, c, request{base: c.endpoints.Admin, method: http.MethodGet, path: "/admin/stats"})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
