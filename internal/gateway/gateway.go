// Package gateway is the uniform API every storefront caller goes through.
// Mock serves it from the in-process catalog, Client from the HTTP services;
// both return the same envelopes and the same errors.
package gateway

import (
	"context"
	"time"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/search"
)

// ShopQuery selects shops for the listing pages. With a Location the result
// is annotated and sorted by distance; Nearby additionally drops shops
// further than RadiusKm (geo.DefaultRadiusKm when zero).
type ShopQuery struct {
	Location *geo.Point
	Nearby   bool
	RadiusKm float64
}

// LoginRequest carries either an identity-provider token or a phone number.
type LoginRequest struct {
	FirebaseToken string `json:"firebase_token,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Role        catalog.Role `json:"role"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        catalog.User `json:"user"`
}

// RegisterRequest signs up a new customer.
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// TokenInfo describes the holder of a verified credential.
type TokenInfo struct {
	UserID string       `json:"user_id"`
	Role   catalog.Role `json:"role"`
	Name   string       `json:"name,omitempty"`
	Email  string       `json:"email,omitempty"`
}

// Gateway is implemented by Mock and Client. NotFound and validation
// failures come back as status:false envelopes with a nil error;
// ErrUnauthorized, ErrForbidden, ErrTransport and ErrTimeout come back as
// errors.
type Gateway interface {
	ListShops(ctx context.Context, q ShopQuery) (Envelope[[]catalog.Shop], error)
	SearchShops(ctx context.Context, query string, loc *geo.Point) (Envelope[[]catalog.Shop], error)
	GetShop(ctx context.Context, id string) (Envelope[catalog.Shop], error)
	ShopProducts(ctx context.Context, shopID string) (Envelope[[]catalog.Product], error)
	GetProduct(ctx context.Context, id string) (Envelope[catalog.Product], error)
	ListProducts(ctx context.Context) (Envelope[[]catalog.Product], error)
	ProductsByCategory(ctx context.Context, category string) (Envelope[[]catalog.Product], error)
	Search(ctx context.Context, p search.Params) (Envelope[search.Result], error)
	Categories(ctx context.Context) (Envelope[[]string], error)

	Login(ctx context.Context, req LoginRequest) (Envelope[LoginResponse], error)
	Register(ctx context.Context, req RegisterRequest) (Envelope[catalog.User], error)
	VerifyToken(ctx context.Context) (Envelope[TokenInfo], error)
	CurrentUser(ctx context.Context) (Envelope[catalog.User], error)

	SellerShop(ctx context.Context) (Envelope[catalog.Shop], error)
	CreateSellerShop(ctx context.Context, shop catalog.Shop) (Envelope[catalog.Shop], error)
	UpdateSellerShop(ctx context.Context, shop catalog.Shop) (Envelope[catalog.Shop], error)
	SellerProducts(ctx context.Context) (Envelope[[]catalog.Product], error)
	AddSellerProduct(ctx context.Context, p catalog.Product) (Envelope[catalog.Product], error)
	UpdateSellerProduct(ctx context.Context, p catalog.Product) (Envelope[catalog.Product], error)
	DeleteSellerProduct(ctx context.Context, id string) (Envelope[catalog.Product], error)

	AdminShops(ctx context.Context, status catalog.ShopStatus) (Envelope[[]catalog.Shop], error)
	SetShopStatus(ctx context.Context, id string, status catalog.ShopStatus) (Envelope[catalog.Shop], error)
	AdminStats(ctx context.Context) (Envelope[catalog.Stats], error)
}

// Publisher receives catalog events after local writes.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
