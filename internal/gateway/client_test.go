package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/gateway"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	client *gateway.Client
	guard  *gateway.SessionGuard
	reauth *atomic.Int32
}

// newTestServer serves the HTTP API over a fast mock gateway.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	seed := catalog.DefaultSeed()
	seed.Users = append(seed.Users, catalog.User{ID: "4", Phone: "4444444444", Name: "New Seller", Role: catalog.RoleSeller, IsActive: true})
	store, err := catalog.NewStore(seed)
	require.NoError(t, err)

	jwtService := auth.NewJWTService("test-secret-key-for-client-tests", time.Hour)
	mock := gateway.NewMock(store, auth.NewGate(jwtService, store), jwtService, gateway.MockConfig{
		Latency: gateway.Latency{Read: time.Millisecond, Search: time.Millisecond, Auth: time.Millisecond, Write: time.Millisecond},
	})

	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{Handlers: api.NewHandlers(mock, nil)}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string, opts ...gateway.ClientOption) *testClient {
	t.Helper()
	var reauth atomic.Int32
	guard := gateway.NewSessionGuard(gateway.NewMemoryTokenStore(), func() { reauth.Add(1) })
	return &testClient{
		client: gateway.NewClient(gateway.Endpoints{API: baseURL}, guard, opts...),
		guard:  guard,
		reauth: &reauth,
	}
}

func login(t *testing.T, c *testClient, phone string) {
	t.Helper()
	res, err := c.client.Login(context.Background(), gateway.LoginRequest{Phone: phone})
	require.NoError(t, err)
	require.True(t, res.Status)
}

// ===== public reads =====

func TestClient_ListShops(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	res, err := c.client.ListShops(context.Background(), gateway.ShopQuery{Location: &geo.Point{Lat: 40.7128, Lng: -74.0060}})

	require.NoError(t, err)
	require.True(t, res.Status)
	require.Len(t, res.Data, 4)
	assert.Equal(t, "1", res.Data[0].ID)
	assert.Equal(t, "0.0 km", res.Data[0].DistanceFormatted)
}

func TestClient_NearbyShops(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	res, err := c.client.ListShops(context.Background(), gateway.ShopQuery{
		Location: &geo.Point{Lat: 40.7128, Lng: -74.0060},
		Nearby:   true,
		RadiusKm: 0.5,
	})

	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "1", res.Data[0].ID)
}

func TestClient_NotFoundIsEnvelope(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	res, err := c.client.GetShop(context.Background(), "3")

	require.NoError(t, err)
	assert.False(t, res.Status)
	assert.Equal(t, gateway.CodeNotFound, res.Code)
	assert.Equal(t, "shop not found", res.Message)
}

func TestClient_ValidationIsEnvelope(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	res, err := c.client.Search(context.Background(), search.Params{Query: "milk", Type: "orders"})

	require.NoError(t, err)
	assert.False(t, res.Status)
	assert.Equal(t, gateway.CodeValidation, res.Code)
}

func TestClient_SearchAndCategories(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	res, err := c.client.Search(ctx, search.Params{Query: "FRESH", Type: search.TypeProducts})
	require.NoError(t, err)
	require.True(t, res.Status)
	assert.Empty(t, res.Data.Shops)
	assert.NotEmpty(t, res.Data.Products)

	byCategory, err := c.client.ProductsByCategory(ctx, "Dairy")
	require.NoError(t, err)
	assert.Len(t, byCategory.Data, 2)

	cats, err := c.client.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats.Data, 10)

	product, err := c.client.GetProduct(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, "Fresh Milk", product.Data.Name)

	products, err := c.client.ShopProducts(ctx, "6")
	require.NoError(t, err)
	assert.Len(t, products.Data, 2)
}

func TestClient_SearchShopsAndProducts(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	shops, err := c.client.SearchShops(ctx, "fresh", &geo.Point{Lat: 40.7831, Lng: -73.9712})
	require.NoError(t, err)
	require.True(t, shops.Status)
	require.Len(t, shops.Data, 3)
	assert.Equal(t, "6", shops.Data[0].ID)
	assert.Equal(t, "0.0 km", shops.Data[0].DistanceFormatted)

	plain, err := c.client.SearchShops(ctx, "dairy", nil)
	require.NoError(t, err)
	require.Len(t, plain.Data, 1)
	assert.Nil(t, plain.Data[0].Distance)

	products, err := c.client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products.Data, 14)
}

func TestClient_LoadProductDetail(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	res, err := gateway.LoadProductDetail(context.Background(), c.client, "10")

	require.NoError(t, err)
	require.True(t, res.Status)
	require.NotNil(t, res.Data.Shop)
	assert.Equal(t, "4", res.Data.Shop.ID)
	assert.Len(t, res.Data.Related, 1)
}

// ===== session =====

func TestClient_LoginStoresToken(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	login(t, c, "1234567890")

	token, err := c.guard.Token()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	me, err := c.client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", me.Data.ID)

	require.NoError(t, c.client.Logout())
	_, err = c.client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)
	assert.Equal(t, int32(0), c.reauth.Load())
}

func TestClient_RegisterThenVerify(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	reg, err := c.client.Register(ctx, gateway.RegisterRequest{Phone: "2222222222", Name: "Ann Buyer"})
	require.NoError(t, err)
	require.True(t, reg.Status)
	assert.Equal(t, catalog.RoleCustomer, reg.Data.Role)

	dup, err := c.client.Register(ctx, gateway.RegisterRequest{Phone: "2222222222", Name: "Again"})
	require.NoError(t, err)
	assert.Equal(t, gateway.CodeValidation, dup.Code)

	login(t, c, "2222222222")
	info, err := c.client.VerifyToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.Data.ID, info.Data.UserID)
	assert.Equal(t, "Ann Buyer", info.Data.Name)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	require.NoError(t, c.guard.SetToken("expired-token"))

	_, err := c.client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)

	_, err = c.client.SellerShop(context.Background())
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)

	token, err := c.guard.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, int32(1), c.reauth.Load())
}

func TestClient_Forbidden(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	login(t, c, "1234567890")

	_, err := c.client.SellerShop(context.Background())

	assert.ErrorIs(t, err, gateway.ErrForbidden)
	token, _ := c.guard.Token()
	assert.NotEmpty(t, token)
}

// ===== seller and admin =====

func TestClient_SellerFlow(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()
	login(t, c, "9876543210")

	shop, err := c.client.SellerShop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", shop.Data.ID)

	added, err := c.client.AddSellerProduct(ctx, catalog.Product{Name: "Charger", Price: 1999, Quantity: 3, InStock: true})
	require.NoError(t, err)
	require.True(t, added.Status)

	added.Data.Price = 1799
	updated, err := c.client.UpdateSellerProduct(ctx, added.Data)
	require.NoError(t, err)
	assert.Equal(t, 1799.0, updated.Data.Price)

	deleted, err := c.client.DeleteSellerProduct(ctx, added.Data.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Status)

	products, err := c.client.SellerProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products.Data, 6)
}

func TestClient_CreateSellerShop(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	login(t, c, "4444444444")

	res, err := c.client.CreateSellerShop(context.Background(), catalog.Shop{Name: "Corner Books", Category: "Books"})

	require.NoError(t, err)
	require.True(t, res.Status)
	assert.Equal(t, catalog.StatusPending, res.Data.Status)

	updated, err := c.client.UpdateSellerShop(context.Background(), catalog.Shop{Name: "Corner Books & Coffee", Category: "Books"})
	require.NoError(t, err)
	assert.Equal(t, res.Data.ID, updated.Data.ID)
}

func TestClient_AdminFlow(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()
	login(t, c, "5555555555")

	pending, err := c.client.AdminShops(ctx, catalog.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending.Data, 2)

	approved, err := c.client.SetShopStatus(ctx, "5", catalog.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusActive, approved.Data.Status)

	stats, err := c.client.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Data.PendingApprovals)
}

// ===== transport failures =====

func TestClient_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	_, err := c.client.Categories(context.Background())

	assert.ErrorIs(t, err, gateway.ErrTransport)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL, gateway.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

	_, err := c.client.ListShops(context.Background(), gateway.ShopQuery{})

	assert.ErrorIs(t, err, gateway.ErrTimeout)
}

func TestClient_DoesNotModifyCallerHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := newTestClient(t, newTestServer(t).URL, gateway.WithHTTPClient(hc))

	res, err := c.client.Categories(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Status)
	assert.Zero(t, hc.Timeout)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := newTestClient(t, url)

	_, err := c.client.GetShop(context.Background(), "1")

	assert.ErrorIs(t, err, gateway.ErrTransport)
}
