package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Latency is the artificial delay the mock adds per operation class.
type Latency struct {
	Read   time.Duration
	Search time.Duration
	Auth   time.Duration
	Write  time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Read:   300 * time.Millisecond,
		Search: 500 * time.Millisecond,
		Auth:   600 * time.Millisecond,
		Write:  400 * time.Millisecond,
	}
}

// withDefaults replaces non-positive delays; the mock never answers instantly.
func (l Latency) withDefaults() Latency {
	d := DefaultLatency()
	if l.Read <= 0 {
		l.Read = d.Read
	}
	if l.Search <= 0 {
		l.Search = d.Search
	}
	if l.Auth <= 0 {
		l.Auth = d.Auth
	}
	if l.Write <= 0 {
		l.Write = d.Write
	}
	return l
}

// TokenIssuer mints bearer credentials on login. *auth.JWTService satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(user catalog.User) (string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
}

type MockConfig struct {
	Latency Latency
	// RequireSearchCriteria rejects searches with neither query nor category.
	RequireSearchCriteria bool
}

type MockOption func(*Mock)

func WithPublisher(p Publisher) MockOption {
	return func(m *Mock) { m.publisher = p }
}

func WithIdentityProvider(p auth.IdentityProvider) MockOption {
	return func(m *Mock) { m.idp = p }
}

// WithSession makes the mock act as an in-process client: calls without a
// credential on the context use the session token, logins store it and
// unauthorized calls clear it.
func WithSession(g *SessionGuard) MockOption {
	return func(m *Mock) { m.session = g }
}

func WithMetrics(mt *metrics.Metrics) MockOption {
	return func(m *Mock) { m.metrics = mt }
}

func WithLogger(l *zap.Logger) MockOption {
	return func(m *Mock) { m.logger = l }
}

// Mock serves the gateway from the in-process catalog store.
type Mock struct {
	store  *catalog.Store
	gate   *auth.Gate
	issuer TokenIssuer
	cfg    MockConfig

	idp       auth.IdentityProvider
	session   *SessionGuard
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

var _ Gateway = (*Mock)(nil)

func NewMock(store *catalog.Store, gate *auth.Gate, issuer TokenIssuer, cfg MockConfig, opts ...MockOption) *Mock {
	cfg.Latency = cfg.Latency.withDefaults()
	m := &Mock{
		store:  store,
		gate:   gate,
		issuer: issuer,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ==== catalog reads ====

func (m *Mock) ListShops(ctx context.Context, q ShopQuery) (env Envelope[[]catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("list_shops", &env.Status, &err)

	if q.Nearby && q.Location == nil {
		return Invalid[[]catalog.Shop]("latitude and longitude are required"), nil
	}
	if q.Location != nil && !q.Location.Valid() {
		return Invalid[[]catalog.Shop](errInvalidLocation), nil
	}
	if q.RadiusKm < 0 || math.IsNaN(q.RadiusKm) {
		return Invalid[[]catalog.Shop]("radius must not be negative"), nil
	}

	shops := geo.Annotate(m.visible(m.viewer(ctx)).Shops, q.Location)
	if q.Nearby {
		radius := q.RadiusKm
		if radius == 0 {
			radius = geo.DefaultRadiusKm
		}
		shops = geo.WithinRadius(shops, radius)
	}
	return OK(shops), nil
}

// SearchShops filters visible shops by query and, given a location,
// orders the matches by distance.
func (m *Mock) SearchShops(ctx context.Context, query string, loc *geo.Point) (env Envelope[[]catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Search)
	defer m.observe("search_shops", &env.Status, &err)

	if loc != nil && !loc.Valid() {
		return Invalid[[]catalog.Shop](errInvalidLocation), nil
	}
	p := search.Params{Query: query, Type: search.TypeShops}
	if m.cfg.RequireSearchCriteria && !p.HasCriteria() {
		return Invalid[[]catalog.Shop]("enter a search term"), nil
	}
	res := search.Run(m.visible(m.viewer(ctx)), p)
	return OK(geo.Annotate(res.Shops, loc)), nil
}

func (m *Mock) GetShop(ctx context.Context, id string) (env Envelope[catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("get_shop", &env.Status, &err)

	shop, ok := m.readableShop(m.viewer(ctx), id)
	if !ok {
		return NotFound[catalog.Shop]("shop"), nil
	}
	return OK(shop), nil
}

func (m *Mock) ShopProducts(ctx context.Context, shopID string) (env Envelope[[]catalog.Product], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("shop_products", &env.Status, &err)

	if _, ok := m.readableShop(m.viewer(ctx), shopID); !ok {
		return NotFound[[]catalog.Product]("shop"), nil
	}
	return OK(orEmpty(m.store.ProductsByShop(shopID))), nil
}

func (m *Mock) GetProduct(ctx context.Context, id string) (env Envelope[catalog.Product], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("get_product", &env.Status, &err)

	p, ok := m.store.Product(id)
	if !ok {
		return NotFound[catalog.Product]("product"), nil
	}
	if _, ok := m.readableShop(m.viewer(ctx), p.ShopID); !ok {
		return NotFound[catalog.Product]("product"), nil
	}
	return OK(p), nil
}

// ListProducts returns every visible product in catalog order.
func (m *Mock) ListProducts(ctx context.Context) (env Envelope[[]catalog.Product], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("list_products", &env.Status, &err)

	return OK(m.visible(m.viewer(ctx)).Products), nil
}

func (m *Mock) ProductsByCategory(ctx context.Context, category string) (env Envelope[[]catalog.Product], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("products_by_category", &env.Status, &err)

	if category == "" {
		return Invalid[[]catalog.Product]("category is required"), nil
	}
	out := []catalog.Product{}
	for _, p := range m.visible(m.viewer(ctx)).Products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return OK(out), nil
}

func (m *Mock) Search(ctx context.Context, p search.Params) (env Envelope[search.Result], err error) {
	m.wait(m.cfg.Latency.Search)
	defer m.observe("search", &env.Status, &err)

	typ, perr := search.ParseType(string(p.Type))
	if perr != nil {
		return Invalid[search.Result](perr.Error()), nil
	}
	p.Type = typ
	if m.cfg.RequireSearchCriteria && !p.HasCriteria() {
		return Invalid[search.Result]("enter a search term or choose a category"), nil
	}
	return OK(search.Run(m.visible(m.viewer(ctx)), p)), nil
}

func (m *Mock) Categories(ctx context.Context) (env Envelope[[]string], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("categories", &env.Status, &err)

	return OK(orEmpty(m.store.Categories())), nil
}

// ==== session ====

func (m *Mock) Login(ctx context.Context, req LoginRequest) (env Envelope[LoginResponse], err error) {
	m.wait(m.cfg.Latency.Auth)
	defer m.observe("login", &env.Status, &err)

	var phone string
	switch {
	case req.FirebaseToken != "":
		if m.idp == nil {
			return Invalid[LoginResponse]("identity provider login is not configured"), nil
		}
		verified, verr := m.idp.VerifyIDToken(ctx, req.FirebaseToken)
		if verr != nil {
			return Envelope[LoginResponse]{}, fmt.Errorf("%w: %w", ErrUnauthorized, verr)
		}
		phone = verified
	case strings.TrimSpace(req.Phone) != "":
		phone = strings.TrimSpace(req.Phone)
	default:
		return Invalid[LoginResponse]("firebase_token or phone is required"), nil
	}

	user, ok := m.store.UserByPhone(phone)
	if !ok {
		return NotFound[LoginResponse]("user"), nil
	}
	if !user.IsActive {
		return Envelope[LoginResponse]{}, fmt.Errorf("%w: account is disabled", ErrForbidden)
	}

	token, expiresAt, ierr := m.issuer.GenerateAccessToken(user)
	if ierr != nil {
		return Envelope[LoginResponse]{}, fmt.Errorf("issue token: %w", ierr)
	}
	if m.session != nil {
		if serr := m.session.SetToken(token); serr != nil {
			return Envelope[LoginResponse]{}, fmt.Errorf("store token: %w", serr)
		}
	}

	m.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return OK(LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(m.issuer.GetAccessTokenExpiry() / time.Second),
		Role:        user.Role,
		ExpiresAt:   expiresAt,
		User:        user,
	}), nil
}

// Register adds an active customer to the local catalog. It does not log
// the new user in.
func (m *Mock) Register(ctx context.Context, req RegisterRequest) (env Envelope[catalog.User], err error) {
	m.wait(m.cfg.Latency.Auth)
	defer m.observe("register", &env.Status, &err)

	user, aerr := m.store.AddUser(catalog.User{
		ID:        uuid.New().String(),
		Phone:     strings.TrimSpace(req.Phone),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Role:      catalog.RoleCustomer,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	switch {
	case errors.Is(aerr, catalog.ErrInvalid), errors.Is(aerr, catalog.ErrPhoneTaken):
		return Invalid[catalog.User](aerr.Error()), nil
	case aerr != nil:
		return env, fmt.Errorf("register: %w", aerr)
	}

	m.publish(ctx, catalog.EventUserRegistered, user.ID, user.ID, catalog.UserRegistered{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
	})
	m.logger.Info("user registered", zap.String("user_id", user.ID))
	return OK(user), nil
}

func (m *Mock) VerifyToken(ctx context.Context) (env Envelope[TokenInfo], err error) {
	m.wait(m.cfg.Latency.Auth)
	defer m.observe("verify_token", &env.Status, &err)

	user, err := m.authenticate(ctx)
	if err != nil {
		return env, err
	}
	return OK(TokenInfo{UserID: user.ID, Role: user.Role, Name: user.Name, Email: user.Email}), nil
}

func (m *Mock) CurrentUser(ctx context.Context) (env Envelope[catalog.User], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("current_user", &env.Status, &err)

	user, err := m.authenticate(ctx)
	if err != nil {
		return env, err
	}
	return OK(*user), nil
}

// ==== seller ====

func (m *Mock) SellerShop(ctx context.Context) (env Envelope[catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("seller_shop", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	shop, ok := m.sellerShop(user)
	if !ok {
		return NotFound[catalog.Shop]("shop"), nil
	}
	return OK(shop), nil
}

func (m *Mock) CreateSellerShop(ctx context.Context, shop catalog.Shop) (env Envelope[catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("create_seller_shop", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	if _, ok := m.sellerShop(user); ok {
		return Invalid[catalog.Shop]("seller already has a shop"), nil
	}

	shop.ID = uuid.New().String()
	shop.OwnerID = user.ID
	shop.Owner = user.Name
	if shop.Phone == "" {
		shop.Phone = user.Phone
	}
	shop.Status = catalog.StatusPending
	shop.IsActive = true
	shop.Rating = 0
	shop.ReviewCount = 0
	shop.CreatedAt = time.Now().UTC()

	if !auth.Can(user, auth.ActionWrite, auth.ShopResource(shop)) {
		return env, ErrForbidden
	}
	stored, _, err := m.store.PutShop(shop)
	if err != nil {
		return storeFailure[catalog.Shop](err)
	}

	m.publish(ctx, catalog.EventShopCreated, stored.ID, user.ID, catalog.ShopCreated{
		ShopID:   stored.ID,
		OwnerID:  stored.OwnerID,
		Name:     stored.Name,
		Category: stored.Category,
		Status:   stored.Status,
	})
	return OK(stored), nil
}

func (m *Mock) UpdateSellerShop(ctx context.Context, shop catalog.Shop) (env Envelope[catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("update_seller_shop", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	current, ok := m.sellerShop(user)
	if !ok {
		return NotFound[catalog.Shop]("shop"), nil
	}
	if !auth.Can(user, auth.ActionWrite, auth.ShopResource(current)) {
		return env, ErrForbidden
	}

	updated := current
	updated.Name = shop.Name
	updated.Description = shop.Description
	updated.Address = shop.Address
	updated.Category = shop.Category
	updated.Latitude = shop.Latitude
	updated.Longitude = shop.Longitude
	updated.ImageURL = shop.ImageURL
	updated.Logo = shop.Logo
	updated.IsOpen = shop.IsOpen
	updated.OpeningTime = shop.OpeningTime
	updated.ClosingTime = shop.ClosingTime
	if shop.Phone != "" {
		updated.Phone = shop.Phone
	}

	stored, _, err := m.store.PutShop(updated)
	if err != nil {
		return storeFailure[catalog.Shop](err)
	}

	m.publish(ctx, catalog.EventShopUpdated, stored.ID, user.ID, catalog.ShopUpdated{
		ShopID: stored.ID,
		Name:   stored.Name,
		IsOpen: stored.IsOpen,
	})
	return OK(stored), nil
}

func (m *Mock) SellerProducts(ctx context.Context) (env Envelope[[]catalog.Product], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("seller_products", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	shop, ok := m.sellerShop(user)
	if !ok {
		return NotFound[[]catalog.Product]("shop"), nil
	}
	return OK(orEmpty(m.store.ProductsByShop(shop.ID))), nil
}

func (m *Mock) AddSellerProduct(ctx context.Context, p catalog.Product) (env Envelope[catalog.Product], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("add_seller_product", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	shop, ok := m.sellerShop(user)
	if !ok {
		return NotFound[catalog.Product]("shop"), nil
	}
	if !auth.Can(user, auth.ActionWrite, auth.ProductResource(shop)) {
		return env, ErrForbidden
	}

	p.ID = uuid.New().String()
	p.ShopID = shop.ID
	p.CreatedAt = time.Now().UTC()

	stored, _, err := m.store.PutProduct(p)
	if err != nil {
		return storeFailure[catalog.Product](err)
	}

	m.publish(ctx, catalog.EventProductCreated, stored.ID, user.ID, catalog.ProductCreated{
		ProductID: stored.ID,
		ShopID:    stored.ShopID,
		Name:      stored.Name,
		Price:     stored.Price,
		Quantity:  stored.Quantity,
	})
	return OK(stored), nil
}

func (m *Mock) UpdateSellerProduct(ctx context.Context, p catalog.Product) (env Envelope[catalog.Product], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("update_seller_product", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	if p.ID == "" {
		return Invalid[catalog.Product]("product id is required"), nil
	}
	existing, shop, ok := m.productWithShop(p.ID)
	if !ok {
		return NotFound[catalog.Product]("product"), nil
	}
	if !auth.Can(user, auth.ActionWrite, auth.ProductResource(shop)) {
		return env, ErrForbidden
	}

	p.ShopID = existing.ShopID
	p.CreatedAt = existing.CreatedAt

	stored, _, err := m.store.PutProduct(p)
	if err != nil {
		return storeFailure[catalog.Product](err)
	}

	m.publish(ctx, catalog.EventProductUpdated, stored.ID, user.ID, catalog.ProductUpdated{
		ProductID: stored.ID,
		ShopID:    stored.ShopID,
		Name:      stored.Name,
		Price:     stored.Price,
		InStock:   stored.InStock,
		Quantity:  stored.Quantity,
	})
	return OK(stored), nil
}

func (m *Mock) DeleteSellerProduct(ctx context.Context, id string) (env Envelope[catalog.Product], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("delete_seller_product", &env.Status, &err)

	user, err := m.requireRole(ctx, catalog.RoleSeller)
	if err != nil {
		return env, err
	}
	_, shop, ok := m.productWithShop(id)
	if !ok {
		return NotFound[catalog.Product]("product"), nil
	}
	if !auth.Can(user, auth.ActionWrite, auth.ProductResource(shop)) {
		return env, ErrForbidden
	}

	removed, err := m.store.DeleteProduct(id)
	if err != nil {
		return storeFailure[catalog.Product](err)
	}

	m.publish(ctx, catalog.EventProductDeleted, removed.ID, user.ID, catalog.ProductDeleted{
		ProductID: removed.ID,
		ShopID:    removed.ShopID,
	})
	return OK(removed), nil
}

// ==== admin ====

func (m *Mock) AdminShops(ctx context.Context, status catalog.ShopStatus) (env Envelope[[]catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("admin_shops", &env.Status, &err)

	if _, err := m.requireModerator(ctx); err != nil {
		return env, err
	}
	if status != "" && !status.Valid() {
		return Invalid[[]catalog.Shop](catalog.ErrInvalidStatus.Error()), nil
	}

	out := []catalog.Shop{}
	for _, s := range m.store.Snapshot().Shops {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	return OK(out), nil
}

func (m *Mock) SetShopStatus(ctx context.Context, id string, status catalog.ShopStatus) (env Envelope[catalog.Shop], err error) {
	m.wait(m.cfg.Latency.Write)
	defer m.observe("set_shop_status", &env.Status, &err)

	user, err := m.requireModerator(ctx)
	if err != nil {
		return env, err
	}
	shop, from, err := m.store.SetShopStatus(id, status)
	if err != nil {
		return storeFailure[catalog.Shop](err)
	}

	if from != shop.Status {
		m.publish(ctx, catalog.EventShopStatusChanged, shop.ID, user.ID, catalog.ShopStatusChanged{
			ShopID: shop.ID,
			From:   from,
			To:     shop.Status,
		})
	}
	return OK(shop), nil
}

func (m *Mock) AdminStats(ctx context.Context) (env Envelope[catalog.Stats], err error) {
	m.wait(m.cfg.Latency.Read)
	defer m.observe("admin_stats", &env.Status, &err)

	if _, err := m.requireModerator(ctx); err != nil {
		return env, err
	}
	return OK(m.store.Stats()), nil
}

// ==== helpers ====

func (m *Mock) wait(d time.Duration) {
	time.Sleep(d)
}

func (m *Mock) observe(op string, status *bool, err *error) {
	outcome := "ok"
	switch {
	case *err != nil:
		outcome = errorOutcome(*err)
		m.logger.Debug("gateway operation failed", zap.String("op", op), zap.Error(*err))
	case !*status:
		outcome = "failed"
	}
	m.metrics.ObserveGatewayOp(op, outcome)
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

const errInvalidLocation = "latitude and longitude must be valid coordinates"

// credential prefers the request context and falls back to the session.
func (m *Mock) credential(ctx context.Context) (token string, fromSession bool) {
	if c := auth.CredentialFromContext(ctx); c != "" {
		return c, false
	}
	if m.session != nil {
		if t, err := m.session.Token(); err == nil && t != "" {
			return t, true
		}
	}
	return "", false
}

// viewer resolves the caller for public reads; any failure means anonymous.
func (m *Mock) viewer(ctx context.Context) *catalog.User {
	token, _ := m.credential(ctx)
	if token == "" {
		return nil
	}
	user, err := m.gate.Resolve(ctx, token)
	if err != nil {
		return nil
	}
	return user
}

func (m *Mock) authenticate(ctx context.Context) (*catalog.User, error) {
	token, fromSession := m.credential(ctx)
	user, err := m.gate.Resolve(ctx, token)
	if err != nil {
		if fromSession {
			m.session.Unauthorized(token)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return user, nil
}

func (m *Mock) requireRole(ctx context.Context, role catalog.Role) (*catalog.User, error) {
	user, err := m.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: requires %s role", ErrForbidden, role)
	}
	return user, nil
}

func (m *Mock) requireModerator(ctx context.Context) (*catalog.User, error) {
	user, err := m.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.Can(user, auth.ActionModerate, auth.Resource{}) {
		return nil, fmt.Errorf("%w: requires admin role", ErrForbidden)
	}
	return user, nil
}

// visible narrows the catalog to what user may read, before any filtering.
func (m *Mock) visible(user *catalog.User) catalog.Snapshot {
	snap := m.store.Snapshot()

	readable := make(map[string]bool, len(snap.Shops))
	shops := make([]catalog.Shop, 0, len(snap.Shops))
	for _, s := range snap.Shops {
		if auth.Can(user, auth.ActionRead, auth.ShopResource(s)) {
			readable[s.ID] = true
			shops = append(shops, s)
		}
	}
	products := make([]catalog.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if readable[p.ShopID] {
			products = append(products, p)
		}
	}
	return catalog.Snapshot{Shops: shops, Products: products}
}

// readableShop hides shops the user may not see behind a plain not found.
func (m *Mock) readableShop(user *catalog.User, id string) (catalog.Shop, bool) {
	shop, ok := m.store.Shop(id)
	if !ok || !auth.Can(user, auth.ActionRead, auth.ShopResource(shop)) {
		return catalog.Shop{}, false
	}
	return shop, true
}

// sellerShop is the first shop the seller owns, in catalog order.
func (m *Mock) sellerShop(user *catalog.User) (catalog.Shop, bool) {
	shops := m.store.ShopsByOwner(user.ID)
	if len(shops) == 0 {
		return catalog.Shop{}, false
	}
	return shops[0], true
}

func (m *Mock) productWithShop(id string) (catalog.Product, catalog.Shop, bool) {
	p, ok := m.store.Product(id)
	if !ok {
		return catalog.Product{}, catalog.Shop{}, false
	}
	shop, ok := m.store.Shop(p.ShopID)
	if !ok {
		return catalog.Product{}, catalog.Shop{}, false
	}
	return p, shop, true
}

func (m *Mock) publish(ctx context.Context, eventType, aggregateID, actorID string, payload any) {
	if m.publisher == nil {
		return
	}
	event, err := catalog.NewEvent(eventType, aggregateID, actorID, payload)
	if err != nil {
		m.logger.Warn("failed to build catalog event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := m.publisher.Publish(ctx, aggregateID, event); err != nil {
		m.logger.Warn("failed to publish catalog event",
			zap.String("type", eventType),
			zap.String("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}

// storeFailure maps catalog store errors onto envelopes.
func storeFailure[T any](err error) (Envelope[T], error) {
	switch {
	case errors.Is(err, catalog.ErrInvalid):
		return Invalid[T](err.Error()), nil
	case errors.Is(err, catalog.ErrShopNotFound):
		return NotFound[T]("shop"), nil
	case errors.Is(err, catalog.ErrProductNotFound):
		return NotFound[T]("product"), nil
	}
	return Envelope[T]{}, err
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
