package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/gateway"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/metrics"
	"go.uber.org/zap"
)

const serviceName = "storefront-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: serviceName,
		File:        cfg.LogFile,
	})
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(serviceName)

	gw, cleanup, err := buildGateway(ctx, cfg, log, m)
	if err != nil {
		log.Fatal("failed to build gateway", zap.Error(err))
	}
	defer cleanup()

	router := api.NewRouter(api.RouterConfig{
		Handlers: api.NewHandlers(gw, log),
		Logger:   log,
		Metrics:  m,
		WebDir:   os.Getenv("WEB_DIR"),
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("gateway_mode", cfg.GatewayMode),
			zap.String("catalog_source", cfg.CatalogSource),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildGateway wires the mock over the local catalog, or a client that
// proxies to the configured backend services.
func buildGateway(ctx context.Context, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (gateway.Gateway, func(), error) {
	if cfg.GatewayMode == config.ModeHTTP {
		log.Info("proxying to backend services", zap.String("api", cfg.Services.API))
		client := gateway.NewClient(gateway.Endpoints{
			API:      cfg.Services.API,
			User:     cfg.Services.User,
			Customer: cfg.Services.Customer,
			Seller:   cfg.Services.Seller,
			Admin:    cfg.Services.Admin,
		}, nil, gateway.WithClientLogger(log))
		return client, func() {}, nil
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	seed, err := loadSeed(ctx, cfg, log, &closers)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	catalogStore, err := catalog.NewStore(seed)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	opts := []gateway.MockOption{
		gateway.WithIdentityProvider(auth.NewStaticIdentityProvider(cfg.IdentityTokens)),
		gateway.WithMetrics(m),
		gateway.WithLogger(log),
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		closers = append(closers, func() {
			if err := producer.Close(); err != nil {
				log.Warn("failed to close kafka producer", zap.Error(err))
			}
		})
		opts = append(opts, gateway.WithPublisher(producer))
		log.Info("publishing catalog events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	mock := gateway.NewMock(catalogStore, auth.NewGate(jwtService, catalogStore), jwtService, gateway.MockConfig{
		Latency: gateway.Latency{
			Read:   cfg.Latency.Read,
			Search: cfg.Latency.Search,
			Auth:   cfg.Latency.Auth,
			Write:  cfg.Latency.Write,
		},
		RequireSearchCriteria: cfg.SearchRequireCriteria,
	}, opts...)
	return mock, cleanup, nil
}

func loadSeed(ctx context.Context, cfg *config.Config, log *zap.Logger, closers *[]func()) (catalog.Seed, error) {
	if cfg.CatalogSource != config.SourcePostgres {
		return catalog.DefaultSeed(), nil
	}

	db, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return catalog.Seed{}, err
	}
	*closers = append(*closers, func() { db.Close() })
	log.Info("connected to postgres")

	if err := store.EnsureSchema(ctx, db); err != nil {
		return catalog.Seed{}, err
	}
	src := store.NewPostgresCatalogSource(db, log)
	seed, err := src.Load(ctx)
	if err != nil {
		return catalog.Seed{}, err
	}
	if len(seed.Shops) == 0 {
		log.Info("catalog tables empty, importing default seed")
		if err := src.Import(ctx, catalog.DefaultSeed()); err != nil {
			return catalog.Seed{}, err
		}
		return src.Load(ctx)
	}
	return seed, nil
}
