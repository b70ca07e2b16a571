package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/gateway"
	"github.com/example/storefront/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// app is the state shared by every command of one invocation.
type app struct {
	out, errOut io.Writer

	mock    bool
	apiURL  string
	jsonOut bool

	cfg    *config.Config
	log    *zap.Logger
	tokens *gateway.BoltTokenStore
	guard  *gateway.SessionGuard
	gw     gateway.Gateway
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "storefront-cli",
		File:        cfg.LogFile,
	})

	a.tokens, err = gateway.OpenBoltTokenStore(cfg.TokenDBPath)
	if err != nil {
		return err
	}
	a.guard = gateway.NewSessionGuard(a.tokens, func() {
		fmt.Fprintln(a.errOut, "session expired, run `storefront login` to sign in again")
	})

	if a.mock {
		a.gw, err = a.mockGateway()
		return err
	}

	services := cfg.Services
	if a.apiURL != "" {
		services = config.Services{API: a.apiURL}
	}
	a.gw = gateway.NewClient(gateway.Endpoints{
		API:      services.API,
		User:     services.User,
		Customer: services.Customer,
		Seller:   services.Seller,
		Admin:    services.Admin,
	}, a.guard, gateway.WithClientLogger(a.log))
	return nil
}

func (a *app) mockGateway() (gateway.Gateway, error) {
	store, err := catalog.NewStore(catalog.DefaultSeed())
	if err != nil {
		return nil, err
	}
	secret := a.cfg.JWTSecret
	if secret == "" {
		// tokens minted with a throwaway secret do not survive this process
		secret = uuid.NewString() + uuid.NewString()
		a.log.Debug("JWT_SECRET not set, using a per-process secret")
	}
	jwtService := auth.NewJWTService(secret, a.cfg.AccessTokenTTL)

	return gateway.NewMock(store, auth.NewGate(jwtService, store), jwtService, gateway.MockConfig{
		Latency: gateway.Latency{
			Read:   a.cfg.Latency.Read,
			Search: a.cfg.Latency.Search,
			Auth:   a.cfg.Latency.Auth,
			Write:  a.cfg.Latency.Write,
		},
		RequireSearchCriteria: a.cfg.SearchRequireCriteria,
	},
		gateway.WithSession(a.guard),
		gateway.WithIdentityProvider(auth.NewStaticIdentityProvider(a.cfg.IdentityTokens)),
		gateway.WithLogger(a.log),
	), nil
}

func (a *app) close() {
	if a.tokens != nil {
		a.tokens.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

// render prints a successful envelope as JSON or through table; failures
// become command errors.
func render[T any](a *app, env gateway.Envelope[T], err error, table func(w io.Writer, data T)) error {
	if err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	if a.jsonOut {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(env.Data)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	table(tw, env.Data)
	return tw.Flush()
}
