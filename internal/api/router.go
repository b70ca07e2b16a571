package api

import (
	"net/http"
	"strings"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/metrics"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handlers *Handlers
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	// WebDir, when set, is served at "/" for the web UI.
	WebDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	handlers := cfg.Handlers
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	protected := middleware.RequireCredential

	mux := http.NewServeMux()

	// Static files (web UI)
	if cfg.WebDir != "" {
		fs := http.FileServer(http.Dir(cfg.WebDir))
		mux.Handle("/", fs)
	}

	mux.HandleFunc("/healthz", handlers.Health)
	mux.Handle("/metrics", cfg.Metrics.Handler())

	// Shops
	mux.HandleFunc("/shops", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.ListShops(w, r)
		case http.MethodPost:
			protected(http.HandlerFunc(handlers.CreateSellerShop)).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/shops/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/shops/nearby" && r.Method == http.MethodGet:
			handlers.NearbyShops(w, r)
		case path == "/shops/search" && r.Method == http.MethodGet:
			handlers.SearchShops(w, r)
		case path == "/shops/my-shop":
			switch r.Method {
			case http.MethodGet:
				protected(http.HandlerFunc(handlers.GetSellerShop)).ServeHTTP(w, r)
			case http.MethodPut:
				protected(http.HandlerFunc(handlers.UpdateSellerShop)).ServeHTTP(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		case strings.HasSuffix(path, "/products") && r.Method == http.MethodGet:
			handlers.GetShopProducts(w, r)
		case r.Method == http.MethodGet:
			handlers.GetShop(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Products
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProducts(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products/search" && r.Method == http.MethodGet:
			handlers.SearchProducts(w, r, "query")
		case r.Method == http.MethodGet:
			handlers.GetProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.SearchProducts(w, r, "search")
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.Search(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Categories
	categories := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetCategories(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/catalog/categories", categories)
	mux.HandleFunc("/categories", categories)

	// Auth
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.Login(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.Register(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/auth/verify-token", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.VerifyToken(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.Logout(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/users/me", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.Me(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Seller
	mux.Handle("/seller/shop", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetSellerShop(w, r)
		case http.MethodPost:
			handlers.CreateSellerShop(w, r)
		case http.MethodPut:
			handlers.UpdateSellerShop(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	for _, prefix := range []string{"/seller/products", "/inventory/products"} {
		mux.Handle(prefix, protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				handlers.GetSellerProducts(w, r)
			case http.MethodPost:
				handlers.AddSellerProduct(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		})))

		mux.Handle(prefix+"/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				handlers.UpdateSellerProduct(w, r, prefix+"/")
			case http.MethodDelete:
				handlers.DeleteSellerProduct(w, r, prefix+"/")
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		})))
	}

	// Admin
	mux.Handle("/admin/shops", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.AdminListShops(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/admin/shops/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPut:
			handlers.SetShopStatus(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/admin/stats", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.AdminStats(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	return middleware.RequestID(middleware.Credential(middleware.Observe(logger, cfg.Metrics)(mux)))
}
