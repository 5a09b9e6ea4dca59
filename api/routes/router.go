package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/inventory-backend/api/controllers"
	"github.com/angelmondragon/inventory-backend/api/middleware"
	"github.com/angelmondragon/inventory-backend/internal/auth"
	"github.com/angelmondragon/inventory-backend/internal/categories"
	"github.com/angelmondragon/inventory-backend/internal/dashboard"
	"github.com/angelmondragon/inventory-backend/internal/orders"
	"github.com/angelmondragon/inventory-backend/internal/products"
	"github.com/angelmondragon/inventory-backend/internal/suppliers"
	"github.com/angelmondragon/inventory-backend/internal/transactions"
	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs. Redis and the
// metrics registry are optional.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	Auth         auth.Service
	Register     auth.RegisterService
	Products     products.Service
	Categories   *categories.Service
	Suppliers    *suppliers.Service
	Orders       orders.Service
	Transactions transactions.Service
	Dashboard    *dashboard.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// A nil *redis.Client must not reach the middleware as a non-nil interface.
	var (
		rateStore        middleware.RateLimiterStore
		idempotencyStore middleware.IdempotencyStore
		redisPinger      controllers.Pinger
	)
	if deps.Redis != nil {
		rateStore = deps.Redis
		idempotencyStore = deps.Redis
		redisPinger = deps.Redis
	}

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	idempotent := middleware.Idempotency(idempotencyStore, cfg.HTTP.IdempotencyTTL, logg)
	requireAuth := middleware.Auth(cfg.JWT, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    redisPinger,
		}))
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(deps.Register, logg))
	})

	r.Route("/api/transactions", func(r chi.Router) {
		if !cfg.HTTP.PublicTransactions {
			r.Use(requireAuth)
		}
		r.Get("/", controllers.TransactionsList(deps.Transactions, logg))
		r.With(idempotent).Post("/", controllers.TransactionRecord(deps.Transactions, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/api/products", func(r chi.Router) {
			mountCatalog(r, controllers.NewCatalogHandlers[products.ProductDTO, products.ProductInput](deps.Products, "product", logg))
		})
		r.Route("/api/categories", func(r chi.Router) {
			mountCatalog(r, controllers.NewCatalogHandlers[categories.CategoryDTO, categories.CategoryInput](deps.Categories, "category", logg))
		})
		r.Route("/api/suppliers", func(r chi.Router) {
			mountCatalog(r, controllers.NewCatalogHandlers[suppliers.SupplierDTO, suppliers.SupplierInput](deps.Suppliers, "supplier", logg))
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.With(idempotent).Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/{id}", controllers.OrderDetail(deps.Orders, logg))
			r.Put("/{id}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
			r.Delete("/{id}", controllers.OrderDelete(deps.Orders, logg))
		})

		r.Get("/api/dashboard/summary", controllers.DashboardSummary(deps.Dashboard, logg))
	})

	return r
}

func mountCatalog[D any, I any](r chi.Router, h *controllers.CatalogHandlers[D, I]) {
	r.Get("/", h.List())
	r.Post("/", h.Create())
	r.Get("/{id}", h.Get())
	r.Put("/{id}", h.Update())
	r.Delete("/{id}", h.Delete())
}
