package routes

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/inventory-backend/internal/auth"
	"github.com/angelmondragon/inventory-backend/internal/categories"
	"github.com/angelmondragon/inventory-backend/internal/dashboard"
	"github.com/angelmondragon/inventory-backend/internal/orders"
	"github.com/angelmondragon/inventory-backend/internal/products"
	"github.com/angelmondragon/inventory-backend/internal/suppliers"
	"github.com/angelmondragon/inventory-backend/internal/transactions"
	"github.com/angelmondragon/inventory-backend/internal/users"
	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
	"github.com/angelmondragon/inventory-backend/pkg/redis"
)

// BuildDependencies constructs repositories and services over one database
// client. redisClient and registry may be nil.
func BuildDependencies(cfg *config.Config, logg *logger.Logger, client *db.Client, redisClient *redis.Client, registry *prometheus.Registry) (Dependencies, error) {
	if cfg == nil || client == nil {
		return Dependencies{}, fmt.Errorf("config and database client are required")
	}
	conn := client.DB()

	var inventoryMetrics *metrics.InventoryMetrics
	if registry != nil {
		inventoryMetrics = metrics.NewInventoryMetrics(registry)
	}

	outboxSvc := outbox.NewService(outbox.NewRepository(conn), logg)
	productRepo := products.NewRepository(conn)

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:  users.NewRepository(conn),
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		return Dependencies{}, fmt.Errorf("auth service: %w", err)
	}
	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             client,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return Dependencies{}, fmt.Errorf("register service: %w", err)
	}
	productSvc, err := products.NewService(productRepo)
	if err != nil {
		return Dependencies{}, fmt.Errorf("products service: %w", err)
	}
	categorySvc, err := categories.NewService(categories.NewRepository(conn))
	if err != nil {
		return Dependencies{}, fmt.Errorf("categories service: %w", err)
	}
	supplierSvc, err := suppliers.NewService(suppliers.NewRepository(conn))
	if err != nil {
		return Dependencies{}, fmt.Errorf("suppliers service: %w", err)
	}
	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:               orders.NewRepository(conn),
		Tx:                 client,
		Outbox:             outboxSvc,
		Metrics:            inventoryMetrics,
		EnforceTransitions: cfg.Orders.EnforceTransitions,
	})
	if err != nil {
		return Dependencies{}, fmt.Errorf("orders service: %w", err)
	}
	transactionsSvc, err := transactions.NewService(transactions.ServiceParams{
		Repo:          transactions.NewRepository(conn),
		Products:      productRepo,
		Tx:            client,
		Outbox:        outboxSvc,
		Metrics:       inventoryMetrics,
		AllowNegative: cfg.Stock.AllowNegative,
	})
	if err != nil {
		return Dependencies{}, fmt.Errorf("transactions service: %w", err)
	}
	dashboardSvc, err := dashboard.NewService(conn, cfg.Stock.LowStockThreshold)
	if err != nil {
		return Dependencies{}, fmt.Errorf("dashboard service: %w", err)
	}

	return Dependencies{
		Config:       cfg,
		Logger:       logg,
		DB:           client,
		Redis:        redisClient,
		Registry:     registry,
		Auth:         authSvc,
		Register:     registerSvc,
		Products:     productSvc,
		Categories:   categorySvc,
		Suppliers:    supplierSvc,
		Orders:       ordersSvc,
		Transactions: transactionsSvc,
		Dashboard:    dashboardSvc,
	}, nil
}
