package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/angelmondragon/inventory-backend/pkg/security"
)

const seedPassword = "password123"

type testServer struct {
	handler http.Handler
	client  *db.Client
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "inventory-test", ExpirationMinutes: 60},
		Password: config.PasswordConfig{
			MinLength:        6,
			ArgonMemoryKB:    64,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		HTTP:  config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}, PublicTransactions: true, IdempotencyTTL: time.Hour},
		Stock: config.StockConfig{LowStockThreshold: 3},
	}
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	client, err := db.NewMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	hash, err := security.HashPassword(seedPassword, cfg.Password)
	require.NoError(t, err)
	require.NoError(t, db.Seed(ctx, client, db.SeedOptions{PasswordHash: hash}))

	deps, err := BuildDependencies(cfg, logger.Nop(), client, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	return &testServer{handler: NewRouter(deps), client: client}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": seedPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Login successful", body["message"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "live", body["status"])

	rec, body = srv.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/products", "/api/categories", "/api/suppliers", "/api/orders", "/api/dashboard/summary"} {
		rec, body := srv.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.NotEmpty(t, body["message"], path)

		rec, _ = srv.do(t, http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestLoginOutcomes(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.login(t, "admin@example.com")

	rec, _ := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": seedPassword})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	srv := newTestServer(t, nil)
	payload := map[string]string{"name": "New Hire", "email": "new@example.com", "password": "secret99"}

	rec, body := srv.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "User registered successfully", body["message"])
	user, _ := body["user"].(map[string]any)
	assert.Equal(t, "staff", user["role"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec, _ = srv.do(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "new@example.com", "password": "secret99"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])
}

func TestOrderLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t, "staff@example.com")

	rec, body := srv.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"customer_name": "Jane Doe",
		"items":         []map[string]any{{"product_id": 1, "quantity": 2, "price": 999.99}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Jane Doe", body["customer_name"])
	assert.Equal(t, "Pending", body["status"])
	assert.Equal(t, 1999.98, body["total"])
	items, _ := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Laptop", items[0].(map[string]any)["product_name"])
	orderID := int64(body["id"].(float64))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	srv.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	assert.Equal(t, "Jane Doe", list[0]["customer_name"])
	assert.Equal(t, "Laptop", list[0]["products"])

	path := "/api/orders/" + jsonID(orderID)
	rec, body = srv.do(t, http.MethodPut, path+"/status", token, map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Shipped", body["status"])

	rec, _ = srv.do(t, http.MethodPut, path+"/status", token, map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = srv.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order deleted successfully", body["message"])

	rec, _ = srv.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var outboxRows int64
	require.NoError(t, srv.client.DB().Table("outbox_events").Count(&outboxRows).Error)
	assert.Equal(t, int64(2), outboxRows)
}

func TestOrderWithUnknownProductRollsBack(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t, "admin@example.com")

	var before int64
	require.NoError(t, srv.client.DB().Table("orders").Count(&before).Error)

	rec, _ := srv.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"customer_name": "Ghost",
		"items":         []map[string]any{{"product_id": 999, "quantity": 1, "price": 1}},
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var after int64
	require.NoError(t, srv.client.DB().Table("orders").Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestPublicTransactions(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPost, "/api/transactions", "", map[string]any{"product_id": 1, "type": "sale", "quantity": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Transaction recorded", body["message"])
	assert.NotZero(t, body["id"])

	token := srv.login(t, "admin@example.com")
	rec, body = srv.do(t, http.MethodGet, "/api/products/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(45), body["stock"])

	rec, _ = srv.do(t, http.MethodPost, "/api/transactions", "", map[string]any{"product_id": 1, "type": "sale", "quantity": 1000})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = srv.do(t, http.MethodPost, "/api/transactions", "", map[string]any{"product_id": 999, "type": "purchase", "quantity": 1})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])

	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Laptop", list[0]["product_name"])
}

func TestTransactionsCanRequireAuth(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) { cfg.HTTP.PublicTransactions = false })

	rec, _ := srv.do(t, http.MethodGet, "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := srv.login(t, "admin@example.com")
	rec, _ = srv.do(t, http.MethodPost, "/api/transactions", token, map[string]any{"product_id": 2, "type": "purchase", "quantity": 5})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCatalogCRUD(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t, "admin@example.com")

	rec, body := srv.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Monitor", "category": "Electronics", "supplier": "Tech Supplier Co.", "stock": 10, "price": 199.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := jsonID(int64(body["id"].(float64)))

	rec, body = srv.do(t, http.MethodPut, "/api/products/"+id, token, map[string]any{
		"name": "Monitor 27", "category": "Electronics", "supplier": "Tech Supplier Co.", "stock": 8, "price": 219.99,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Monitor 27", body["name"])
	assert.Equal(t, 219.99, body["price"])

	rec, _ = srv.do(t, http.MethodPost, "/api/products", token, map[string]any{"name": "Broken", "stock": -1, "price": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = srv.do(t, http.MethodDelete, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", body["message"])

	rec, _ = srv.do(t, http.MethodDelete, "/api/products/2", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "seeded order items reference product 2")

	rec, _ = srv.do(t, http.MethodGet, "/api/categories/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = srv.do(t, http.MethodPost, "/api/suppliers", token, map[string]any{"name": "Bad Mail", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t, "admin@example.com")

	rec, body := srv.do(t, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["total_products"])
	assert.Equal(t, float64(2), body["total_orders"])
	assert.Equal(t, float64(1), body["pending_orders"])

	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/dashboard/summary"`)
}

func jsonID(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
