package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	pkgredis "github.com/angelmondragon/inventory-backend/pkg/redis"
)

type fakeStore struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", pkgredis.ErrNil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		ok      bool
	}{
		{"create order", http.MethodPost, "/api/orders", true},
		{"record transaction", http.MethodPost, "/api/transactions", true},
		{"list orders", http.MethodGet, "/api/orders", false},
		{"status update", http.MethodPut, "/api/orders/{id}/status", false},
		{"login", http.MethodPost, "/api/auth/login", false},
		{"empty", http.MethodPost, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, ruleMatches(tt.method, tt.pattern))
		})
	}
}

func TestIdempotencyPassesThroughWithoutHeader(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders/", strings.NewReader(`{"customer_name":"Jane"}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	req := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{"customer_name":"Jane"}`))
	req.Header.Set("Idempotency-Key", "abc")
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{"customer_name":"Jane"}`))
	replay.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, replay)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "true", rec.Header().Get("Idempotent-Replay"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	assert.Equal(t, 1, calls)
	for _, ttl := range store.ttls {
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestIdempotencyRejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	handler := Idempotency(store, 0, nil)(okHandler())

	req := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{"customer_name":"Jane"}`))
	req.Header.Set("Idempotency-Key", "xyz")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	replay := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{"customer_name":"John"}`))
	replay.Header.Set("Idempotency-Key", "xyz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, replay)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeIdempotency), decodeErrorCode(t, rec))
}

func TestIdempotencyScopesAnonymousCallersByIP(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := requestWithPattern(http.MethodPost, "/api/transactions", "/api/transactions", strings.NewReader(`{"product_id":1}`))
		req.RemoteAddr = remoteAddr
		req.Header.Set("Idempotency-Key", "shared")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Empty(t, send("10.0.0.1:5000").Header().Get("Idempotent-Replay"))
	assert.Empty(t, send("10.0.0.2:5000").Header().Get("Idempotent-Replay"))
	assert.Equal(t, "true", send("10.0.0.1:6000").Header().Get("Idempotent-Replay"))
	assert.Equal(t, 2, calls)
	assert.Len(t, store.data, 2)
}

func TestBuildScopeUsesRoutePatternAndIdentity(t *testing.T) {
	req := requestWithPattern(http.MethodPost, "/api/orders/", "/api/orders", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	assert.Equal(t, "ip:10.0.0.9|POST|/api/orders", buildScope(req))

	req = req.WithContext(WithIdentity(req.Context(), 7, "staff@example.com", "staff"))
	assert.Equal(t, "user:7|POST|/api/orders", buildScope(req))
}

func TestIdempotencyDoesNotStoreServerErrors(t *testing.T) {
	store := newFakeStore()
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "boom")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, store.data)
}

func TestIdempotencyNilStoreIsPassThrough(t *testing.T) {
	var store IdempotencyStore
	handler := Idempotency(store, time.Hour, nil)(okHandler())
	req := requestWithPattern(http.MethodPost, "/api/orders", "/api/orders", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
