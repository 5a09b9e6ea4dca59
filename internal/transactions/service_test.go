package transactions

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/inventory-backend/internal/products"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
)

type ledgerTestSetup struct {
	client   *db.Client
	svc      Service
	registry *prometheus.Registry
}

func newLedgerTestSetup(t *testing.T, allowNegative bool) *ledgerTestSetup {
	t.Helper()
	ctx := context.Background()
	client, err := db.NewMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, db.Seed(ctx, client, db.SeedOptions{PasswordHash: "hash"}))

	reg := prometheus.NewRegistry()
	m := metrics.NewInventoryMetrics(reg)
	svc, err := NewService(ServiceParams{
		Repo:          NewRepository(client.DB()),
		Products:      products.NewRepository(client.DB()),
		Tx:            client,
		Outbox:        outbox.NewService(outbox.NewRepository(client.DB()), nil),
		Metrics:       m,
		AllowNegative: allowNegative,
	})
	require.NoError(t, err)
	return &ledgerTestSetup{client: client, svc: svc, registry: reg}
}

func (s *ledgerTestSetup) stock(t *testing.T, productID int64) int {
	t.Helper()
	var p models.Product
	require.NoError(t, s.client.DB().First(&p, "id = ?", productID).Error)
	return p.Stock
}

func (s *ledgerTestSetup) ledgerSize(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.client.DB().Model(&models.Transaction{}).Count(&n).Error)
	return n
}

func TestSaleDecrementsStock(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	res, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 1, Type: "sale", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, recordedMessage, res.Message)
	assert.Equal(t, res.ID, res.Transaction.ID)
	assert.Equal(t, enums.TransactionTypeSale, res.Transaction.Type)
	assert.Equal(t, "Laptop", res.Transaction.ProductName)

	assert.Equal(t, 45, setup.stock(t, 1))
	assert.Equal(t, int64(1), setup.ledgerSize(t))
	series, err := testutil.GatherAndCount(setup.registry, "inventory_stock_adjustments_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestPurchaseIncrementsStock(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	_, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 2, Type: " Purchase ", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 35, setup.stock(t, 2))

	var events int64
	require.NoError(t, setup.client.DB().Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.EventStockAdjusted).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestSaleBeyondStockIsRejected(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	_, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 2, Type: "sale", Quantity: 26})
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
	assert.Equal(t, 25, setup.stock(t, 2))
	assert.Zero(t, setup.ledgerSize(t))
}

func TestSaleBeyondStockAllowedWhenConfigured(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, true)

	_, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 2, Type: "sale", Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, -5, setup.stock(t, 2))
}

func TestRecordTransactionMissingProduct(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	_, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 404, Type: "purchase", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(err))
	assert.Equal(t, "product not found", pkgerrors.As(err).Message())
	assert.Zero(t, setup.ledgerSize(t))
}

func TestRecordTransactionValidation(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	cases := map[string]RecordInput{
		"bad type":      {ProductID: 1, Type: "gift", Quantity: 1},
		"zero quantity": {ProductID: 1, Type: "sale", Quantity: 0},
		"no product":    {Type: "sale", Quantity: 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := setup.svc.RecordTransaction(ctx, in)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
		})
	}
	assert.Equal(t, 50, setup.stock(t, 1))
}

func TestListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, false)

	first, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 1, Type: "purchase", Quantity: 1})
	require.NoError(t, err)
	second, err := setup.svc.RecordTransaction(ctx, RecordInput{ProductID: 3, Type: "sale", Quantity: 2})
	require.NoError(t, err)

	list, err := setup.svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "T-Shirt", list[0].ProductName)
	assert.Equal(t, first.ID, list[1].ID)
}
