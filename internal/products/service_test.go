package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client, err := db.NewMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, ProductInput{
		Name:     " Monitor ",
		Category: "Electronics",
		Supplier: "Tech Supplier Co.",
		Stock:    12,
		Price:    decimal.RequireFromString("149.5"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Monitor", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)
	assert.True(t, decimal.RequireFromString("149.50").Equal(got.Price))

	updated, err := svc.Update(ctx, created.ID, ProductInput{
		Name:  "Monitor 27",
		Stock: 8,
		Price: decimal.RequireFromString("199.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Monitor 27", updated.Name)
	assert.Equal(t, 8, updated.Stock)
	assert.Empty(t, updated.Category)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestProductValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := map[string]ProductInput{
		"blank name":     {Name: "  ", Price: decimal.NewFromInt(1)},
		"negative stock": {Name: "x", Stock: -1},
		"negative price": {Name: "x", Price: decimal.NewFromInt(-1)},
		"sub-cent price": {Name: "x", Price: decimal.RequireFromString("0.999")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
		})
	}
}

func TestProductMissingIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Update(ctx, 999, ProductInput{Name: "x"})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(svc.Delete(ctx, 999)))
}

func TestDeleteReferencedProductConflicts(t *testing.T) {
	ctx := context.Background()
	svc, client := newTestService(t)
	require.NoError(t, db.Seed(ctx, client, db.SeedOptions{PasswordHash: "hash"}))

	// Office Chair is on the seeded Delivered order.
	err := svc.Delete(ctx, 2)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	_, err = svc.Get(ctx, 2)
	require.NoError(t, err)
}

func TestAdjustStockFloor(t *testing.T) {
	ctx := context.Background()
	_, client := newTestService(t)
	repo := NewRepository(client.DB())

	row := &models.Product{Name: "Widget", Stock: 3, Price: decimal.NewFromInt(1)}
	require.NoError(t, repo.Create(ctx, row))

	ok, err := repo.AdjustStock(ctx, row.ID, -5, true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AdjustStock(ctx, row.ID, -5, false)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got.Stock)

	exists, err := repo.Exists(ctx, 404)
	require.NoError(t, err)
	assert.False(t, exists)
}
