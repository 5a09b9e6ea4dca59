package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	client, err := db.NewMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRepository(client.DB())
	created, err := repo.Create(ctx, CreateUserDTO{
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, enums.UserRoleStaff, created.Role)

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	mixedCase, err := repo.FindByEmail(ctx, "  Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", mixedCase.Name)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	dto := FromModel(byEmail)
	assert.Equal(t, "ana@example.com", dto.Email)
	assert.Nil(t, FromModel(nil))
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	client, err := db.NewMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRepository(client.DB())
	_, err = repo.Create(ctx, CreateUserDTO{Name: "A", Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateUserDTO{Name: "B", Email: "dup@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "users.email"))

	var n int64
	require.NoError(t, client.DB().Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
