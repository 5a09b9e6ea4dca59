package transactions

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
)

// Repository persists the append-only stock ledger.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, row *models.Transaction) error {
	return r.db.WithContext(ctx).Omit("Product").Create(row).Error
}

// List returns every ledger row newest-first with the product loaded.
func (r *Repository) List(ctx context.Context) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var row models.Transaction
	if err := r.db.WithContext(ctx).Preload("Product").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
