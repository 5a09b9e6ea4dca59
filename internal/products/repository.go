package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
)

// Repository persists products.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update writes every editable column and reports whether the row existed.
func (r *Repository) Update(ctx context.Context, product *models.Product) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":     product.Name,
			"category": product.Category,
			"supplier": product.Supplier,
			"stock":    product.Stock,
			"price":    product.Price,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// AdjustStock applies delta atomically. With a floor the decrement only
// lands when enough stock is on hand.
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int, floor bool) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id)
	if floor && delta < 0 {
		q = q.Where("stock >= ?", -delta)
	}
	res := q.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected > 0, res.Error
}

// Exists reports whether a product row with id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
