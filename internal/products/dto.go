package products

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
)

// ProductDTO is the JSON shape returned to clients.
type ProductDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductInput is the create and full-update payload.
type ProductInput struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
}

func (in ProductInput) normalize() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Supplier = strings.TrimSpace(in.Supplier)
	if in.Name == "" {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if in.Stock < 0 {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "stock must be >= 0")
	}
	if in.Price.IsNegative() {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "price must be >= 0")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "price must have at most 2 decimal places")
	}
	return in, nil
}

func newProduct(in ProductInput) *models.Product {
	return &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Supplier: in.Supplier,
		Stock:    in.Stock,
		Price:    in.Price,
	}
}

func FromModel(m *models.Product) ProductDTO {
	return ProductDTO{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Supplier:  m.Supplier,
		Stock:     m.Stock,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}
