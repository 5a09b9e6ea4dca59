package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
)

// StockAlert names a product whose stock needs attention.
type StockAlert struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalProducts   int64           `json:"total_products"`
	TotalCategories int64           `json:"total_categories"`
	TotalSuppliers  int64           `json:"total_suppliers"`
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	TotalStockUnits int64           `json:"total_stock_units"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	LowStock        []StockAlert    `json:"low_stock"`
	OutOfStock      []StockAlert    `json:"out_of_stock"`
}

type Service struct {
	db                *gorm.DB
	lowStockThreshold int
}

// NewService builds the dashboard reader. Products with 0 < stock <= threshold
// are reported as low stock.
func NewService(db *gorm.DB, lowStockThreshold int) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	return &Service{db: db, lowStockThreshold: lowStockThreshold}, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	q := s.db.WithContext(ctx)
	out := &Summary{
		InventoryValue: decimal.Zero,
		LowStock:       []StockAlert{},
		OutOfStock:     []StockAlert{},
	}

	counts := []struct {
		model any
		dest  *int64
		where []any
	}{
		{&models.Category{}, &out.TotalCategories, nil},
		{&models.Supplier{}, &out.TotalSuppliers, nil},
		{&models.Order{}, &out.TotalOrders, nil},
		{&models.Order{}, &out.PendingOrders, []any{"status = ?", enums.OrderStatusPending}},
	}
	for _, c := range counts {
		stmt := q.Model(c.model)
		if len(c.where) > 0 {
			stmt = stmt.Where(c.where[0], c.where[1:]...)
		}
		if err := stmt.Count(c.dest).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count dashboard totals")
		}
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}
	out.TotalProducts = int64(len(products))
	for _, p := range products {
		out.TotalStockUnits += int64(p.Stock)
		if p.Stock > 0 {
			out.InventoryValue = out.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		}
		alert := StockAlert{ID: p.ID, Name: p.Name, Stock: p.Stock}
		switch {
		case p.Stock <= 0:
			out.OutOfStock = append(out.OutOfStock, alert)
		case p.Stock <= s.lowStockThreshold:
			out.LowStock = append(out.LowStock, alert)
		}
	}
	return out, nil
}
