package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. Category and Supplier are free-text labels.
type Product struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	Category  string          `gorm:"column:category"`
	Supplier  string          `gorm:"column:supplier"`
	Stock     int             `gorm:"column:stock;not null;default:0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
