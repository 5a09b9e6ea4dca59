package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// Order is a customer purchase request. Items are removed with it.
type Order struct {
	ID           int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	OrderDate    time.Time         `gorm:"column:order_date;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem captures the unit price at order time, independent of the
// product's current price.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null;index"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
