package models

import (
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// Transaction is an append-only stock ledger entry.
type Transaction struct {
	ID        int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64                 `gorm:"column:product_id;not null;index"`
	Product   *Product              `gorm:"foreignKey:ProductID"`
	Type      enums.TransactionType `gorm:"column:type;not null"`
	Quantity  int                   `gorm:"column:quantity;not null"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
