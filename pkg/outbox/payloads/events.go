package payloads

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// OrderLine is one product line of an order event.
type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderCreatedEvent is emitted when an order and its items commit.
type OrderCreatedEvent struct {
	OrderID      int64             `json:"order_id"`
	CustomerName string            `json:"customer_name"`
	Status       enums.OrderStatus `json:"status"`
	Items        []OrderLine       `json:"items"`
	Total        decimal.Decimal   `json:"total"`
}

// OrderStatusChangedEvent carries the before and after status.
type OrderStatusChangedEvent struct {
	OrderID int64             `json:"order_id"`
	From    enums.OrderStatus `json:"from"`
	To      enums.OrderStatus `json:"to"`
}

// StockAdjustedEvent is emitted for every recorded stock transaction.
type StockAdjustedEvent struct {
	TransactionID int64                 `json:"transaction_id"`
	ProductID     int64                 `json:"product_id"`
	Type          enums.TransactionType `json:"type"`
	Quantity      int                   `json:"quantity"`
	StockAfter    int                   `json:"stock_after"`
}
