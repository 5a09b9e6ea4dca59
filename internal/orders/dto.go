package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
)

// CreateOrderInput is the payload accepted by POST /api/orders.
type CreateOrderInput struct {
	CustomerName string           `json:"customer_name" validate:"required"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Actor        *outbox.ActorRef `json:"-"`
}

// OrderItemInput is one requested product line. Price is the unit price
// recorded on the order, not read back from the product.
type OrderItemInput struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateStatusInput is the payload accepted by PUT /api/orders/{id}/status.
type UpdateStatusInput struct {
	Status string           `json:"status" validate:"required"`
	Actor  *outbox.ActorRef `json:"-"`
}

// OrderSummaryDTO is one row of the order list.
type OrderSummaryDTO struct {
	ID           int64             `json:"id"`
	CustomerName string            `json:"customer_name"`
	OrderDate    time.Time         `json:"order_date"`
	Status       enums.OrderStatus `json:"status"`
	Products     string            `json:"products"`
	Total        decimal.Decimal   `json:"total"`
	CreatedAt    time.Time         `json:"created_at"`
}

// OrderItemDTO is an order line with the product name resolved.
type OrderItemDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderDetailDTO is the composed order view.
type OrderDetailDTO struct {
	ID           int64             `json:"id"`
	CustomerName string            `json:"customer_name"`
	OrderDate    time.Time         `json:"order_date"`
	Status       enums.OrderStatus `json:"status"`
	Items        []OrderItemDTO    `json:"items"`
	Total        decimal.Decimal   `json:"total"`
	CreatedAt    time.Time         `json:"created_at"`
}

func productName(item models.OrderItem) string {
	if item.Product == nil {
		return ""
	}
	return item.Product.Name
}

func orderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func toSummary(order models.Order) OrderSummaryDTO {
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		if name := productName(item); name != "" {
			names = append(names, name)
		}
	}
	return OrderSummaryDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate,
		Status:       order.Status,
		Products:     strings.Join(names, ", "),
		Total:        orderTotal(order.Items),
		CreatedAt:    order.CreatedAt,
	}
}

func toDetail(order *models.Order) *OrderDetailDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: productName(item),
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return &OrderDetailDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate,
		Status:       order.Status,
		Items:        items,
		Total:        orderTotal(order.Items),
		CreatedAt:    order.CreatedAt,
	}
}
