package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// Repository defines persistence operations for the orders and order_items tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	FindOrder(ctx context.Context, id int64) (*models.Order, error)
	FindOrderWithItems(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) (bool, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)
}
