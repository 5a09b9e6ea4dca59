package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
	"github.com/angelmondragon/inventory-backend/pkg/outbox/payloads"
)

const notFoundMessage = "order not found"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the order workflow.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDetailDTO, error)
	ListOrders(ctx context.Context) ([]OrderSummaryDTO, error)
	GetOrder(ctx context.Context, id int64) (*OrderDetailDTO, error)
	UpdateOrderStatus(ctx context.Context, id int64, input UpdateStatusInput) (*OrderDetailDTO, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// ServiceParams bundles the dependencies for the order workflow.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Outbox  outboxPublisher
	Metrics *metrics.InventoryMetrics
	// EnforceTransitions applies the Pending/Shipped/Delivered/Cancelled graph.
	EnforceTransitions bool
	Now                func() time.Time
}

type service struct {
	repo               Repository
	tx                 txRunner
	outbox             outboxPublisher
	metrics            *metrics.InventoryMetrics
	enforceTransitions bool
	now                func() time.Time
}

// NewService builds the order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:               params.Repo,
		tx:                 params.Tx,
		outbox:             params.Outbox,
		metrics:            params.Metrics,
		enforceTransitions: params.EnforceTransitions,
		now:                now,
	}, nil
}

func validateCreate(input CreateOrderInput) (string, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if len(input.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for i, item := range input.Items {
		switch {
		case item.ProductID <= 0:
			return "", pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].product_id must be > 0", i)
		case item.Quantity <= 0:
			return "", pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].quantity must be > 0", i)
		case item.Price.IsNegative():
			return "", pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].price must be >= 0", i)
		case !item.Price.Equal(item.Price.Round(2)):
			return "", pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].price must have at most 2 decimal places", i)
		}
	}
	return name, nil
}

// CreateOrder writes the order, its items, and the order_created event in
// one transaction.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDetailDTO, error) {
	name, err := validateCreate(input)
	if err != nil {
		return nil, err
	}

	var orderID int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := &models.Order{
			CustomerName: name,
			OrderDate:    s.now().UTC(),
			Status:       enums.OrderStatusPending,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		lines := make([]payloads.OrderLine, 0, len(input.Items))
		for _, in := range input.Items {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				Price:     in.Price,
			})
			lines = append(lines, payloads.OrderLine{ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}

		orderID = order.ID
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         input.Actor,
			OccurredAt:    order.OrderDate,
			Data: payloads.OrderCreatedEvent{
				OrderID:      order.ID,
				CustomerName: order.CustomerName,
				Status:       order.Status,
				Items:        lines,
				Total:        orderTotal(items),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrderCreated()
	return s.GetOrder(ctx, orderID)
}

func (s *service) ListOrders(ctx context.Context) ([]OrderSummaryDTO, error) {
	rows, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSummary(row))
	}
	return out, nil
}

func (s *service) GetOrder(ctx context.Context, id int64) (*OrderDetailDTO, error) {
	order, err := s.repo.FindOrderWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return toDetail(order), nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id int64, input UpdateStatusInput) (*OrderDetailDTO, error) {
	next, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be one of Pending, Shipped, Delivered, Cancelled")
	}

	changed := false
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if order.Status == next {
			return nil
		}
		if s.enforceTransitions && !order.Status.CanTransitionTo(next) {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot move order from %s to %s", order.Status, next)
		}

		found, err := repo.UpdateOrderStatus(ctx, id, next)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		changed = true

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   id,
			Actor:         input.Actor,
			Data: payloads.OrderStatusChangedEvent{
				OrderID: id,
				From:    order.Status,
				To:      next,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.metrics.OrderStatusChanged(next.String())
	}
	return s.GetOrder(ctx, id)
}

func (s *service) DeleteOrder(ctx context.Context, id int64) error {
	found, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return nil
}
