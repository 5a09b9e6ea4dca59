package transactions

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/internal/products"
	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
	"github.com/angelmondragon/inventory-backend/pkg/outbox/payloads"
)

const recordedMessage = "Transaction recorded"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service records stock movements and lists the ledger.
type Service interface {
	RecordTransaction(ctx context.Context, input RecordInput) (*RecordResult, error)
	ListTransactions(ctx context.Context) ([]TransactionDTO, error)
}

// ServiceParams bundles the dependencies for the stock ledger.
type ServiceParams struct {
	Repo     *Repository
	Products *products.Repository
	Tx       txRunner
	Outbox   outboxPublisher
	Metrics  *metrics.InventoryMetrics
	// AllowNegative lets sales drive stock below zero.
	AllowNegative bool
}

type service struct {
	repo          *Repository
	products      *products.Repository
	tx            txRunner
	outbox        outboxPublisher
	metrics       *metrics.InventoryMetrics
	allowNegative bool
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:          params.Repo,
		products:      params.Products,
		tx:            params.Tx,
		outbox:        params.Outbox,
		metrics:       params.Metrics,
		allowNegative: params.AllowNegative,
	}, nil
}

// RecordTransaction moves stock and appends the ledger row atomically.
func (s *service) RecordTransaction(ctx context.Context, input RecordInput) (*RecordResult, error) {
	kind, err := enums.ParseTransactionType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type must be sale or purchase")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be > 0")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be > 0")
	}

	var row models.Transaction
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		productRepo := s.products.WithTx(tx)

		applied, err := productRepo.AdjustStock(ctx, input.ProductID, kind.StockDelta(input.Quantity), !s.allowNegative)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjust stock")
		}
		if !applied {
			exists, err := productRepo.Exists(ctx, input.ProductID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeInternal, "product not found")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
		}

		ledger := s.repo.WithTx(tx)
		created := models.Transaction{
			ProductID: input.ProductID,
			Type:      kind,
			Quantity:  input.Quantity,
		}
		if err := ledger.Create(ctx, &created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record transaction")
		}

		// Reload with the product so the event carries the post-adjustment stock.
		loaded, err := ledger.FindByID(ctx, created.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load transaction")
		}
		row = *loaded
		product := loaded.Product
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeInternal, "transaction product missing")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventStockAdjusted,
			AggregateType: enums.AggregateProduct,
			AggregateID:   input.ProductID,
			Actor:         input.Actor,
			Data: payloads.StockAdjustedEvent{
				TransactionID: row.ID,
				ProductID:     input.ProductID,
				Type:          kind,
				Quantity:      input.Quantity,
				StockAfter:    product.Stock,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StockAdjusted(kind.String(), input.Quantity)
	dto := FromModel(&row)
	return &RecordResult{Message: recordedMessage, ID: row.ID, Transaction: &dto}, nil
}

func (s *service) ListTransactions(ctx context.Context) ([]TransactionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}
