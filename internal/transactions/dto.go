package transactions

import (
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
	"github.com/angelmondragon/inventory-backend/pkg/outbox"
)

// RecordInput is the payload accepted by POST /api/transactions.
type RecordInput struct {
	ProductID int64            `json:"product_id" validate:"gt=0"`
	Type      string           `json:"type" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	Actor     *outbox.ActorRef `json:"-"`
}

// TransactionDTO is a ledger row joined with its product name.
type TransactionDTO struct {
	ID          int64                 `json:"id"`
	ProductID   int64                 `json:"product_id"`
	ProductName string                `json:"product_name"`
	Type        enums.TransactionType `json:"type"`
	Quantity    int                   `json:"quantity"`
	CreatedAt   time.Time             `json:"created_at"`
}

// RecordResult is returned with 201 after a stock adjustment.
type RecordResult struct {
	Message     string          `json:"message"`
	ID          int64           `json:"id"`
	Transaction *TransactionDTO `json:"transaction"`
}

func FromModel(m *models.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
	if m.Product != nil {
		dto.ProductName = m.Product.Name
	}
	return dto
}
