package enums

import (
	"fmt"
	"strings"
)

// TransactionType maps to transactions.type.
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "sale"
	TransactionTypePurchase TransactionType = "purchase"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypePurchase,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// StockDelta returns the signed stock change for quantity units.
func (t TransactionType) StockDelta(quantity int) int {
	if t == TransactionTypeSale {
		return -quantity
	}
	return quantity
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validTransactionTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
