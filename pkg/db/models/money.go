package models

import "github.com/shopspring/decimal"

func init() {
	// Prices render as JSON numbers, matching the client contract.
	decimal.MarshalJSONWithoutQuotes = true
}
