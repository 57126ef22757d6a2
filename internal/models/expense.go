package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a recorded building-level cost for one billing period.
// Multiple expenses may exist per (building, month, year).
type Expense struct {
	ID         int             `json:"id"`
	BuildingID int             `json:"building_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CreateExpenseRequest struct {
	BuildingID int             `json:"building_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
}
