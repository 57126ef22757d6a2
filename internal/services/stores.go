package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// Store interfaces consumed by the fee and settlement engines. The pgx
// repositories satisfy them in production; tests use in-memory fakes.

type BuildingStore interface {
	GetByID(ctx context.Context, id int) (*models.Building, error)
}

type ExpenseStore interface {
	ListForPeriod(ctx context.Context, buildingID, month, year int) ([]models.Expense, error)
}

type UnitStore interface {
	// ListByBuilding merges every unit table (apartments, offices, garages,
	// retail spaces), tagging each row with its type label.
	ListByBuilding(ctx context.Context, buildingID int) ([]models.Unit, error)
}

type FeeSettingStore interface {
	// GetValue reports ok=false when the setting is absent for the building.
	GetValue(ctx context.Context, buildingID int, key string) (decimal.Decimal, bool, error)
}

type FeeRecordStore interface {
	// ReplaceForPeriod deletes every fee record for (building, month, year)
	// and inserts the given rows in a single transaction.
	ReplaceForPeriod(ctx context.Context, buildingID, month, year int, records []models.FeeRecord) error
	ListHistory(ctx context.Context, identity models.UnitIdentity) ([]models.FeeRecord, error)
	// ApplyPayment raises paid by up to amount, capped at
	// min(current_month_due, total_due - paid) against the row's state at
	// execution time, in one atomic statement. Returns paid before and after.
	ApplyPayment(ctx context.Context, recordID int, amount decimal.Decimal) (oldPaid, newPaid decimal.Decimal, err error)
	// SettleAllThrough sets paid = total_due for every period up to and
	// including (throughYear, throughMonth), atomically.
	SettleAllThrough(ctx context.Context, identity models.UnitIdentity, throughYear, throughMonth int) error
}
