package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStatus is the derived display status of a unit's ledger
type FeeStatus string

const (
	FeeStatusClean   FeeStatus = "clean"   // nothing outstanding
	FeeStatusPending FeeStatus = "pending" // only the current period is owed
	FeeStatusDebt    FeeStatus = "debt"    // unpaid balance predates the current period
)

// FeeRecord is one unit's billing row for one period. Unit identity is
// denormalized onto the row so history display survives unit mutation.
//
// TotalDue is per-period and not guaranteed to carry prior arrears forward;
// outstanding balance must always be computed by scanning the full history.
type FeeRecord struct {
	ID              int             `json:"id"`
	BuildingID      int             `json:"building_id"`
	ClientID        *int            `json:"client_id"`
	ObjectNumber    string          `json:"object_number"`
	Type            UnitType        `json:"type"`
	Floor           int             `json:"floor"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	CurrentMonthDue decimal.Decimal `json:"current_month_due"`
	TotalDue        decimal.Decimal `json:"total_due"`
	Paid            decimal.Decimal `json:"paid"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// Remaining returns max(total_due - paid, 0) for this period.
func (r *FeeRecord) Remaining() decimal.Decimal {
	rem := r.TotalDue.Sub(r.Paid)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// UnitIdentity is the tuple that defines "the same unit's ledger" across
// periods. A surrogate row id is not enough: a client may stop owning a unit
// or be reassigned, and history must follow the identity tuple.
type UnitIdentity struct {
	BuildingID   int      `json:"building_id"`
	ClientID     int      `json:"client_id"`
	ObjectNumber string   `json:"object_number"`
	Type         UnitType `json:"type"`
	Floor        int      `json:"floor"`
}
