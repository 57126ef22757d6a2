package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// settlementTolerance absorbs 2-dp rounding noise when deciding whether a
// unit is fully settled.
var settlementTolerance = decimal.NewFromFloat(0.01)

// SettlementService applies payments against a unit's fee history and
// computes its authoritative outstanding balance.
type SettlementService struct {
	Fees FeeRecordStore
}

func NewSettlementService(fees FeeRecordStore) *SettlementService {
	return &SettlementService{Fees: fees}
}

// PaymentResult reports what a payment actually did. NothingToPay is an
// informational no-op, not an error; Clamped marks a rejected overpayment
// portion.
type PaymentResult struct {
	RecordID     int             `json:"record_id"`
	Applied      decimal.Decimal `json:"applied"`
	NewPaid      decimal.Decimal `json:"new_paid"`
	NothingToPay bool            `json:"nothing_to_pay"`
	Clamped      bool            `json:"clamped"`
}

// ComputeOutstanding sums max(total_due - paid, 0) over the full history.
// This is the single source of truth for arrears: per-row total_due is not
// trusted to carry prior periods forward.
func (s *SettlementService) ComputeOutstanding(history []models.FeeRecord) decimal.Decimal {
	total := decimal.Zero
	for i := range history {
		total = total.Add(history[i].Remaining())
	}
	return total
}

// History returns the unit's fee rows ordered by (year, month) together with
// the outstanding total.
func (s *SettlementService) History(ctx context.Context, identity models.UnitIdentity) ([]models.FeeRecord, decimal.Decimal, error) {
	history, err := s.Fees.ListHistory(ctx, identity)
	if err != nil {
		return nil, decimal.Zero, &PersistenceError{Op: "list fee history", Err: err}
	}
	return history, s.ComputeOutstanding(history), nil
}

// PayCurrentPeriod applies a payment against a single period's row. The
// applied amount is capped at min(current_month_due, total_due - paid);
// anything beyond that is clamped rather than letting paid exceed
// total_due. Other periods are never touched.
//
// The cap runs inside the store's atomic statement, against the row's state
// at execution time. Reading paid here and writing back an absolute value
// would let a concurrent settle-all slip in between and be overwritten.
func (s *SettlementService) PayCurrentPeriod(ctx context.Context, recordID int, amount decimal.Decimal) (*PaymentResult, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	oldPaid, newPaid, err := s.Fees.ApplyPayment(ctx, recordID, amount)
	if err != nil {
		return nil, &PersistenceError{Op: "apply payment", Err: err}
	}

	applied := newPaid.Sub(oldPaid)
	if !applied.IsPositive() {
		return &PaymentResult{RecordID: recordID, NewPaid: newPaid, NothingToPay: true}, nil
	}

	log.Printf("[Settlement] Applied %s to fee record %d (paid now %s)", applied.StringFixed(2), recordID, newPaid.StringFixed(2))
	return &PaymentResult{RecordID: recordID, Applied: applied, NewPaid: newPaid, Clamped: applied.LessThan(amount)}, nil
}

// PayAllOutstanding zeroes the unit's arrears through the reference period in
// one server-side statement. Partial application across some-but-not-all
// periods would corrupt concurrent outstanding reads, so the store must apply
// it atomically.
func (s *SettlementService) PayAllOutstanding(ctx context.Context, identity models.UnitIdentity, throughYear, throughMonth int) error {
	if err := s.Fees.SettleAllThrough(ctx, identity, throughYear, throughMonth); err != nil {
		return &PersistenceError{Op: "settle all outstanding", Err: err}
	}
	log.Printf("[Settlement] Settled all periods through %02d/%d for unit %s/%s in building %d",
		throughMonth, throughYear, identity.ObjectNumber, identity.Type, identity.BuildingID)
	return nil
}

// DeriveStatus classifies a unit's ledger for display. "debt" means the
// outstanding balance exceeds what the reference period alone still owes,
// implying unpaid history predates it.
func (s *SettlementService) DeriveStatus(history []models.FeeRecord, month, year int) models.FeeStatus {
	outstanding := s.ComputeOutstanding(history)
	if outstanding.LessThanOrEqual(settlementTolerance) {
		return models.FeeStatusClean
	}

	currentRemaining := decimal.Zero
	for i := range history {
		if history[i].Month == month && history[i].Year == year {
			currentRemaining = history[i].Remaining()
			break
		}
	}
	if outstanding.GreaterThan(currentRemaining.Add(settlementTolerance)) {
		return models.FeeStatusDebt
	}
	return models.FeeStatusPending
}
