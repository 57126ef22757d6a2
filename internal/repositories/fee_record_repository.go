package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

const feeRecordColumns = `
	id, building_id, client_id, object_number, unit_type, floor, month, year,
	current_month_due::text, total_due::text, paid::text, generated_at
`

// FeeRecordRepository is the fee ledger store: one row per (unit, period),
// written in bulk by generation and mutated (paid only) by settlement.
type FeeRecordRepository struct {
	DB *pgxpool.Pool
}

func NewFeeRecordRepository(db *pgxpool.Pool) *FeeRecordRepository {
	return &FeeRecordRepository{DB: db}
}

// ReplaceForPeriod deletes every fee row for (building, month, year) and
// inserts the new rows inside one transaction. If the insert fails the
// delete rolls back with it; the period is never left half-written.
func (r *FeeRecordRepository) ReplaceForPeriod(ctx context.Context, buildingID, month, year int, records []models.FeeRecord) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"DELETE FROM fee_records WHERE building_id = $1 AND month = $2 AND year = $3",
		buildingID, month, year,
	)
	if err != nil {
		return fmt.Errorf("failed to delete fee records for period: %w", err)
	}

	for i := range records {
		rec := &records[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO fee_records (
				building_id, client_id, object_number, unit_type, floor,
				month, year, current_month_due, total_due, paid, generated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rec.BuildingID, rec.ClientID, rec.ObjectNumber, rec.Type, rec.Floor,
			rec.Month, rec.Year,
			rec.CurrentMonthDue.String(), rec.TotalDue.String(), rec.Paid.String(),
			rec.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert fee record for unit %s: %w", rec.ObjectNumber, err)
		}
	}

	return tx.Commit(ctx)
}

// ApplyPayment folds the payment cap into a single UPDATE so the arithmetic
// always runs against the row's current state. A read-modify-write here would
// let a concurrent settle-all land between the read and the write and be
// overwritten by a stale absolute paid value.
//
// The applied amount is min(amount, current_month_due, total_due - paid);
// GREATEST keeps an already overpaid row untouched.
func (r *FeeRecordRepository) ApplyPayment(ctx context.Context, recordID int, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		UPDATE fee_records AS rec
		SET paid = GREATEST(rec.paid, LEAST(rec.total_due, rec.paid + LEAST($1::numeric, rec.current_month_due)))
		FROM fee_records AS prev
		WHERE rec.id = $2 AND prev.id = rec.id
		RETURNING prev.paid::text, rec.paid::text
	`

	var oldRaw, newRaw string
	err := r.DB.QueryRow(ctx, query, amount.String(), recordID).Scan(&oldRaw, &newRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to apply payment to record %d: %w", recordID, err)
	}

	oldPaid, err := decimal.NewFromString(oldRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid paid %q: %w", oldRaw, err)
	}
	newPaid, err := decimal.NewFromString(newRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid paid %q: %w", newRaw, err)
	}
	return oldPaid, newPaid, nil
}

// ListHistory returns the full fee history for one unit identity, ordered by
// period. The identity tuple, not a surrogate id, defines the unit's ledger.
func (r *FeeRecordRepository) ListHistory(ctx context.Context, identity models.UnitIdentity) ([]models.FeeRecord, error) {
	query := "SELECT " + feeRecordColumns + `
		FROM fee_records
		WHERE building_id = $1 AND client_id = $2 AND object_number = $3
		  AND unit_type = $4 AND floor = $5
		ORDER BY year, month
	`

	rows, err := r.DB.Query(ctx, query,
		identity.BuildingID, identity.ClientID, identity.ObjectNumber, identity.Type, identity.Floor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee history: %w", err)
	}
	defer rows.Close()

	var history []models.FeeRecord
	for rows.Next() {
		rec, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, *rec)
	}

	return history, rows.Err()
}

// ListForPeriod returns every fee row generated for (building, month, year).
func (r *FeeRecordRepository) ListForPeriod(ctx context.Context, buildingID, month, year int) ([]models.FeeRecord, error) {
	query := "SELECT " + feeRecordColumns + `
		FROM fee_records
		WHERE building_id = $1 AND month = $2 AND year = $3
		ORDER BY unit_type, object_number
	`

	rows, err := r.DB.Query(ctx, query, buildingID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee records for period: %w", err)
	}
	defer rows.Close()

	var records []models.FeeRecord
	for rows.Next() {
		rec, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// SettleAllThrough calls the settle_all_fees database function, which sets
// paid = total_due across every period of the unit's history up through the
// reference period in one transaction.
func (r *FeeRecordRepository) SettleAllThrough(ctx context.Context, identity models.UnitIdentity, throughYear, throughMonth int) error {
	_, err := r.DB.Exec(ctx,
		"SELECT settle_all_fees($1, $2, $3, $4, $5, $6, $7)",
		identity.BuildingID, identity.ClientID, identity.ObjectNumber, identity.Type, identity.Floor,
		throughYear, throughMonth,
	)
	if err != nil {
		return fmt.Errorf("failed to settle fee history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeeRecord(row rowScanner) (*models.FeeRecord, error) {
	rec := &models.FeeRecord{}
	var due, total, paid string
	err := row.Scan(
		&rec.ID, &rec.BuildingID, &rec.ClientID, &rec.ObjectNumber, &rec.Type, &rec.Floor,
		&rec.Month, &rec.Year, &due, &total, &paid, &rec.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}

	if rec.CurrentMonthDue, err = decimal.NewFromString(due); err != nil {
		return nil, fmt.Errorf("invalid current_month_due %q: %w", due, err)
	}
	if rec.TotalDue, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("invalid total_due %q: %w", total, err)
	}
	if rec.Paid, err = decimal.NewFromString(paid); err != nil {
		return nil, fmt.Errorf("invalid paid %q: %w", paid, err)
	}
	return rec, nil
}
