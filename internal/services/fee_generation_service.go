package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// FeeGenerationService computes and writes the monthly fee rows for a
// building. Generation is destructive-idempotent: re-running it for the same
// period replaces the period's rows wholesale, discarding any payments or
// manual edits already recorded against them.
type FeeGenerationService struct {
	Buildings BuildingStore
	Expenses  ExpenseStore
	Units     UnitStore
	Settings  FeeSettingStore
	Fees      FeeRecordStore
}

func NewFeeGenerationService(buildings BuildingStore, expenses ExpenseStore, units UnitStore, settings FeeSettingStore, fees FeeRecordStore) *FeeGenerationService {
	return &FeeGenerationService{
		Buildings: buildings,
		Expenses:  expenses,
		Units:     units,
		Settings:  settings,
		Fees:      fees,
	}
}

// GenerateFees computes each unit's due for (buildingID, month, year) and
// replaces the period's fee rows. An empty algorithm name falls back to the
// building's configured algorithm, then to proportional. Every precondition
// failure aborts before any row is touched.
func (s *FeeGenerationService) GenerateFees(ctx context.Context, buildingID, month, year int, algorithm string) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("invalid month %d", month)
	}
	if year < 2000 || year > 2200 {
		return 0, fmt.Errorf("invalid year %d", year)
	}

	building, err := s.Buildings.GetByID(ctx, buildingID)
	if err != nil {
		return 0, &PersistenceError{Op: "get building", Err: err}
	}

	if algorithm == "" {
		algorithm = building.FeeAlgorithm
	}
	if algorithm == "" {
		algorithm = models.AlgorithmProportional
	}
	algo, ok := feeAlgorithms[algorithm]
	if !ok {
		return 0, &UnknownAlgorithmError{Name: algorithm}
	}

	units, err := s.Units.ListByBuilding(ctx, buildingID)
	if err != nil {
		return 0, &PersistenceError{Op: "list units", Err: err}
	}
	if len(units) == 0 {
		return 0, &NoUnitsError{BuildingID: buildingID}
	}

	dues, err := algo.computeDues(ctx, s, buildingID, month, year, units)
	if err != nil {
		return 0, err
	}

	// A freshly generated row never carries prior arrears: total_due equals
	// current_month_due and paid starts at zero. Outstanding balance across
	// periods is the settlement engine's job.
	now := time.Now()
	records := make([]models.FeeRecord, len(units))
	for i, u := range units {
		records[i] = models.FeeRecord{
			BuildingID:      buildingID,
			ClientID:        u.ClientID,
			ObjectNumber:    u.ObjectNumber,
			Type:            u.Type,
			Floor:           u.Floor,
			Month:           month,
			Year:            year,
			CurrentMonthDue: dues[i],
			TotalDue:        dues[i],
			Paid:            decimal.Zero,
			GeneratedAt:     now,
		}
	}

	if err := s.Fees.ReplaceForPeriod(ctx, buildingID, month, year, records); err != nil {
		return 0, &PersistenceError{Op: "replace fee records", Err: err}
	}

	log.Printf("[Fees] Generated %d fee rows for building %d, period %02d/%d (%s)", len(records), buildingID, month, year, algorithm)
	return len(records), nil
}
