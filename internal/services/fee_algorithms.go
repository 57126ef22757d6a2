package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// feeAlgorithm computes the per-unit monthly due for one billing period.
// Implementations return one amount per unit, aligned with the input slice,
// already rounded to 2 decimal places.
type feeAlgorithm interface {
	computeDues(ctx context.Context, deps *FeeGenerationService, buildingID, month, year int, units []models.Unit) ([]decimal.Decimal, error)
}

var feeAlgorithms = map[string]feeAlgorithm{
	models.AlgorithmProportional: proportionalAlgorithm{},
	models.AlgorithmFixed:        fixedFeeAlgorithm{},
}

// proportionalAlgorithm splits the period's raw building expenses equally
// across all units regardless of type or size, then adds an area-proportional
// management fee on top. Both terms apply to every unit type.
type proportionalAlgorithm struct{}

func (proportionalAlgorithm) computeDues(ctx context.Context, deps *FeeGenerationService, buildingID, month, year int, units []models.Unit) ([]decimal.Decimal, error) {
	expenses, err := deps.Expenses.ListForPeriod(ctx, buildingID, month, year)
	if err != nil {
		return nil, &PersistenceError{Op: "list expenses", Err: err}
	}
	if len(expenses) == 0 {
		return nil, &NoExpensesError{BuildingID: buildingID, Month: month, Year: year}
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	ratePerM2, ok, err := deps.Settings.GetValue(ctx, buildingID, models.SettingManagementFeePerM2)
	if err != nil {
		return nil, &PersistenceError{Op: "get management fee rate", Err: err}
	}
	if !ok {
		return nil, &MissingRateError{BuildingID: buildingID, Key: models.SettingManagementFeePerM2}
	}

	baseShare := total.Div(decimal.NewFromInt(int64(len(units))))

	dues := make([]decimal.Decimal, len(units))
	for i, u := range units {
		dues[i] = baseShare.Add(u.Area.Mul(ratePerM2)).Round(2)
	}
	return dues, nil
}

// fixedFeeAlgorithm charges a flat pre-configured amount per unit,
// independent of expenses. The "fixed_fee" setting is the building-wide
// default; "fixed_fee_<type>" overrides it for a specific unit type.
type fixedFeeAlgorithm struct{}

func (fixedFeeAlgorithm) computeDues(ctx context.Context, deps *FeeGenerationService, buildingID, month, year int, units []models.Unit) ([]decimal.Decimal, error) {
	base, ok, err := deps.Settings.GetValue(ctx, buildingID, models.SettingFixedFee)
	if err != nil {
		return nil, &PersistenceError{Op: "get fixed fee", Err: err}
	}
	if !ok {
		return nil, &MissingRateError{BuildingID: buildingID, Key: models.SettingFixedFee}
	}

	// Per-type overrides are optional; look each type up once.
	overrides := make(map[models.UnitType]decimal.Decimal)
	for _, t := range models.AllUnitTypes {
		v, ok, err := deps.Settings.GetValue(ctx, buildingID, models.FixedFeeKeyForType(t))
		if err != nil {
			return nil, &PersistenceError{Op: "get fixed fee override", Err: err}
		}
		if ok {
			overrides[t] = v
		}
	}

	dues := make([]decimal.Decimal, len(units))
	for i, u := range units {
		amount := base
		if v, ok := overrides[u.Type]; ok {
			amount = v
		}
		dues[i] = amount.Round(2)
	}
	return dues, nil
}
