package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

func TestGenerateFeesProportional(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "200.00")
	store.addExpense(1, 1, 2026, "100.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.addUnit(1, 11, "A2", models.UnitTypeApartment, 2, "100.00")
	store.setSetting(1, models.SettingManagementFeePerM2, "1.00")

	svc := newGenerationService(store)
	count, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records := store.recordsForPeriod(1, 1, 2026)
	require.Len(t, records, 2)

	// 300 total split across 2 units gives a 150 base share, plus area * rate
	byObject := map[string]models.FeeRecord{}
	for _, rec := range records {
		byObject[rec.ObjectNumber] = rec
	}
	assert.Equal(t, "200.00", byObject["A1"].CurrentMonthDue.StringFixed(2))
	assert.Equal(t, "250.00", byObject["A2"].CurrentMonthDue.StringFixed(2))

	for _, rec := range records {
		assert.Equal(t, rec.CurrentMonthDue.StringFixed(2), rec.TotalDue.StringFixed(2))
		assert.True(t, rec.Paid.IsZero())
	}
}

func TestGenerateFeesRoundsToTwoDecimals(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 3, 2026, "100.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "33.33")
	store.addUnit(1, 11, "A2", models.UnitTypeApartment, 1, "33.33")
	store.addUnit(1, 12, "A3", models.UnitTypeApartment, 2, "33.34")
	store.setSetting(1, models.SettingManagementFeePerM2, "0.75")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 3, 2026, "")
	require.NoError(t, err)

	// 100/3 + 33.33*0.75 = 33.3333... + 24.9975 = 58.3308... -> 58.33
	records := store.recordsForPeriod(1, 3, 2026)
	require.Len(t, records, 3)
	assert.Equal(t, "58.33", records[0].CurrentMonthDue.StringFixed(2))
}

func TestGenerateFeesFixedAlgorithm(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmFixed)
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.addUnit(1, 10, "G1", models.UnitTypeGarage, -1, "18.00")
	store.setSetting(1, models.SettingFixedFee, "25.00")
	store.setSetting(1, models.FixedFeeKeyForType(models.UnitTypeGarage), "10.00")

	// No expenses entered: fixed fees do not depend on them
	svc := newGenerationService(store)
	count, err := svc.GenerateFees(context.Background(), 1, 2, 2026, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	byObject := map[string]models.FeeRecord{}
	for _, rec := range store.recordsForPeriod(1, 2, 2026) {
		byObject[rec.ObjectNumber] = rec
	}
	assert.Equal(t, "25.00", byObject["A1"].CurrentMonthDue.StringFixed(2))
	assert.Equal(t, "10.00", byObject["G1"].CurrentMonthDue.StringFixed(2))
}

func TestGenerateFeesExplicitAlgorithmOverridesBuilding(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.setSetting(1, models.SettingFixedFee, "30.00")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 1, 2026, models.AlgorithmFixed)
	require.NoError(t, err)

	records := store.recordsForPeriod(1, 1, 2026)
	require.Len(t, records, 1)
	assert.Equal(t, "30.00", records[0].CurrentMonthDue.StringFixed(2))
}

func TestGenerateFeesReplacesExistingPeriod(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "300.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.addUnit(1, 11, "A2", models.UnitTypeApartment, 2, "100.00")
	store.setSetting(1, models.SettingManagementFeePerM2, "1.00")

	svc := newGenerationService(store)
	ctx := context.Background()

	_, err := svc.GenerateFees(ctx, 1, 1, 2026, "")
	require.NoError(t, err)

	// Record a payment, then regenerate: the period is replaced wholesale
	// and the payment is discarded.
	first := store.recordsForPeriod(1, 1, 2026)[0]
	_, _, err = store.ApplyPayment(ctx, first.ID, first.CurrentMonthDue)
	require.NoError(t, err)

	_, err = svc.GenerateFees(ctx, 1, 1, 2026, "")
	require.NoError(t, err)

	records := store.recordsForPeriod(1, 1, 2026)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.True(t, rec.Paid.IsZero())
	}
}

func TestGenerateFeesLeavesOtherPeriodsAlone(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "300.00")
	store.addExpense(1, 2, 2026, "500.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.setSetting(1, models.SettingManagementFeePerM2, "1.00")

	svc := newGenerationService(store)
	ctx := context.Background()

	_, err := svc.GenerateFees(ctx, 1, 1, 2026, "")
	require.NoError(t, err)
	january := store.recordsForPeriod(1, 1, 2026)
	require.Len(t, january, 1)

	_, err = svc.GenerateFees(ctx, 1, 2, 2026, "")
	require.NoError(t, err)

	assert.Equal(t, "350.00", store.recordsForPeriod(1, 1, 2026)[0].CurrentMonthDue.StringFixed(2))
	assert.Equal(t, "550.00", store.recordsForPeriod(1, 2, 2026)[0].CurrentMonthDue.StringFixed(2))
}

func TestGenerateFeesNoExpenses(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.setSetting(1, models.SettingManagementFeePerM2, "1.00")

	svc := newGenerationService(store)
	count, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")

	var noExpenses *NoExpensesError
	require.ErrorAs(t, err, &noExpenses)
	assert.Equal(t, 1, noExpenses.BuildingID)
	assert.Equal(t, 0, count)
	assert.Empty(t, store.recordsForPeriod(1, 1, 2026))
}

func TestGenerateFeesNoUnits(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "300.00")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")

	var noUnits *NoUnitsError
	require.ErrorAs(t, err, &noUnits)
	assert.Empty(t, store.recordsForPeriod(1, 1, 2026))
}

func TestGenerateFeesMissingRate(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "300.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")

	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.SettingManagementFeePerM2, missing.Key)
	assert.Empty(t, store.recordsForPeriod(1, 1, 2026))
}

func TestGenerateFeesMissingFixedFee(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmFixed)
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")

	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.SettingFixedFee, missing.Key)
}

func TestGenerateFeesUnknownAlgorithm(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, "")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")

	svc := newGenerationService(store)
	_, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "quadratic")

	var unknown *UnknownAlgorithmError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "quadratic", unknown.Name)
}

func TestGenerateFeesInvalidPeriod(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)

	svc := newGenerationService(store)

	_, err := svc.GenerateFees(context.Background(), 1, 13, 2026, "")
	assert.Error(t, err)

	_, err = svc.GenerateFees(context.Background(), 1, 1, 1999, "")
	assert.Error(t, err)
}

func TestGenerateFeesPersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.addBuilding(1, models.AlgorithmProportional)
	store.addExpense(1, 1, 2026, "300.00")
	store.addUnit(1, 10, "A1", models.UnitTypeApartment, 1, "50.00")
	store.setSetting(1, models.SettingManagementFeePerM2, "1.00")
	store.replaceErr = errors.New("connection reset")

	svc := newGenerationService(store)
	count, err := svc.GenerateFees(context.Background(), 1, 1, 2026, "")

	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, 0, count)
	assert.Empty(t, store.recordsForPeriod(1, 1, 2026))
}
