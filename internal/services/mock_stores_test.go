package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// memBuildingStore is a standalone fake because BuildingStore.GetByID and
// FeeRecordStore.GetByID have conflicting signatures.
type memBuildingStore map[int]*models.Building

func (m memBuildingStore) GetByID(ctx context.Context, id int) (*models.Building, error) {
	b, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("building %d not found", id)
	}
	return b, nil
}

// memStore is an in-memory implementation of the expense, unit, setting and
// fee record store interfaces.
type memStore struct {
	buildings memBuildingStore
	expenses  []models.Expense
	units     []models.Unit
	settings  map[string]decimal.Decimal
	records   []models.FeeRecord
	nextID    int

	replaceErr error
	applyErr   error

	// beforeApply runs at the start of ApplyPayment, standing in for a
	// concurrent writer that commits just before the statement executes.
	beforeApply func()
}

func newMemStore() *memStore {
	return &memStore{
		buildings: make(memBuildingStore),
		settings:  make(map[string]decimal.Decimal),
		nextID:    1,
	}
}

func settingKey(buildingID int, key string) string {
	return fmt.Sprintf("%d:%s", buildingID, key)
}

func (m *memStore) addBuilding(id int, algorithm string) {
	m.buildings[id] = &models.Building{ID: id, Name: fmt.Sprintf("Building %d", id), FeeAlgorithm: algorithm}
}

func (m *memStore) addExpense(buildingID, month, year int, amount string) {
	m.expenses = append(m.expenses, models.Expense{
		ID:         len(m.expenses) + 1,
		BuildingID: buildingID,
		Month:      month,
		Year:       year,
		Amount:     decimal.RequireFromString(amount),
	})
}

func (m *memStore) addUnit(buildingID int, clientID int, objectNumber string, unitType models.UnitType, floor int, area string) {
	cid := clientID
	m.units = append(m.units, models.Unit{
		ID:           len(m.units) + 1,
		BuildingID:   buildingID,
		ObjectNumber: objectNumber,
		Type:         unitType,
		Floor:        floor,
		Area:         decimal.RequireFromString(area),
		ClientID:     &cid,
	})
}

func (m *memStore) setSetting(buildingID int, key, value string) {
	m.settings[settingKey(buildingID, key)] = decimal.RequireFromString(value)
}

// addRecord seeds a historical fee row directly, bypassing generation.
func (m *memStore) addRecord(identity models.UnitIdentity, month, year int, due, paid string) int {
	cid := identity.ClientID
	rec := models.FeeRecord{
		ID:              m.nextID,
		BuildingID:      identity.BuildingID,
		ClientID:        &cid,
		ObjectNumber:    identity.ObjectNumber,
		Type:            identity.Type,
		Floor:           identity.Floor,
		Month:           month,
		Year:            year,
		CurrentMonthDue: decimal.RequireFromString(due),
		TotalDue:        decimal.RequireFromString(due),
		Paid:            decimal.RequireFromString(paid),
		GeneratedAt:     time.Now(),
	}
	m.nextID++
	m.records = append(m.records, rec)
	return rec.ID
}

func (m *memStore) recordsForPeriod(buildingID, month, year int) []models.FeeRecord {
	var out []models.FeeRecord
	for _, rec := range m.records {
		if rec.BuildingID == buildingID && rec.Month == month && rec.Year == year {
			out = append(out, rec)
		}
	}
	return out
}

func (m *memStore) GetByID(ctx context.Context, id int) (*models.FeeRecord, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("fee record %d not found", id)
}

func (m *memStore) ListForPeriod(ctx context.Context, buildingID, month, year int) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range m.expenses {
		if e.BuildingID == buildingID && e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) ListByBuilding(ctx context.Context, buildingID int) ([]models.Unit, error) {
	var out []models.Unit
	for _, u := range m.units {
		if u.BuildingID == buildingID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) GetValue(ctx context.Context, buildingID int, key string) (decimal.Decimal, bool, error) {
	v, ok := m.settings[settingKey(buildingID, key)]
	if !ok {
		return decimal.Zero, false, nil
	}
	return v, true, nil
}

func (m *memStore) ReplaceForPeriod(ctx context.Context, buildingID, month, year int, records []models.FeeRecord) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}

	var kept []models.FeeRecord
	for _, rec := range m.records {
		if rec.BuildingID == buildingID && rec.Month == month && rec.Year == year {
			continue
		}
		kept = append(kept, rec)
	}
	for _, rec := range records {
		rec.ID = m.nextID
		m.nextID++
		kept = append(kept, rec)
	}
	m.records = kept
	return nil
}

func (m *memStore) ListHistory(ctx context.Context, identity models.UnitIdentity) ([]models.FeeRecord, error) {
	var out []models.FeeRecord
	for _, rec := range m.records {
		if rec.BuildingID != identity.BuildingID ||
			rec.ObjectNumber != identity.ObjectNumber ||
			rec.Type != identity.Type ||
			rec.Floor != identity.Floor {
			continue
		}
		if rec.ClientID == nil || *rec.ClientID != identity.ClientID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// ApplyPayment mirrors the repository's single-statement clamp: the cap is
// evaluated against the record's state at call time, never a stale copy.
func (m *memStore) ApplyPayment(ctx context.Context, recordID int, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if m.applyErr != nil {
		return decimal.Zero, decimal.Zero, m.applyErr
	}
	if m.beforeApply != nil {
		m.beforeApply()
	}
	for i := range m.records {
		rec := &m.records[i]
		if rec.ID != recordID {
			continue
		}
		oldPaid := rec.Paid

		capped := amount
		if rec.CurrentMonthDue.LessThan(capped) {
			capped = rec.CurrentMonthDue
		}
		newPaid := oldPaid.Add(capped)
		if rec.TotalDue.LessThan(newPaid) {
			newPaid = rec.TotalDue
		}
		if newPaid.LessThan(oldPaid) {
			newPaid = oldPaid
		}

		rec.Paid = newPaid
		return oldPaid, newPaid, nil
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("fee record %d not found", recordID)
}

func (m *memStore) SettleAllThrough(ctx context.Context, identity models.UnitIdentity, throughYear, throughMonth int) error {
	for i := range m.records {
		rec := &m.records[i]
		if rec.BuildingID != identity.BuildingID ||
			rec.ObjectNumber != identity.ObjectNumber ||
			rec.Type != identity.Type ||
			rec.Floor != identity.Floor {
			continue
		}
		if rec.ClientID == nil || *rec.ClientID != identity.ClientID {
			continue
		}
		if rec.Year*12+rec.Month > throughYear*12+throughMonth {
			continue
		}
		if rec.Paid.LessThan(rec.TotalDue) {
			rec.Paid = rec.TotalDue
		}
	}
	return nil
}

// newGenerationService wires a FeeGenerationService over one memStore.
func newGenerationService(m *memStore) *FeeGenerationService {
	return NewFeeGenerationService(m.buildings, m, m, m, m)
}
