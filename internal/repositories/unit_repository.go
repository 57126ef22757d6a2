package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// UnitRepository merges the four unit tables into one billable-unit list.
// Units are created and removed by the building management screens; the fee
// engine treats them as read-only.
type UnitRepository struct {
	DB *pgxpool.Pool
}

func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{DB: db}
}

// ListByBuilding returns every unit in the building across all unit-type
// tables, each row tagged with its type label.
func (r *UnitRepository) ListByBuilding(ctx context.Context, buildingID int) ([]models.Unit, error) {
	query := `
		SELECT id, building_id, object_number, 'apartment' AS unit_type, floor, area::text, client_id
		FROM apartments WHERE building_id = $1
		UNION ALL
		SELECT id, building_id, object_number, 'office', floor, area::text, client_id
		FROM offices WHERE building_id = $1
		UNION ALL
		SELECT id, building_id, object_number, 'garage', floor, area::text, client_id
		FROM garages WHERE building_id = $1
		UNION ALL
		SELECT id, building_id, object_number, 'retail', floor, area::text, client_id
		FROM retail_spaces WHERE building_id = $1
		ORDER BY unit_type, object_number
	`

	rows, err := r.DB.Query(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units for building %d: %w", buildingID, err)
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var u models.Unit
		var area string
		if err := rows.Scan(&u.ID, &u.BuildingID, &u.ObjectNumber, &u.Type, &u.Floor, &area, &u.ClientID); err != nil {
			return nil, err
		}
		u.Area, err = decimal.NewFromString(area)
		if err != nil {
			return nil, fmt.Errorf("invalid area %q for unit %s: %w", area, u.ObjectNumber, err)
		}
		units = append(units, u)
	}

	return units, rows.Err()
}
