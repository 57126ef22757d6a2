package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// FeeSettingRepository stores per-building named numeric parameters, one
// value per (building, setting_key).
type FeeSettingRepository struct {
	DB *pgxpool.Pool
}

func NewFeeSettingRepository(db *pgxpool.Pool) *FeeSettingRepository {
	return &FeeSettingRepository{DB: db}
}

// GetValue reports ok=false when the setting is not configured.
func (r *FeeSettingRepository) GetValue(ctx context.Context, buildingID int, key string) (decimal.Decimal, bool, error) {
	query := `
		SELECT setting_value::text
		FROM fee_settings
		WHERE building_id = $1 AND setting_key = $2
	`

	var raw string
	err := r.DB.QueryRow(ctx, query, buildingID, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get fee setting %q: %w", key, err)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid fee setting value %q: %w", raw, err)
	}
	return value, true, nil
}

func (r *FeeSettingRepository) ListByBuilding(ctx context.Context, buildingID int) ([]*models.FeeSetting, error) {
	query := `
		SELECT id, building_id, setting_key, setting_value::text, updated_at
		FROM fee_settings
		WHERE building_id = $1
		ORDER BY setting_key
	`

	rows, err := r.DB.Query(ctx, query, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.FeeSetting
	for rows.Next() {
		s := &models.FeeSetting{}
		var raw string
		if err := rows.Scan(&s.ID, &s.BuildingID, &s.SettingKey, &raw, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.SettingValue, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid fee setting value %q: %w", raw, err)
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}

// Upsert creates a new setting or overwrites an existing one
func (r *FeeSettingRepository) Upsert(ctx context.Context, buildingID int, key string, value decimal.Decimal) error {
	query := `
		INSERT INTO fee_settings (building_id, setting_key, setting_value, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (building_id, setting_key)
		DO UPDATE SET setting_value = $3, updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.DB.Exec(ctx, query, buildingID, key, value.String())
	return err
}
