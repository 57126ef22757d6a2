package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known fee setting keys
const (
	SettingManagementFeePerM2 = "management_fee_m2"
	SettingFixedFee           = "fixed_fee"
)

// FixedFeeKeyForType returns the per-type override key for the fixed-fee
// algorithm, e.g. "fixed_fee_garage".
func FixedFeeKeyForType(t UnitType) string {
	return SettingFixedFee + "_" + string(t)
}

// FeeSetting is a per-building named numeric parameter, one value per
// (building, setting_key).
type FeeSetting struct {
	ID           int             `json:"id"`
	BuildingID   int             `json:"building_id"`
	SettingKey   string          `json:"setting_key"`
	SettingValue decimal.Decimal `json:"setting_value"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type UpsertFeeSettingRequest struct {
	BuildingID   int             `json:"building_id"`
	SettingKey   string          `json:"setting_key"`
	SettingValue decimal.Decimal `json:"setting_value"`
}
