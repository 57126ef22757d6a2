package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	rec := FeeRecord{
		TotalDue: decimal.RequireFromString("100.00"),
		Paid:     decimal.RequireFromString("40.00"),
	}
	assert.Equal(t, "60.00", rec.Remaining().StringFixed(2))
}

func TestRemainingNeverNegative(t *testing.T) {
	rec := FeeRecord{
		TotalDue: decimal.RequireFromString("100.00"),
		Paid:     decimal.RequireFromString("120.00"),
	}
	assert.True(t, rec.Remaining().IsZero())
}

func TestFixedFeeKeyForType(t *testing.T) {
	assert.Equal(t, "fixed_fee_garage", FixedFeeKeyForType(UnitTypeGarage))
	assert.Equal(t, "fixed_fee_apartment", FixedFeeKeyForType(UnitTypeApartment))
}
