package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPeriodIsValid(t *testing.T) {
	month, year := CurrentPeriod()
	assert.GreaterOrEqual(t, month, 1)
	assert.LessOrEqual(t, month, 12)
	assert.GreaterOrEqual(t, year, 2020)
}

func TestPeriodIndexOrdersAcrossYears(t *testing.T) {
	assert.Less(t, PeriodIndex(12, 2025), PeriodIndex(1, 2026))
	assert.Equal(t, PeriodIndex(1, 2026)+1, PeriodIndex(2, 2026))
}
