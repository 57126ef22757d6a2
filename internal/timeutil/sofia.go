package timeutil

import (
	"time"
)

// Sofia is the building-local timezone used for billing periods.
var Sofia *time.Location

func init() {
	var err error
	Sofia, err = time.LoadLocation("Europe/Sofia")
	if err != nil {
		// Fallback: fixed EET offset if tzdata is unavailable
		Sofia = time.FixedZone("EET", 2*60*60)
	}
}

// Now returns the current time in building-local time
func Now() time.Time {
	return time.Now().In(Sofia)
}

// CurrentPeriod returns the (month, year) billing period that contains the
// current local time.
func CurrentPeriod() (month, year int) {
	now := Now()
	return int(now.Month()), now.Year()
}

// PeriodIndex orders periods chronologically: later periods compare greater.
func PeriodIndex(month, year int) int {
	return year*12 + (month - 1)
}

// Common layouts for display formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	PeriodLayout   = "01/2006"
)
