package models

import "github.com/shopspring/decimal"

// UnitType identifies which unit table a billable object lives in
type UnitType string

const (
	UnitTypeApartment UnitType = "apartment"
	UnitTypeOffice    UnitType = "office"
	UnitTypeGarage    UnitType = "garage"
	UnitTypeRetail    UnitType = "retail"
)

// AllUnitTypes lists every billable unit type in merge order
var AllUnitTypes = []UnitType{UnitTypeApartment, UnitTypeOffice, UnitTypeGarage, UnitTypeRetail}

// Unit is a billable property object (apartment, office, garage or retail
// space) belonging to a building. Units are created via the building
// management screens; the fee engine only reads them.
type Unit struct {
	ID           int             `json:"id"`
	BuildingID   int             `json:"building_id"`
	ObjectNumber string          `json:"object_number"`
	Type         UnitType        `json:"type"`
	Floor        int             `json:"floor"`
	Area         decimal.Decimal `json:"area"`
	ClientID     *int            `json:"client_id"` // nil when the unit is vacant
}
