package models

import "time"

// Fee generation algorithms selectable per building
const (
	AlgorithmProportional = "proportional"
	AlgorithmFixed        = "fixed"
)

type Building struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	FeeAlgorithm string    `json:"fee_algorithm"`
	CreatedAt    time.Time `json:"created_at"`
}
