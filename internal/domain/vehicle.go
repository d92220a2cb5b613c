package domain

import "time"

// TradingVehicle is a traded instrument (§3).
type TradingVehicle struct {
	ID        ID
	Symbol    string
	ISIN      string // unique
	Category  VehicleCategory
	Broker    string // free-form
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
