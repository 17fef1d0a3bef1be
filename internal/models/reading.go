package models

import (
	"time"
)

// FuelReading is a snapshot of one vehicle's tank after a fuel operation.
type FuelReading struct {
	VehicleID string    `json:"vehicle_id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Op        string    `json:"op"`     // OpRefuel or OpConsume
	Amount    float64   `json:"amount"` // litres moved by the operation
	FuelLevel float64   `json:"fuel_level"`
	FuelPct   float64   `json:"fuel_pct"`
}

// ReadingFor captures v's current tank state for an operation that just ran.
func ReadingFor(v *Vehicle, op string, amount float64, at time.Time) FuelReading {
	return FuelReading{
		VehicleID: v.ID(),
		Kind:      v.Kind(),
		Timestamp: at,
		Op:        op,
		Amount:    amount,
		FuelLevel: v.Fuel().Current,
		FuelPct:   v.Fuel().Percent(),
	}
}
