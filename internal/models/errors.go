package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrCapacityExceeded = errors.New("fuel capacity exceeded")
	ErrInsufficientFuel = errors.New("not enough fuel")
	ErrNotFound         = errors.New("vehicle not found")
	ErrMalformedInput   = errors.New("malformed numeric input")
	ErrInvalidVehicle   = errors.New("invalid vehicle")
)

// Fuel operation names carried by FuelError.
const (
	OpRefuel  = "refuel"
	OpConsume = "consume"
)

// FuelError describes a rejected refuel or consume call.
type FuelError struct {
	Op        string
	VehicleID string
	Amount    float64
	Err       error
}

func (e *FuelError) Error() string {
	if e.VehicleID == "" {
		return fmt.Sprintf("%s %s L: %v", e.Op, FormatAmount(e.Amount), e.Err)
	}
	return fmt.Sprintf("%s %s L on %s: %v", e.Op, FormatAmount(e.Amount), e.VehicleID, e.Err)
}

func (e *FuelError) Unwrap() error {
	return e.Err
}
