package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fuel is the tank state shared by every vehicle kind.
// Current stays within [0, Capacity].
type Fuel struct {
	Capacity float64 `json:"capacity"` // litres
	Current  float64 `json:"current"`  // litres
}

// NewFuel validates a starting tank state.
func NewFuel(capacity, current float64) (Fuel, error) {
	if !(capacity > 0) || math.IsInf(capacity, 0) {
		return Fuel{}, fmt.Errorf("%w: fuel capacity must be a positive finite number", ErrInvalidVehicle)
	}
	if !(current >= 0) || current > capacity {
		return Fuel{}, fmt.Errorf("%w: current fuel %s outside [0, %s]", ErrInvalidVehicle, FormatAmount(current), FormatAmount(capacity))
	}
	return Fuel{Capacity: capacity, Current: current}, nil
}

// Refuel adds amount litres to the tank. NaN counts as a non-positive amount.
func (f *Fuel) Refuel(amount float64) error {
	if !(amount > 0) {
		return &FuelError{Op: OpRefuel, Amount: amount, Err: ErrInvalidAmount}
	}
	if f.Current+amount > f.Capacity {
		return &FuelError{Op: OpRefuel, Amount: amount, Err: ErrCapacityExceeded}
	}
	f.Current += amount
	return nil
}

// Consume removes amount litres from the tank.
func (f *Fuel) Consume(amount float64) error {
	if !(amount > 0) {
		return &FuelError{Op: OpConsume, Amount: amount, Err: ErrInvalidAmount}
	}
	if amount > f.Current {
		return &FuelError{Op: OpConsume, Amount: amount, Err: ErrInsufficientFuel}
	}
	f.Current -= amount
	return nil
}

// Headroom is how many litres still fit in the tank.
func (f Fuel) Headroom() float64 {
	return f.Capacity - f.Current
}

// Percent returns the fill level as a percentage of capacity.
func (f Fuel) Percent() float64 {
	if f.Capacity == 0 {
		return 0
	}
	return f.Current / f.Capacity * 100
}

// FormatAmount renders a real number with at least one fractional digit,
// so 50 prints as "50.0" and 20.5 as "20.5".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
