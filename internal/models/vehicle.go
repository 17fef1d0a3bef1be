package models

import (
	"fmt"
	"io"
	"strings"
)

// Kind tags which variant a Vehicle is.
type Kind string

const (
	KindCar   Kind = "car"
	KindBike  Kind = "bike"
	KindTruck Kind = "truck"
)

// Label is the heading printed above a vehicle's details.
func (k Kind) Label() string {
	switch k {
	case KindCar:
		return "Car"
	case KindBike:
		return "Bike"
	case KindTruck:
		return "Truck"
	default:
		return string(k)
	}
}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCar, KindBike, KindTruck:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidVehicle, s)
	}
}

// Vehicle represents a fleet vehicle. Only the payload matching Kind is
// meaningful. Every field is fixed at construction except the fuel level,
// which changes only through Refuel and Consume.
type Vehicle struct {
	id    string
	model string
	kind  Kind
	fuel  Fuel

	seats        int     // car
	bikeType     string  // bike
	loadCapacity float64 // truck, in tons
}

func newVehicle(kind Kind, id, model string, capacity, current float64) (*Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidVehicle)
	}
	fuel, err := NewFuel(capacity, current)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, err)
	}
	return &Vehicle{id: id, model: model, kind: kind, fuel: fuel}, nil
}

func (v *Vehicle) ID() string            { return v.id }
func (v *Vehicle) Model() string         { return v.model }
func (v *Vehicle) Kind() Kind            { return v.kind }
func (v *Vehicle) Seats() int            { return v.seats }
func (v *Vehicle) BikeType() string      { return v.bikeType }
func (v *Vehicle) LoadCapacity() float64 { return v.loadCapacity }

// Fuel returns a copy of the tank state.
func (v *Vehicle) Fuel() Fuel { return v.fuel }

// NewCar creates a car with the given seat count.
func NewCar(id, model string, capacity, current float64, seats int) (*Vehicle, error) {
	v, err := newVehicle(KindCar, id, model, capacity, current)
	if err != nil {
		return nil, err
	}
	v.seats = seats
	return v, nil
}

// NewBike creates a bike of the given type, e.g. "Sport".
func NewBike(id, model string, capacity, current float64, bikeType string) (*Vehicle, error) {
	v, err := newVehicle(KindBike, id, model, capacity, current)
	if err != nil {
		return nil, err
	}
	v.bikeType = bikeType
	return v, nil
}

// NewTruck creates a truck carrying up to loadCapacity tons.
func NewTruck(id, model string, capacity, current, loadCapacity float64) (*Vehicle, error) {
	v, err := newVehicle(KindTruck, id, model, capacity, current)
	if err != nil {
		return nil, err
	}
	v.loadCapacity = loadCapacity
	return v, nil
}

// Refuel adds fuel, rejecting non-positive amounts and overfills.
// The tank is untouched on error.
func (v *Vehicle) Refuel(amount float64) error {
	return v.tagError(v.fuel.Refuel(amount))
}

// Consume burns fuel, rejecting non-positive amounts and amounts larger
// than what is in the tank. The tank is untouched on error.
func (v *Vehicle) Consume(amount float64) error {
	return v.tagError(v.fuel.Consume(amount))
}

func (v *Vehicle) tagError(err error) error {
	if fe, ok := err.(*FuelError); ok {
		fe.VehicleID = v.id
	}
	return err
}

// Display writes the human-readable summary block for the vehicle.
func (v *Vehicle) Display(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintln(&b, v.kind.Label())
	fmt.Fprintf(&b, "ID: %s\n", v.id)
	fmt.Fprintf(&b, "Model: %s\n", v.model)
	switch v.kind {
	case KindCar:
		fmt.Fprintf(&b, "Seats: %d\n", v.seats)
	case KindBike:
		fmt.Fprintf(&b, "Type: %s\n", v.bikeType)
	case KindTruck:
		fmt.Fprintf(&b, "Load Capacity: %s tons\n", FormatAmount(v.loadCapacity))
	}
	fmt.Fprintf(&b, "Fuel Capacity: %s L\n", FormatAmount(v.fuel.Capacity))
	fmt.Fprintf(&b, "Current Fuel: %s L\n", FormatAmount(v.fuel.Current))
	b.WriteString("-----------------------------\n")

	_, err := io.WriteString(w, b.String())
	return err
}
