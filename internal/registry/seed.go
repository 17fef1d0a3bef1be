package registry

import (
	"fmt"

	"github.com/ukydev/fleet-fuel/internal/models"
)

// VehicleSpec describes one vehicle to create at startup. It is decoded
// from the "vehicles" list in the config file.
type VehicleSpec struct {
	Kind         string  `mapstructure:"kind"`
	ID           string  `mapstructure:"id"`
	Model        string  `mapstructure:"model"`
	Capacity     float64 `mapstructure:"capacity"`
	Current      float64 `mapstructure:"current"`
	Seats        int     `mapstructure:"seats"`
	Type         string  `mapstructure:"type"`
	LoadCapacity float64 `mapstructure:"load_capacity"`
}

// Build creates the vehicle the spec describes.
func (s VehicleSpec) Build() (*models.Vehicle, error) {
	kind, err := models.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case models.KindCar:
		return models.NewCar(s.ID, s.Model, s.Capacity, s.Current, s.Seats)
	case models.KindBike:
		return models.NewBike(s.ID, s.Model, s.Capacity, s.Current, s.Type)
	default:
		return models.NewTruck(s.ID, s.Model, s.Capacity, s.Current, s.LoadCapacity)
	}
}

// DefaultFleet is the sample fleet used when no vehicles are configured.
func DefaultFleet() []VehicleSpec {
	return []VehicleSpec{
		{Kind: "car", ID: "C1", Model: "Toyota", Capacity: 50, Current: 20, Seats: 5},
		{Kind: "bike", ID: "B1", Model: "Yamaha", Capacity: 15, Current: 8, Type: "Sport"},
		{Kind: "truck", ID: "T1", Model: "Volvo", Capacity: 150, Current: 90, LoadCapacity: 12},
	}
}

// Seed adds a vehicle for every spec, in order. It stops at the first
// spec that does not describe a valid vehicle.
func (r *Registry) Seed(specs []VehicleSpec) error {
	for i, s := range specs {
		v, err := s.Build()
		if err != nil {
			return fmt.Errorf("vehicles[%d]: %w", i, err)
		}
		r.AddVehicle(v)
	}
	return nil
}
