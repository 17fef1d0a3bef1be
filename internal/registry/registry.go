package registry

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-fuel/internal/models"
)

// VehicleStore defines the operations the drivers need from a fleet.
type VehicleStore interface {
	AddVehicle(v *models.Vehicle)
	FindVehicle(id string) (*models.Vehicle, error)
	Vehicles() []*models.Vehicle
	ShowAll(w io.Writer) error
}

// Registry is the in-memory, insertion-ordered fleet.
type Registry struct {
	vehicles []*models.Vehicle
	log      logrus.FieldLogger
}

// New creates an empty registry. A nil logger discards log output.
func New(log logrus.FieldLogger) *Registry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Registry{log: log}
}

// AddVehicle appends v. Duplicate ids are kept; lookups return the first.
func (r *Registry) AddVehicle(v *models.Vehicle) {
	fields := logrus.Fields{"vehicle_id": v.ID(), "kind": v.Kind(), "model": v.Model()}
	for _, existing := range r.vehicles {
		if existing.ID() == v.ID() {
			r.log.WithFields(fields).Warn("Duplicate vehicle id; earlier record shadows this one")
			break
		}
	}
	r.vehicles = append(r.vehicles, v)
	r.log.WithFields(fields).Debug("Added vehicle")
}

// FindVehicle returns the first vehicle with the given id.
func (r *Registry) FindVehicle(id string) (*models.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vehicle with ID %s: %w", id, models.ErrNotFound)
}

// Vehicles returns the records in insertion order.
func (r *Registry) Vehicles() []*models.Vehicle {
	out := make([]*models.Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out
}

// Len reports how many records are held.
func (r *Registry) Len() int {
	return len(r.vehicles)
}

// ShowAll writes every vehicle's display block in insertion order.
func (r *Registry) ShowAll(w io.Writer) error {
	for _, v := range r.vehicles {
		if err := v.Display(w); err != nil {
			return fmt.Errorf("display %s: %w", v.ID(), err)
		}
	}
	return nil
}
