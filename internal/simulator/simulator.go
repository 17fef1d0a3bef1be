package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-fuel/internal/models"
	"github.com/ukydev/fleet-fuel/internal/registry"
)

// Per tick each vehicle burns between minBurn and maxBurn of its capacity.
const (
	minBurn     = 0.01
	maxBurn     = 0.10
	refillBelow = 5.0 // percent
)

// Options configures a simulation run.
type Options struct {
	Ticks int
	Seed  int64
	// OnReading, if set, receives a reading after every fuel operation.
	OnReading func(models.FuelReading)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Summary totals what a run did to the fleet.
type Summary struct {
	Ticks     int
	Consumed  float64
	Refuelled float64
	Refuels   int
}

// Run burns a random share of every vehicle's tank each tick and fills the
// tank back up once it drops below 5%. All changes go through the
// vehicle's own Refuel and Consume, so their bounds checks apply.
func Run(ctx context.Context, store registry.VehicleStore, opts Options, logger log.FieldLogger) (Summary, error) {
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	emit := func(v *models.Vehicle, op string, amount float64) {
		r := models.ReadingFor(v, op, amount, now())
		logger.WithFields(log.Fields{
			"vehicle_id": r.VehicleID,
			"op":         r.Op,
			"amount":     r.Amount,
			"fuel_pct":   r.FuelPct,
		}).Debug("Fuel reading")
		if opts.OnReading != nil {
			opts.OnReading(r)
		}
	}

	var sum Summary
	vehicles := store.Vehicles()
	logger.WithFields(log.Fields{
		"ticks":    opts.Ticks,
		"seed":     opts.Seed,
		"vehicles": len(vehicles),
	}).Info("Starting fuel simulation")

	for tick := 0; tick < opts.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		for _, v := range vehicles {
			burn := v.Fuel().Capacity * (minBurn + rng.Float64()*(maxBurn-minBurn))
			if burn > v.Fuel().Current {
				burn = v.Fuel().Current
			}
			if burn > 0 {
				if err := v.Consume(burn); err != nil {
					return sum, fmt.Errorf("tick %d: %w", tick, err)
				}
				sum.Consumed += burn
				emit(v, models.OpConsume, burn)
			}

			if v.Fuel().Percent() < refillBelow {
				added, err := fillUp(v)
				if err != nil {
					return sum, fmt.Errorf("tick %d: %w", tick, err)
				}
				if added > 0 {
					sum.Refuelled += added
					sum.Refuels++
					emit(v, models.OpRefuel, added)
				}
			}
		}
		sum.Ticks++
	}

	logger.WithFields(log.Fields{
		"ticks":     sum.Ticks,
		"consumed":  sum.Consumed,
		"refuelled": sum.Refuelled,
		"refuels":   sum.Refuels,
	}).Info("Fuel simulation finished")
	return sum, nil
}

// fillUp refuels v as close to capacity as float rounding allows.
func fillUp(v *models.Vehicle) (float64, error) {
	amount := v.Fuel().Headroom()
	for amount > 0 {
		err := v.Refuel(amount)
		if err == nil {
			return amount, nil
		}
		if !errors.Is(err, models.ErrCapacityExceeded) {
			return 0, err
		}
		amount = math.Nextafter(amount, 0)
	}
	return 0, nil
}
