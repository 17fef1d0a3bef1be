package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-fuel/internal/models"
	"github.com/ukydev/fleet-fuel/internal/registry"
)

// Menu choices.
const (
	choiceShowAll = 1
	choiceRefuel  = 2
	choiceConsume = 3
	choiceExit    = 4
)

const menu = `
===== Vehicle Fuel Management System =====
1. Show All Vehicles
2. Refuel a Vehicle
3. Use Fuel
4. Exit
Enter your choice: `

// Driver runs the interactive fuel menu over a vehicle store.
type Driver struct {
	store registry.VehicleStore
	in    *bufio.Scanner
	out   io.Writer
	log   logrus.FieldLogger

	lines <-chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewDriver creates a driver reading answers from in and writing prompts
// and results to out.
func NewDriver(store registry.VehicleStore, in io.Reader, out io.Writer, log logrus.FieldLogger) *Driver {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Driver{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
	}
}

// Run loops until the exit choice, end of input, or ctx is cancelled.
// Validation failures are printed and the loop continues; only I/O
// errors and ctx.Err() are returned. Cancellation also interrupts a
// prompt that is waiting for input. Run must not be called twice.
func (d *Driver) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	d.lines = d.scan(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(d.out, menu)
		choice, err := d.readChoice(ctx)
		switch {
		case errors.Is(err, io.EOF):
			d.log.Info("Input closed; leaving menu")
			return nil
		case errors.Is(err, models.ErrMalformedInput):
			d.report(err, "")
			continue
		case err != nil:
			return err
		}

		switch choice {
		case choiceShowAll:
			fmt.Fprintln(d.out, "\n--- Vehicle List ---")
			err = d.store.ShowAll(d.out)
		case choiceRefuel:
			err = d.fuelOp(ctx, models.OpRefuel)
		case choiceConsume:
			err = d.fuelOp(ctx, models.OpConsume)
		case choiceExit:
			fmt.Fprintln(d.out, "Exiting system...")
			return nil
		default:
			fmt.Fprintln(d.out, "Invalid choice. Try again.")
		}

		if errors.Is(err, io.EOF) {
			d.log.Info("Input closed; leaving menu")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fuelOp handles the refuel and consume menu entries. Domain failures are
// reported to the user; the returned error is reserved for input errors.
func (d *Driver) fuelOp(ctx context.Context, op string) error {
	fmt.Fprintf(d.out, "\nEnter Vehicle ID (%s): ", d.knownIDs())
	line, err := d.next(ctx)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(line)

	v, err := d.store.FindVehicle(id)
	if err != nil {
		d.report(err, id)
		return nil
	}

	if op == models.OpRefuel {
		fmt.Fprint(d.out, "Enter fuel amount to add (in liters): ")
	} else {
		fmt.Fprint(d.out, "Enter fuel amount to use (in liters): ")
	}
	amount, err := d.readAmount(ctx)
	if errors.Is(err, models.ErrMalformedInput) {
		d.report(err, id)
		return nil
	}
	if err != nil {
		return err
	}

	if op == models.OpRefuel {
		err = v.Refuel(amount)
	} else {
		err = v.Consume(amount)
	}
	if err != nil {
		d.report(err, id)
		return nil
	}

	d.log.WithFields(logrus.Fields{
		"vehicle_id": v.ID(),
		"op":         op,
		"amount":     amount,
		"fuel_level": v.Fuel().Current,
	}).Info("Fuel operation applied")

	if op == models.OpRefuel {
		fmt.Fprintln(d.out, "Refuel successful.")
	} else {
		fmt.Fprintln(d.out, "Fuel usage successful.")
	}
	fmt.Fprintf(d.out, "Updated Fuel: %s L\n", models.FormatAmount(v.Fuel().Current))
	return nil
}

// report prints the user-facing message for a recoverable failure.
func (d *Driver) report(err error, id string) {
	d.log.WithError(err).WithField("vehicle_id", id).Debug("Operation rejected")
	fmt.Fprintln(d.out, Message(err, id))
}

// Message maps a recoverable error to the text shown at the prompt.
func Message(err error, id string) string {
	var fe *models.FuelError
	switch {
	case errors.Is(err, models.ErrMalformedInput):
		return "Please enter numbers only."
	case errors.Is(err, models.ErrNotFound):
		return fmt.Sprintf("Vehicle with ID %s not found.", id)
	case errors.Is(err, models.ErrCapacityExceeded):
		return "Cannot refuel. Fuel capacity exceeded."
	case errors.Is(err, models.ErrInsufficientFuel):
		return "Not enough fuel."
	case errors.As(err, &fe) && errors.Is(err, models.ErrInvalidAmount):
		if fe.Op == models.OpConsume {
			return "Fuel usage must be greater than zero."
		}
		return "Fuel amount must be greater than zero."
	default:
		return err.Error()
	}
}

func (d *Driver) knownIDs() string {
	vs := d.store.Vehicles()
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.ID())
	}
	return strings.Join(ids, "/")
}

// scan feeds input lines to the returned channel until input ends or done
// is closed. The channel is closed at end of input. A Scan blocked on the
// reader keeps its goroutine alive until the reader yields.
func (d *Driver) scan(done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for d.in.Scan() {
			select {
			case lines <- inputLine{text: d.in.Text()}:
			case <-done:
				return
			}
		}
		if err := d.in.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}

// next returns the next input line, io.EOF once input is exhausted, or
// ctx.Err() if ctx ends first.
func (d *Driver) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-d.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return l.text, nil
	}
}

// nextToken returns the first field of the next non-blank line; a number
// prompt waits for actual input. The rest of the line is dropped.
func (d *Driver) nextToken(ctx context.Context) (string, error) {
	for {
		line, err := d.next(ctx)
		if err != nil {
			return "", err
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], nil
		}
	}
}

func (d *Driver) readChoice(ctx context.Context) (int, error) {
	s, err := d.nextToken(ctx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrMalformedInput, s)
	}
	return n, nil
}

func (d *Driver) readAmount(ctx context.Context) (float64, error) {
	s, err := d.nextToken(ctx)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", models.ErrMalformedInput, s)
	}
	return f, nil
}
