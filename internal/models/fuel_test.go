package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFuel(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		current  float64
		wantErr  bool
	}{
		{"empty tank", 50, 0, false},
		{"full tank", 50, 50, false},
		{"zero capacity", 0, 0, true},
		{"negative capacity", -10, 0, true},
		{"negative current", 50, -1, true},
		{"overfilled", 50, 50.5, true},
		{"nan capacity", math.NaN(), 0, true},
		{"infinite capacity", math.Inf(1), 10, true},
		{"negative infinite capacity", math.Inf(-1), 0, true},
		{"nan current", 50, math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFuel(tt.capacity, tt.current)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVehicle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, f.Capacity)
			assert.Equal(t, tt.current, f.Current)
		})
	}
}

func TestFuel_Refuel(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr error
		want    float64
	}{
		{"zero amount", 0, ErrInvalidAmount, 20},
		{"negative amount", -5, ErrInvalidAmount, 20},
		{"not a number", math.NaN(), ErrInvalidAmount, 20},
		{"infinite", math.Inf(1), ErrCapacityExceeded, 20},
		{"over capacity", 40, ErrCapacityExceeded, 20},
		{"just over capacity", 30.0001, ErrCapacityExceeded, 20},
		{"fill to capacity", 30, nil, 50},
		{"partial", 10, nil, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fuel{Capacity: 50, Current: 20}
			err := f.Refuel(tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, f.Current)
		})
	}
}

func TestFuel_Consume(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr error
		want    float64
	}{
		{"zero amount", 0, ErrInvalidAmount, 20},
		{"negative amount", -1, ErrInvalidAmount, 20},
		{"not a number", math.NaN(), ErrInvalidAmount, 20},
		{"more than tank", 20.5, ErrInsufficientFuel, 20},
		{"drain", 20, nil, 0},
		{"partial", 7.5, nil, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fuel{Capacity: 50, Current: 20}
			err := f.Consume(tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, f.Current)
		})
	}
}

func TestFuel_ErrorCarriesOperation(t *testing.T) {
	f := Fuel{Capacity: 15, Current: 8}

	err := f.Consume(9)
	var fe *FuelError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, OpConsume, fe.Op)
	assert.Equal(t, 9.0, fe.Amount)
	assert.Equal(t, "consume 9.0 L: not enough fuel", err.Error())
}

func TestFuel_PercentAndHeadroom(t *testing.T) {
	f := Fuel{Capacity: 150, Current: 90}
	assert.InDelta(t, 60.0, f.Percent(), 1e-9)
	assert.Equal(t, 60.0, f.Headroom())

	assert.Equal(t, 0.0, Fuel{}.Percent())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50, "50.0"},
		{0, "0.0"},
		{20.5, "20.5"},
		{12, "12.0"},
		{0.25, "0.25"},
		{-3, "-3.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}
