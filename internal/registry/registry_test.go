package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-fuel/internal/models"
)

func seeded(t *testing.T) *Registry {
	t.Helper()
	r := New(nil)
	require.NoError(t, r.Seed(DefaultFleet()))
	return r
}

func TestRegistry_FindVehicle(t *testing.T) {
	r := seeded(t)

	for _, id := range []string{"C1", "B1", "T1"} {
		v, err := r.FindVehicle(id)
		require.NoError(t, err)
		assert.Equal(t, id, v.ID())
	}

	_, err := r.FindVehicle("X1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "X1")

	// lookups are exact
	_, err = r.FindVehicle("c1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRegistry_FindReturnsSharedRecord(t *testing.T) {
	r := seeded(t)

	v, err := r.FindVehicle("C1")
	require.NoError(t, err)
	require.NoError(t, v.Refuel(10))

	again, err := r.FindVehicle("C1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, again.Fuel().Current)
}

func TestRegistry_DuplicatesKeptFirstWins(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := New(logger)

	first, _ := models.NewCar("C1", "Toyota", 50, 20, 5)
	second, _ := models.NewCar("C1", "Honda", 40, 10, 4)
	r.AddVehicle(first)
	r.AddVehicle(second)

	assert.Equal(t, 2, r.Len())
	v, err := r.FindVehicle("C1")
	require.NoError(t, err)
	assert.Equal(t, "Toyota", v.Model())

	require.NotNil(t, hook.LastEntry())
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, "C1", e.Data["vehicle_id"])
		}
	}
	assert.True(t, warned)
}

func TestRegistry_VehiclesOrderAndCopy(t *testing.T) {
	r := seeded(t)

	vs := r.Vehicles()
	require.Len(t, vs, 3)
	assert.Equal(t, "C1", vs[0].ID())
	assert.Equal(t, "B1", vs[1].ID())
	assert.Equal(t, "T1", vs[2].ID())

	vs[0] = nil
	assert.NotNil(t, r.Vehicles()[0])
}

func TestRegistry_ShowAll(t *testing.T) {
	r := seeded(t)

	var buf bytes.Buffer
	require.NoError(t, r.ShowAll(&buf))
	out := buf.String()

	car := strings.Index(out, "ID: C1")
	bike := strings.Index(out, "ID: B1")
	truck := strings.Index(out, "ID: T1")
	assert.True(t, car >= 0 && car < bike && bike < truck, "vehicles out of order:\n%s", out)
	assert.Equal(t, 3, strings.Count(out, "-----------------------------"))
}

func TestRegistry_ShowAllEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(nil).ShowAll(&buf))
	assert.Empty(t, buf.String())
}

func TestSeed_InvalidSpec(t *testing.T) {
	r := New(nil)
	err := r.Seed([]VehicleSpec{
		{Kind: "car", ID: "C1", Model: "Toyota", Capacity: 50, Current: 20, Seats: 5},
		{Kind: "boat", ID: "S1", Capacity: 10},
	})
	assert.ErrorIs(t, err, models.ErrInvalidVehicle)
	assert.Contains(t, err.Error(), "vehicles[1]")
	assert.Equal(t, 1, r.Len())
}

func TestVehicleSpec_Build(t *testing.T) {
	v, err := VehicleSpec{Kind: "Truck", ID: "T9", Model: "MAN", Capacity: 300, Current: 0, LoadCapacity: 18.5}.Build()
	require.NoError(t, err)
	assert.Equal(t, models.KindTruck, v.Kind())
	assert.Equal(t, 18.5, v.LoadCapacity())

	_, err = VehicleSpec{Kind: "bike", ID: "B2", Capacity: 10, Current: 11}.Build()
	assert.ErrorIs(t, err, models.ErrInvalidVehicle)
}
