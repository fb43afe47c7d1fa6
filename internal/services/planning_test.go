package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/testutil"
)

func TestNormalizeTruckColor(t *testing.T) {
	cases := map[string]string{
		"00ff00":   "#00ff00",
		"#A1B2C3":  "#A1B2C3",
		" 123abc ": "#123abc",
		"":         DefaultTruckColor,
		"red":      DefaultTruckColor,
		"#12345":   DefaultTruckColor,
		"#zzzzzz":  DefaultTruckColor,
		"1234567":  DefaultTruckColor,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTruckColor(in), in)
	}
}

func TestContrastTextColor(t *testing.T) {
	assert.Equal(t, "#000000", ContrastTextColor("#ffffff"))
	assert.Equal(t, "#ffffff", ContrastTextColor("#000000"))
	assert.Equal(t, "#ffffff", ContrastTextColor(DefaultTruckColor))
	assert.Equal(t, "#000000", ContrastTextColor("#00ff00"))
	assert.Equal(t, "#ffffff", ContrastTextColor("#7f7f7f"))
	assert.Equal(t, "#000000", ContrastTextColor("#828282"))
	assert.Equal(t, "#ffffff", ContrastTextColor("garbage"))
}

func TestStatusIcon(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "", StatusIcon(models.Delivery{}))
	assert.Equal(t, IconInTransit, StatusIcon(models.Delivery{AcceptAt: &now}))
	assert.Equal(t, IconArrived, StatusIcon(models.Delivery{AcceptAt: &now, ArrivalAt: &now}))
}

func TestPlanningEvents(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 0, 0)
	h := newHarness(t, now)
	f := seedFleet(t, h)
	ctx := context.Background()

	d := testutil.CreateDelivery(t, h.db, f.driver, f.truck, f.supplier, now, now.Add(90*time.Minute), func(d *models.Delivery) {
		d.AcceptAt = &now
	})
	testutil.CreateDelivery(t, h.db, f.other, f.truck, f.supplier, now.AddDate(0, 0, 5), now.AddDate(0, 0, 5).Add(time.Hour), nil)

	start, end := testutil.At(2024, 1, 10, 0, 0, 0), testutil.At(2024, 1, 10, 0, 0, 0)
	events, err := h.svc.Planning.Events(ctx, EventFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, d.ID, e.ID)
	assert.Equal(t, "Client", e.Title)
	assert.Equal(t, "2024-01-10T09:00:00", e.Start)
	assert.Equal(t, "2024-01-10T10:30:00", e.End)
	assert.Equal(t, "#00ff00", e.Color)
	assert.Equal(t, "#000000", e.TextColor)
	assert.Equal(t, IconInTransit, e.StatusIcon)
	assert.Equal(t, IconInTransit, e.ExtendedProps.StatusIcon)
	assert.Equal(t, "Bob", e.ExtendedProps.DriverName)
	assert.Equal(t, "AB-123", e.ExtendedProps.TruckLicense)
	assert.Equal(t, "Acme", e.ExtendedProps.SupplierName)

	driverID := f.other.ID
	events, err = h.svc.Planning.Events(ctx, EventFilter{DriverID: &driverID})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "", events[0].StatusIcon)

	events, err = h.svc.Planning.Events(ctx, EventFilter{InTransitOnly: true})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, d.ID, events[0].ID)
}

func TestFindConflicts(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 0, 0)
	h := newHarness(t, now)
	f := seedFleet(t, h)
	ctx := context.Background()

	busy := testutil.CreateDelivery(t, h.db, f.driver, f.truck, f.supplier, now, now.Add(2*time.Hour), func(d *models.Delivery) {
		d.AcceptAt = &now
	})

	window := ConflictCheck{TruckID: f.truck.ID, Start: now.Add(time.Hour), End: now.Add(3 * time.Hour)}

	window.DriverID = f.other.ID
	conflicts, err := h.svc.Planning.FindConflicts(ctx, window)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, busy.ID, conflicts[0].ID)

	window.DriverID = f.driver.ID
	conflicts, err = h.svc.Planning.FindConflicts(ctx, window)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "same driver keeps the truck")

	other := testutil.CreateTruck(t, h.db, "ZZ-999", "")
	window.TruckID, window.DriverID = other.ID, f.other.ID
	conflicts, err = h.svc.Planning.FindConflicts(ctx, window)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestPlanningCreateDelivery(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 0, 0)
	ctx := context.Background()

	setup := func(t *testing.T, enforce bool) (*harness, fleet) {
		h := newHarness(t, now)
		h.svc.Planning.enforceConflicts = enforce
		f := seedFleet(t, h)
		testutil.CreateDelivery(t, h.db, f.driver, f.truck, f.supplier, now, now.Add(2*time.Hour), func(d *models.Delivery) {
			d.AcceptAt = &now
		})
		return h, f
	}

	t.Run("not enforced by default", func(t *testing.T) {
		h, f := setup(t, false)
		in := validInput(f, now.Add(time.Hour))
		in.UserID = f.other.ID
		_, err := h.svc.Planning.CreateDelivery(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("enforced", func(t *testing.T) {
		h, f := setup(t, true)
		in := validInput(f, now.Add(time.Hour))
		in.UserID = f.other.ID
		_, err := h.svc.Planning.CreateDelivery(ctx, in)
		assert.ErrorIs(t, err, ErrConflict)

		in.UserID = f.driver.ID
		_, err = h.svc.Planning.CreateDelivery(ctx, in)
		assert.NoError(t, err)
	})
}
