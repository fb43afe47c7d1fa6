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

func TestDriverLocationPings(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 15, 0)
	h := newHarness(t, now)
	ctx := context.Background()
	bob := testutil.CreateUser(t, h.db, "Bob", "22222", models.RoleDriver)

	latest, err := h.svc.Geolocation.LatestDriverLocation(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	row, err := h.svc.Geolocation.RecordDriverLocation(ctx, bob.ID, Coordinates{Lat: -22.1, Long: 166.2, Alt: 12})
	require.NoError(t, err)
	assert.True(t, row.DateTime.Equal(now))
	assert.Equal(t, "UTC+11", row.DateTime.Location().String())

	_, err = h.svc.Geolocation.RecordDriverLocation(ctx, 999, Coordinates{})
	assert.ErrorIs(t, err, ErrValidation)

	latest, err = h.svc.Geolocation.LatestDriverLocation(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, -22.1, latest.Lat)

	feed, err := h.svc.Geolocation.DriverLocationsForUser(ctx, 12345)
	require.NoError(t, err)
	assert.Len(t, feed, 1, "pings are not attributed to users")

	within, err := h.svc.Geolocation.DriverLocationsBetween(ctx, now.Add(time.Minute), now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, within, 1)
}

func TestSigningLocationIsOnePerDelivery(t *testing.T) {
	now := testutil.At(2024, 1, 10, 9, 0, 0)
	h := newHarness(t, now)
	f := seedFleet(t, h)
	ctx := context.Background()
	d := testutil.CreateDelivery(t, h.db, f.driver, f.truck, f.supplier, now, now.Add(time.Hour), nil)

	_, err := h.svc.Geolocation.RecordSigningLocation(ctx, d.ID, f.driver.ID, Coordinates{Lat: 1, Long: 2, Alt: 3})
	require.NoError(t, err)
	row, err := h.svc.Geolocation.RecordSigningLocation(ctx, d.ID, f.driver.ID, Coordinates{Lat: 4, Long: 5, Alt: 6})
	require.NoError(t, err)
	assert.Equal(t, 4.0, row.SignLat)

	all, err := h.svc.Geolocation.SigningLocations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5.0, all[0].SignLong)

	_, err = h.svc.Geolocation.RecordSigningLocation(ctx, 999, f.driver.ID, Coordinates{})
	assert.ErrorIs(t, err, ErrValidation)

	latest, err := h.svc.Geolocation.LatestSigningLocation(ctx, f.driver.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, d.ID, latest.DeliveryID)

	none, err := h.svc.Geolocation.LatestSigningLocation(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}
