package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"glnc_delivery/internal/models"
)

type Coordinates struct {
	Lat  float64
	Long float64
	Alt  float64
}

type GeolocationService struct {
	db    *gorm.DB
	clock Clock
}

func NewGeolocationService(db *gorm.DB, clock Clock) *GeolocationService {
	return &GeolocationService{db: db, clock: clock}
}

// RecordDriverLocation stores a ping stamped with the current business time.
// The user is checked but not stored; the table has no user column.
func (s *GeolocationService) RecordDriverLocation(ctx context.Context, userID uint, at Coordinates) (*models.DriverGeolocation, error) {
	if userID == 0 {
		return nil, invalid("user_id is required")
	}
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}
	row := models.DriverGeolocation{
		Lat:      at.Lat,
		Long:     at.Long,
		Alt:      at.Alt,
		DateTime: s.clock.Current(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GeolocationService) DriverLocations(ctx context.Context) ([]models.DriverGeolocation, error) {
	var rows []models.DriverGeolocation
	err := s.db.WithContext(ctx).Order("date_time DESC").Find(&rows).Error
	return rows, err
}

// DriverLocationsBetween returns pings with from <= date_time <= to.
func (s *GeolocationService) DriverLocationsBetween(ctx context.Context, from, to time.Time) ([]models.DriverGeolocation, error) {
	if to.Before(from) {
		from, to = to, from
	}
	var rows []models.DriverGeolocation
	err := s.db.WithContext(ctx).
		Where("date_time >= ? AND date_time <= ?", from, to).
		Order("date_time DESC").
		Find(&rows).Error
	return rows, err
}

// LatestDriverLocation returns the most recent ping, or nil when none exist.
func (s *GeolocationService) LatestDriverLocation(ctx context.Context) (*models.DriverGeolocation, error) {
	var row models.DriverGeolocation
	err := s.db.WithContext(ctx).Order("date_time DESC").Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DriverLocationsForUser cannot filter by user and returns the global feed.
func (s *GeolocationService) DriverLocationsForUser(ctx context.Context, _ uint) ([]models.DriverGeolocation, error) {
	return s.DriverLocations(ctx)
}

// RecordSigningLocation stores where a delivery was signed, replacing any
// earlier sample for the same delivery.
func (s *GeolocationService) RecordSigningLocation(ctx context.Context, deliveryID, userID uint, at Coordinates) (*models.DeliveryGeolocation, error) {
	v := &validation{}
	v.check(deliveryID != 0, "delivery_id is required")
	v.check(userID != 0, "user_id is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", deliveryID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, invalid("delivery %d not found", deliveryID)
	}
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	row := models.DeliveryGeolocation{
		SignLat:    at.Lat,
		SignLong:   at.Long,
		SignAlt:    at.Alt,
		DeliveryID: deliveryID,
		UserID:     userID,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "delivery_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sign_lati", "sign_longi", "sign_alti", "user_id"}),
	}).Create(&row).Error
	if err != nil {
		return nil, translate(err, "delivery geolocation", deliveryID)
	}
	return s.signingLocationOf(ctx, deliveryID)
}

func (s *GeolocationService) signingLocationOf(ctx context.Context, deliveryID uint) (*models.DeliveryGeolocation, error) {
	var row models.DeliveryGeolocation
	if err := s.db.WithContext(ctx).Where("delivery_id = ?", deliveryID).First(&row).Error; err != nil {
		return nil, translate(err, "delivery geolocation", deliveryID)
	}
	return &row, nil
}

func (s *GeolocationService) SigningLocations(ctx context.Context) ([]models.DeliveryGeolocation, error) {
	var rows []models.DeliveryGeolocation
	err := s.db.WithContext(ctx).Order("id DESC").Find(&rows).Error
	return rows, err
}

func (s *GeolocationService) SigningLocationsForUser(ctx context.Context, userID uint) ([]models.DeliveryGeolocation, error) {
	var rows []models.DeliveryGeolocation
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&rows).Error
	return rows, err
}

// LatestSigningLocation returns the user's most recent signing sample, or nil.
func (s *GeolocationService) LatestSigningLocation(ctx context.Context, userID uint) (*models.DeliveryGeolocation, error) {
	var row models.DeliveryGeolocation
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
