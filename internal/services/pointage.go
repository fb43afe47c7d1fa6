package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

// AttendanceInput is one clock-in or clock-out sample from the app.
type AttendanceInput struct {
	Time   time.Time
	Lat    float64
	Long   float64
	Alt    float64
	Type   uint8
	UserID uint
}

type PointageService struct {
	db *gorm.DB
}

func NewPointageService(db *gorm.DB) *PointageService {
	return &PointageService{db: db}
}

func (s *PointageService) List(ctx context.Context) ([]models.AttendanceTracking, error) {
	var rows []models.AttendanceTracking
	err := s.db.WithContext(ctx).Preload("User").Order(`"time" DESC`).Find(&rows).Error
	return rows, err
}

func (s *PointageService) ByUser(ctx context.Context, userID uint) ([]models.AttendanceTracking, error) {
	var rows []models.AttendanceTracking
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order(`"time" DESC`).
		Find(&rows).Error
	return rows, err
}

// ByRange returns samples with from <= time <= to.
func (s *PointageService) ByRange(ctx context.Context, from, to time.Time) ([]models.AttendanceTracking, error) {
	if to.Before(from) {
		from, to = to, from
	}
	var rows []models.AttendanceTracking
	err := s.db.WithContext(ctx).Preload("User").
		Where(`"time" >= ? AND "time" <= ?`, from, to).
		Order(`"time" DESC`).
		Find(&rows).Error
	return rows, err
}

func (s *PointageService) Record(ctx context.Context, in AttendanceInput) (*models.AttendanceTracking, error) {
	v := &validation{}
	v.check(in.UserID != 0, "user_id is required")
	v.check(!in.Time.IsZero(), "time is required")
	v.check(in.Type == models.AttendanceCheckIn || in.Type == models.AttendanceCheckOut,
		"type must be %d (check-in) or %d (check-out)", models.AttendanceCheckIn, models.AttendanceCheckOut)
	if err := v.err(); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.db, in.UserID); err != nil {
		return nil, err
	}

	row := models.AttendanceTracking{
		Time:   in.Time,
		Lat:    in.Lat,
		Long:   in.Long,
		Alt:    in.Alt,
		Type:   in.Type,
		UserID: in.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, "attendance", 0)
	}
	return &row, nil
}

// requireUser fails with a validation error when userID does not exist.
func requireUser(ctx context.Context, db *gorm.DB, userID uint) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalid("user %d not found", userID)
	}
	return nil
}
