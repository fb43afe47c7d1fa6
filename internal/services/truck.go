package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

type TruckInput struct {
	License string
	Brand   string
	Model   string
	Color   string
}

type TruckService struct {
	db *gorm.DB
}

func NewTruckService(db *gorm.DB) *TruckService {
	return &TruckService{db: db}
}

func (s *TruckService) List(ctx context.Context) ([]models.Truck, error) {
	var trucks []models.Truck
	err := s.db.WithContext(ctx).Order("id").Find(&trucks).Error
	return trucks, err
}

func (s *TruckService) Get(ctx context.Context, id uint) (*models.Truck, error) {
	var truck models.Truck
	if err := s.db.WithContext(ctx).First(&truck, id).Error; err != nil {
		return nil, translate(err, "truck", id)
	}
	return &truck, nil
}

func (s *TruckService) Create(ctx context.Context, in TruckInput) (*models.Truck, error) {
	truck := models.Truck{}
	if err := s.apply(ctx, &truck, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&truck).Error; err != nil {
		return nil, translate(err, "truck", 0)
	}
	return &truck, nil
}

func (s *TruckService) Update(ctx context.Context, id uint, in TruckInput) (*models.Truck, error) {
	truck, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, truck, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(truck).Error; err != nil {
		return nil, translate(err, "truck", id)
	}
	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Truck{}, id)
	if res.Error != nil {
		return translate(res.Error, "truck", id)
	}
	if res.RowsAffected == 0 {
		return notFound("truck", id)
	}
	return nil
}

func (s *TruckService) apply(ctx context.Context, truck *models.Truck, in TruckInput) error {
	in.License = strings.TrimSpace(in.License)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.Color = strings.TrimSpace(in.Color)

	v := &validation{}
	v.check(in.License != "", "license is required")
	v.check(utf8.RuneCountInString(in.License) <= 250, "license must be at most 250 characters")
	v.check(in.Brand != "", "brand is required")
	v.check(utf8.RuneCountInString(in.Brand) <= 50, "brand must be at most 50 characters")
	v.check(in.Model != "", "model is required")
	v.check(utf8.RuneCountInString(in.Model) <= 50, "model must be at most 50 characters")
	v.check(utf8.RuneCountInString(in.Color) <= 10, "color must be at most 10 characters")
	if err := v.err(); err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Truck{}).
		Where("license = ? AND id <> ?", in.License, truck.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict("a truck with license %q already exists", in.License)
	}

	truck.License = in.License
	truck.Brand = in.Brand
	truck.Model = in.Model
	truck.Color = in.Color
	return nil
}
