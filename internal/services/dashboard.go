package services

import (
	"context"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

type DashboardStats struct {
	Completed int64 `json:"completed"`
	InTransit int64 `json:"in_transit"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Trucks    int64 `json:"trucks"`
	Drivers   int64 `json:"drivers"`
	Suppliers int64 `json:"suppliers"`
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var st DashboardStats

	deliveries := func() *gorm.DB { return db.Model(&models.Delivery{}) }
	counts := []struct {
		q   *gorm.DB
		dst *int64
	}{
		{deliveries().Where("return_flag = ?", true), &st.Cancelled},
		{deliveries().Where("return_flag = ? AND date_time_arrival IS NOT NULL", false), &st.Completed},
		{deliveries().Where("return_flag = ? AND date_time_accept IS NOT NULL AND date_time_arrival IS NULL", false), &st.InTransit},
		{deliveries().Where("return_flag = ? AND date_time_accept IS NULL AND date_time_arrival IS NULL", false), &st.Pending},
		{db.Model(&models.Truck{}), &st.Trucks},
		{db.Model(&models.User{}).Where("role = ?", models.RoleDriver), &st.Drivers},
		{db.Model(&models.Supplier{}), &st.Suppliers},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return DashboardStats{}, err
		}
	}
	return st, nil
}
