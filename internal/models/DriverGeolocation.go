package models

import "time"

// DriverGeolocation is an ad-hoc position ping. The table has no user column,
// so samples cannot be attributed to a driver.
type DriverGeolocation struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Lat      float64   `gorm:"column:lati;not null" json:"lati"`
	Long     float64   `gorm:"column:longi;not null" json:"longi"`
	Alt      float64   `gorm:"column:alti;not null" json:"alti"`
	DateTime time.Time `gorm:"column:date_time;not null;index" json:"date_time"`
}

func (DriverGeolocation) TableName() string { return "drivergeolocation" }
