package models

import "time"

const (
	AttendanceCheckIn  uint8 = 1
	AttendanceCheckOut uint8 = 2
)

// AttendanceTracking is a clock-in/out sample (pointage).
type AttendanceTracking struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Time   time.Time `gorm:"not null;index" json:"time"`
	Lat    float64   `gorm:"column:lati;not null" json:"lati"`
	Long   float64   `gorm:"column:longi;not null" json:"longi"`
	Alt    float64   `gorm:"column:alti;not null" json:"alti"`
	Type   uint8     `gorm:"not null" json:"type"`
	UserID uint      `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT;" json:"user,omitempty"`
}

func (AttendanceTracking) TableName() string { return "attendance_tracking" }
