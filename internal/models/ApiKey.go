package models

import "time"

type ApiKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Value     string    `gorm:"column:api_key_value;size:64;not null;uniqueIndex" json:"api_key"`
}

func (ApiKey) TableName() string { return "api_keys" }

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &Truck{}, &Supplier{}, &Delivery{},
		&DeliveryGeolocation{}, &DriverGeolocation{}, &AttendanceTracking{}, &ApiKey{},
	}
}
