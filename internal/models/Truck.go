package models

import "time"

type Truck struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	License string `gorm:"size:250;not null;uniqueIndex" json:"license"`
	Brand   string `gorm:"size:50;not null" json:"brand"`
	Model   string `gorm:"size:50;not null" json:"model"`
	Color   string `gorm:"size:10;not null" json:"color"` // hex, display only
}

func (Truck) TableName() string { return "trucks" }
