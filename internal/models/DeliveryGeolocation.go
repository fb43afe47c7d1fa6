package models

// DeliveryGeolocation is where the client signed. One row per delivery.
type DeliveryGeolocation struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	SignLat    float64 `gorm:"column:sign_lati;not null" json:"sign_lati"`
	SignLong   float64 `gorm:"column:sign_longi;not null" json:"sign_longi"`
	SignAlt    float64 `gorm:"column:sign_alti;not null" json:"sign_alti"`
	DeliveryID uint    `gorm:"not null;uniqueIndex" json:"delivery_id"`
	UserID     uint    `gorm:"not null;index" json:"user_id"`

	Delivery *Delivery `gorm:"foreignKey:DeliveryID;constraint:OnDelete:RESTRICT;" json:"-"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT;" json:"-"`
}

func (DeliveryGeolocation) TableName() string { return "delivery_geolocation" }
