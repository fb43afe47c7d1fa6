package models

import "time"

// Delivery is one scheduled drop-off assigned to a driver and a truck.
// Completed and cancelled are both terminal and live on the same row.
type Delivery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AppointmentAt time.Time  `gorm:"column:date_time_appointment;not null;index" json:"date_time_appointment"`
	LeaveAt       time.Time  `gorm:"column:date_time_leave;not null;index" json:"date_time_leave"`
	AcceptAt      *time.Time `gorm:"column:date_time_accept" json:"date_time_accept"`
	ArrivalAt     *time.Time `gorm:"column:date_time_arrival" json:"date_time_arrival"`

	Description  *string `json:"description"`
	SignClient   *string `gorm:"column:sign_client" json:"sign_client"`
	Satisfaction *int    `gorm:"column:satisfaction_client" json:"satisfaction_client"`
	ReturnFlag   bool    `gorm:"not null;default:false" json:"return_flag"`

	Client       string  `gorm:"size:250;not null" json:"client"`
	Address      string  `gorm:"size:250;not null" json:"address"`
	Contacts     string  `gorm:"size:250;not null" json:"contacts"`
	Invoice      string  `gorm:"size:250;not null" json:"invoice"`
	Weight       float64 `gorm:"not null" json:"weight"`
	Comment      string  `gorm:"not null;default:''" json:"comment"`
	InvoiceImage *string `json:"invoice_image"`

	UserID     uint `gorm:"not null;index" json:"user_id"`
	TruckID    uint `gorm:"not null;index" json:"truck_id"`
	SupplierID uint `gorm:"not null;index" json:"supplier_id"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`
	Truck    *Truck    `gorm:"foreignKey:TruckID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"truck,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"supplier,omitempty"`
}

func (Delivery) TableName() string { return "delivery" }

// DeliveryStatus is the progression shown on the planning calendar.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusCompleted DeliveryStatus = "completed"
	StatusCancelled DeliveryStatus = "cancelled"
)

func (d Delivery) IsCompleted() bool { return d.ArrivalAt != nil }
func (d Delivery) IsInTransit() bool { return d.AcceptAt != nil && d.ArrivalAt == nil }

func (d Delivery) Status() DeliveryStatus {
	switch {
	case d.ReturnFlag:
		return StatusCancelled
	case d.ArrivalAt != nil:
		return StatusCompleted
	case d.AcceptAt != nil:
		return StatusInTransit
	default:
		return StatusPending
	}
}
