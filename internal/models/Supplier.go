package models

import (
	"strings"
	"time"
)

// Supplier receives an email on each completed delivery when Notify is set.
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string `gorm:"column:supplier_name;size:30;not null" json:"supplier_name"`
	Mail   string `gorm:"size:250;not null" json:"mail"` // comma separated
	Notify bool   `gorm:"column:notify_enabled;not null;default:false" json:"check"`
}

func (Supplier) TableName() string { return "supplier" }

// Recipients splits Mail into trimmed, non-empty addresses.
func (s Supplier) Recipients() []string {
	var out []string
	for _, part := range strings.Split(s.Mail, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
