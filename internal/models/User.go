package models

import "time"

// Role values stored in users.role.
const (
	RoleDriver = 1
	RoleAdmin  = 2
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"size:30;not null" json:"name"`
	Password string `gorm:"size:100;not null" json:"-"` // bcrypt or legacy sha-256 hex
	Role     int    `gorm:"not null;default:1" json:"role"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool  { return u.Role == RoleAdmin }
func (u User) IsDriver() bool { return u.Role == RoleDriver }
