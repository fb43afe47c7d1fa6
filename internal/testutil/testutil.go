// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"glnc_delivery/internal/config"
	"glnc_delivery/internal/models"
	"glnc_delivery/internal/security"
)

// Loc is the business zone used by fixtures.
var Loc = time.FixedZone("UTC+11", 11*3600)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// Hasher uses the cheapest bcrypt cost.
func Hasher() *security.PasswordHasher {
	return security.NewPasswordHasher(4, "test-salt")
}

// At builds a whole-second time in Loc.
func At(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, Loc)
}

func CreateUser(t *testing.T, db *gorm.DB, name, code string, role int) *models.User {
	t.Helper()
	hash, err := Hasher().Hash(code)
	require.NoError(t, err)
	u := &models.User{Name: name, Password: hash, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateTruck(t *testing.T, db *gorm.DB, license, color string) *models.Truck {
	t.Helper()
	tr := &models.Truck{License: license, Brand: "Isuzu", Model: "NPR", Color: color}
	require.NoError(t, db.Create(tr).Error)
	return tr
}

func CreateSupplier(t *testing.T, db *gorm.DB, name, mail string, notify bool) *models.Supplier {
	t.Helper()
	s := &models.Supplier{Name: name, Mail: mail, Notify: notify}
	require.NoError(t, db.Create(s).Error)
	return s
}

// CreateDelivery inserts a pending delivery; mutate adjusts it before insert.
func CreateDelivery(t *testing.T, db *gorm.DB, user *models.User, truck *models.Truck, supplier *models.Supplier,
	appointment, leave time.Time, mutate func(*models.Delivery)) *models.Delivery {
	t.Helper()
	d := &models.Delivery{
		AppointmentAt: appointment,
		LeaveAt:       leave,
		Client:        "Client",
		Address:       "1 rue de la Paix",
		Contacts:      "0600000",
		Invoice:       "INV-1",
		Weight:        10,
		UserID:        user.ID,
		TruckID:       truck.ID,
		SupplierID:    supplier.ID,
	}
	if mutate != nil {
		mutate(d)
	}
	require.NoError(t, db.Create(d).Error)
	return d
}
