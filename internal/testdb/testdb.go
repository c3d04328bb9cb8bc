// Package testdb builds migrated SQLite databases and fixtures for tests.
package testdb

import (
	"path/filepath"
	"testing"
	"time"

	"rental-service/internal/model"
	"rental-service/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database stored under t.TempDir()
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "rental-test.db"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// User inserts a user with the given username and role
func User(t *testing.T, db *gorm.DB, username string, role model.Role) model.User {
	t.Helper()

	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		FirstName:    username,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// Property inserts an available apartment owned by owner
func Property(t *testing.T, db *gorm.DB, owner model.User, address string) model.Property {
	t.Helper()

	property := model.Property{
		Address:      address,
		OwnerID:      &owner.ID,
		PropertyType: model.PropertyApartment,
		Status:       model.StatusAvailable,
		Area:         100,
		NumOfRooms:   3,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("create property %s: %v", address, err)
	}
	return property
}

// Lease inserts a lease row directly, bypassing the date rules
func Lease(t *testing.T, db *gorm.DB, tenant model.User, property *model.Property, start, end time.Time, active bool) model.Lease {
	t.Helper()

	lease := model.Lease{
		TenantID:    tenant.ID,
		StartDate:   model.DateOf(start),
		EndDate:     model.DateOf(end),
		RateAmount:  1000,
		ActiveLease: active,
	}
	if property != nil {
		lease.PropertyID = &property.ID
	}
	if err := db.Omit("Tenant", "Property", "Payments").Create(&lease).Error; err != nil {
		t.Fatalf("create lease: %v", err)
	}
	return lease
}

// Payment inserts a payment for lease
func Payment(t *testing.T, db *gorm.DB, lease model.Lease, amount float64, paidOn time.Time) model.Payment {
	t.Helper()

	payment := model.Payment{
		LeaseID:     lease.ID,
		Amount:      amount,
		PaymentDate: model.DateOf(paidOn),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}

// Date is a shorthand for a UTC calendar day
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock frozen at noon UTC of the given day
func FixedClock(day time.Time) func() time.Time {
	noon := day.Add(12 * time.Hour)
	return func() time.Time { return noon }
}
