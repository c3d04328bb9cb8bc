package model

import (
	"time"

	"gorm.io/datatypes"
)

// Lease binds a tenant to a property for a date range
type Lease struct {
	ID          uint           `gorm:"primaryKey"`
	TenantID    uint           `gorm:"index;not null"`
	Tenant      *User          `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	PropertyID  *uint          `gorm:"index"`
	Property    *Property      `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	StartDate   datatypes.Date `gorm:"not null"`
	EndDate     datatypes.Date `gorm:"not null"`
	RateAmount  float64        `gorm:"not null"`
	ActiveLease bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Payments []Payment `gorm:"foreignKey:LeaseID;constraint:OnDelete:CASCADE"`
}

// Start returns the start date as a UTC calendar day
func (l Lease) Start() time.Time {
	return Day(time.Time(l.StartDate))
}

// End returns the end date as a UTC calendar day
func (l Lease) End() time.Time {
	return Day(time.Time(l.EndDate))
}

// Payment records money owed or received against a lease
type Payment struct {
	ID          uint           `gorm:"primaryKey"`
	LeaseID     uint           `gorm:"index;not null"`
	Amount      float64        `gorm:"not null"`
	PaymentDate datatypes.Date `gorm:"not null"`
	IsPaid      bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaidOn returns the payment date as a UTC calendar day
func (p Payment) PaidOn() time.Time {
	return Day(time.Time(p.PaymentDate))
}

// Day truncates t to midnight UTC of the same calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf wraps a calendar day for storage
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(Day(t))
}
