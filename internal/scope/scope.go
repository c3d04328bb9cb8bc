// Package scope expresses row-level access rules as GORM scopes.
package scope

import (
	"rental-service/internal/apperr"
	"rental-service/internal/model"

	"gorm.io/gorm"
)

// Identity is the authenticated caller
type Identity struct {
	UserID   uint
	Username string
	Role     model.Role
}

// Authenticated reports whether the identity refers to a user
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// PropertiesOwnedBy limits a properties query to the caller's rows
func PropertiesOwnedBy(id Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("properties.owner_id = ?", id.UserID)
	}
}

// LeasesOwnedBy limits a leases query to leases on the caller's properties
func LeasesOwnedBy(id Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN properties ON properties.id = leases.property_id").
			Where("properties.owner_id = ?", id.UserID)
	}
}

// PaymentsOwnedBy limits a payments query to payments on leases of the
// caller's properties
func PaymentsOwnedBy(id Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN leases ON leases.id = payments.lease_id").
			Joins("JOIN properties ON properties.id = leases.property_id").
			Where("properties.owner_id = ?", id.UserID)
	}
}

// CanExportContract allows the lease's tenant and the property owner.
// property may be nil for leases without a property.
func CanExportContract(id Identity, lease model.Lease, property *model.Property) error {
	if !id.Authenticated() {
		return apperr.ErrUnauthorized
	}
	if lease.TenantID == id.UserID {
		return nil
	}
	if property != nil && property.OwnerID != nil && *property.OwnerID == id.UserID {
		return nil
	}
	return apperr.ErrUnauthorized
}

// CanUseLease reports whether the caller may attach records to lease:
// the tenant of the lease or the owner of its property.
func CanUseLease(id Identity, lease model.Lease, property *model.Property) bool {
	return CanExportContract(id, lease, property) == nil
}
