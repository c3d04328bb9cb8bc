package repository

import (
	"rental-service/internal/model"

	"gorm.io/gorm"
)

type LeaseRepository struct {
	database *gorm.DB
}

func NewLeaseRepository(database *gorm.DB) *LeaseRepository {
	return &LeaseRepository{database: database}
}

func (repo *LeaseRepository) List(scopes ...Scope) ([]model.Lease, error) {
	leases := make([]model.Lease, 0)
	if err := repo.database.Scopes(scopes...).Order("leases.id ASC").Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

func (repo *LeaseRepository) Find(id uint, scopes ...Scope) (model.Lease, error) {
	lease := model.Lease{}
	err := repo.database.Scopes(scopes...).Where("leases.id = ?", id).First(&lease).Error
	if err != nil {
		return model.Lease{}, notFound(err, "find lease")
	}
	return lease, nil
}

// FindDetail loads a lease with its property and payments
func (repo *LeaseRepository) FindDetail(id uint, scopes ...Scope) (model.Lease, error) {
	lease := model.Lease{}
	err := repo.database.
		Scopes(scopes...).
		Preload("Property").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.id ASC")
		}).
		Where("leases.id = ?", id).
		First(&lease).Error
	if err != nil {
		return model.Lease{}, notFound(err, "find lease detail")
	}
	return lease, nil
}

// FindWithParties loads a lease with its tenant and property
func (repo *LeaseRepository) FindWithParties(id uint) (model.Lease, error) {
	lease := model.Lease{}
	err := repo.database.
		Preload("Tenant").
		Preload("Property").
		Preload("Property.Owner").
		Where("leases.id = ?", id).
		First(&lease).Error
	if err != nil {
		return model.Lease{}, notFound(err, "find lease")
	}
	return lease, nil
}

// ListActiveByProperty returns the flagged-active leases of a property other
// than excludeID. Date filtering is left to the caller.
func (repo *LeaseRepository) ListActiveByProperty(propertyID, excludeID uint) ([]model.Lease, error) {
	leases := make([]model.Lease, 0)
	err := repo.database.
		Where("property_id = ? AND active_lease = ? AND id <> ?", propertyID, true, excludeID).
		Order("id ASC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

func (repo *LeaseRepository) Create(lease *model.Lease) error {
	return repo.database.Omit("Tenant", "Property", "Payments").Create(lease).Error
}

func (repo *LeaseRepository) Save(lease *model.Lease) error {
	return repo.database.Model(lease).
		Select("tenant_id", "property_id", "start_date", "end_date", "rate_amount", "active_lease").
		Updates(lease).Error
}

// Delete removes a lease and its payments
func (repo *LeaseRepository) Delete(id uint) error {
	if err := repo.database.Where("lease_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	result := repo.database.Delete(&model.Lease{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "delete lease")
	}
	return nil
}
