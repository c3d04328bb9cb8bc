package repository

import (
	"rental-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PropertyRepository struct {
	database *gorm.DB
}

func NewPropertyRepository(database *gorm.DB) *PropertyRepository {
	return &PropertyRepository{database: database}
}

func (repo *PropertyRepository) List(scopes ...Scope) ([]model.Property, error) {
	properties := make([]model.Property, 0)
	if err := repo.database.Scopes(scopes...).Order("properties.id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (repo *PropertyRepository) Find(id uint, scopes ...Scope) (model.Property, error) {
	property := model.Property{}
	err := repo.database.Scopes(scopes...).Where("properties.id = ?", id).First(&property).Error
	if err != nil {
		return model.Property{}, notFound(err, "find property")
	}
	return property, nil
}

// FindForUpdate loads a property and locks its row until the surrounding
// transaction ends. Dialects without row locks ignore the clause.
func (repo *PropertyRepository) FindForUpdate(id uint) (model.Property, error) {
	property := model.Property{}
	err := repo.database.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("properties.id = ?", id).
		First(&property).Error
	if err != nil {
		return model.Property{}, notFound(err, "lock property")
	}
	return property, nil
}

func (repo *PropertyRepository) AddressTaken(address string, excludeID uint) (bool, error) {
	var count int64
	query := repo.database.Model(&model.Property{}).Where("address = ?", address)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *PropertyRepository) Create(property *model.Property) error {
	return repo.database.Create(property).Error
}

// Save writes the client-editable columns; owner and timestamps of creation
// are left alone.
func (repo *PropertyRepository) Save(property *model.Property) error {
	return repo.database.Model(property).
		Select("address", "description", "property_type", "status", "area", "num_of_rooms").
		Updates(property).Error
}

// UpdateStatus writes only the status column
func (repo *PropertyRepository) UpdateStatus(id uint, status model.PropertyStatus) error {
	return repo.database.Model(&model.Property{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes a property together with its leases and their payments
func (repo *PropertyRepository) Delete(id uint) error {
	leaseIDs := repo.database.Model(&model.Lease{}).Select("id").Where("property_id = ?", id)
	if err := repo.database.Where("lease_id IN (?)", leaseIDs).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	if err := repo.database.Where("property_id = ?", id).Delete(&model.Lease{}).Error; err != nil {
		return err
	}
	result := repo.database.Delete(&model.Property{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "delete property")
	}
	return nil
}
