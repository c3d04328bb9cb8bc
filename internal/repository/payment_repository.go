package repository

import (
	"rental-service/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	database *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{database: database}
}

func (repo *PaymentRepository) List(scopes ...Scope) ([]model.Payment, error) {
	payments := make([]model.Payment, 0)
	if err := repo.database.Scopes(scopes...).Order("payments.id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *PaymentRepository) Find(id uint, scopes ...Scope) (model.Payment, error) {
	payment := model.Payment{}
	err := repo.database.Scopes(scopes...).Where("payments.id = ?", id).First(&payment).Error
	if err != nil {
		return model.Payment{}, notFound(err, "find payment")
	}
	return payment, nil
}

func (repo *PaymentRepository) Create(payment *model.Payment) error {
	return repo.database.Create(payment).Error
}

func (repo *PaymentRepository) Save(payment *model.Payment) error {
	return repo.database.Model(payment).
		Select("lease_id", "amount", "payment_date", "is_paid").
		Updates(payment).Error
}

func (repo *PaymentRepository) Delete(id uint) error {
	result := repo.database.Delete(&model.Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "delete payment")
	}
	return nil
}
