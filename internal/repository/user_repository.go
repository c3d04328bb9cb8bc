package repository

import (
	"rental-service/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(id uint) (model.User, error) {
	user := model.User{}
	if err := repo.database.First(&user, id).Error; err != nil {
		return model.User{}, notFound(err, "find user")
	}
	return user, nil
}

func (repo *UserRepository) List() ([]model.User, error) {
	users := make([]model.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) ExistsByUsername(username string) (bool, error) {
	return repo.exists("username = ?", username)
}

func (repo *UserRepository) ExistsByEmail(email string) (bool, error) {
	return repo.exists("LOWER(email) = LOWER(?)", email)
}

func (repo *UserRepository) exists(query string, arg interface{}) (bool, error) {
	var count int64
	if err := repo.database.Model(&model.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *UserRepository) Create(user *model.User) error {
	return repo.database.Create(user).Error
}
