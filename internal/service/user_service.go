package service

import (
	"context"
	"fmt"
	"strings"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/repository"
	"rental-service/pkg/logger"
	"rental-service/prometheus"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a guest account with a bcrypt password hash
func (s *UserService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	defer prometheus.TrackDBOperation("user_register")()

	user := model.User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         model.RoleGuest,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		v := &apperr.ValidationError{}
		taken, err := users.ExistsByUsername(user.Username)
		if err != nil {
			return err
		}
		if taken {
			v.Add("username", "A user with that username already exists.")
		}
		taken, err = users.ExistsByEmail(user.Email)
		if err != nil {
			return err
		}
		if taken {
			v.Add("email", "user with this email already exists.")
		}
		if err := v.OrNil(); err != nil {
			return err
		}
		return users.Create(&user)
	})
	if err != nil {
		return model.User{}, err
	}

	prometheus.RecordEntityOperation("user", "create")
	logger.FromStdContext(ctx).Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID uint) (model.User, error) {
	return repository.NewUserRepository(s.db.WithContext(ctx)).FindByID(userID)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	defer prometheus.TrackDBOperation("user_list")()
	return repository.NewUserRepository(s.db.WithContext(ctx)).List()
}

