package service

import (
	"context"
	"fmt"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/reconcile"
	"rental-service/internal/repository"
	"rental-service/internal/scope"
	"rental-service/pkg/logger"
	"rental-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgAddressTaken = "property with this address already exists."

// PropertyInput is the client-writable part of a property
type PropertyInput struct {
	Address      string
	Description  *string
	PropertyType model.PropertyType
	Status       model.PropertyStatus
	Area         float64
	NumOfRooms   int
}

type PropertyService struct {
	db       *gorm.DB
	settings Settings
}

func NewPropertyService(db *gorm.DB, settings Settings) *PropertyService {
	return &PropertyService{db: db, settings: settings}
}

func (s *PropertyService) List(ctx context.Context, id scope.Identity) ([]model.Property, error) {
	defer prometheus.TrackDBOperation("property_list")()
	return repository.NewPropertyRepository(s.db.WithContext(ctx)).List(scope.PropertiesOwnedBy(id))
}

func (s *PropertyService) Get(ctx context.Context, id scope.Identity, propertyID uint) (model.Property, error) {
	defer prometheus.TrackDBOperation("property_get")()
	return repository.NewPropertyRepository(s.db.WithContext(ctx)).Find(propertyID, scope.PropertiesOwnedBy(id))
}

// Create stores a property owned by the caller. A new property has no leases,
// so only under_renovation survives from the input.
func (s *PropertyService) Create(ctx context.Context, id scope.Identity, in PropertyInput) (model.Property, error) {
	if !id.Authenticated() {
		return model.Property{}, apperr.ErrUnauthorized
	}
	if err := validateProperty(in); err != nil {
		return model.Property{}, err
	}

	defer prometheus.TrackDBOperation("property_create")()

	ownerID := id.UserID
	property := model.Property{OwnerID: &ownerID}
	assign(&property, in)
	if in.Status != model.StatusUnderRenovation {
		property.Status = model.StatusAvailable
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := repository.NewPropertyRepository(tx)
		taken, err := properties.AddressTaken(property.Address, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.NewValidationError("address", msgAddressTaken)
		}
		if err := properties.Create(&property); err != nil {
			return fmt.Errorf("create property: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Property{}, err
	}

	prometheus.RecordEntityOperation("property", "create")
	logger.FromStdContext(ctx).Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.Uint("owner_id", ownerID))
	return property, nil
}

// Update rewrites one of the caller's properties. Requesting under_renovation
// sets it; any other status is recomputed from the property's leases.
func (s *PropertyService) Update(ctx context.Context, id scope.Identity, propertyID uint, in PropertyInput) (model.Property, error) {
	if err := validateProperty(in); err != nil {
		return model.Property{}, err
	}

	defer prometheus.TrackDBOperation("property_update")()

	today := s.settings.today()
	var property model.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := repository.NewPropertyRepository(tx)
		leases := repository.NewLeaseRepository(tx)

		if _, err := properties.Find(propertyID, scope.PropertiesOwnedBy(id)); err != nil {
			return err
		}
		locked, err := properties.FindForUpdate(propertyID)
		if err != nil {
			return err
		}
		property = locked

		taken, err := properties.AddressTaken(in.Address, property.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.NewValidationError("address", msgAddressTaken)
		}

		assign(&property, in)
		if in.Status != model.StatusUnderRenovation {
			active, err := leases.ListActiveByProperty(property.ID, 0)
			if err != nil {
				return err
			}
			// the caller asked to leave renovation, so the preserve option
			// does not apply here
			property.Status = reconcile.StatusFromLeases(in.Status, active, today, reconcile.Options{})
		}
		if err := properties.Save(&property); err != nil {
			return fmt.Errorf("save property: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Property{}, err
	}

	prometheus.RecordEntityOperation("property", "update")
	prometheus.RecordReconciliation("property_update", string(property.Status))
	return property, nil
}

// Delete removes one of the caller's properties with its leases and payments
func (s *PropertyService) Delete(ctx context.Context, id scope.Identity, propertyID uint) error {
	defer prometheus.TrackDBOperation("property_delete")()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := repository.NewPropertyRepository(tx)
		if _, err := properties.Find(propertyID, scope.PropertiesOwnedBy(id)); err != nil {
			return err
		}
		return properties.Delete(propertyID)
	})
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("property", "delete")
	logger.FromStdContext(ctx).Info("Property deleted", zap.Uint("property_id", propertyID))
	return nil
}

func validateProperty(in PropertyInput) error {
	v := &apperr.ValidationError{}
	if in.Address == "" {
		v.Add("address", "This field may not be blank.")
	}
	if len(in.Address) > 150 {
		v.Add("address", "Ensure this field has no more than 150 characters.")
	}
	if !in.PropertyType.Valid() {
		v.Add("property_type", fmt.Sprintf("\"%s\" is not a valid choice.", in.PropertyType))
	}
	if in.Status != "" && !in.Status.Valid() {
		v.Add("status", fmt.Sprintf("\"%s\" is not a valid choice.", in.Status))
	}
	if in.Area < 1 {
		v.Add("area", "Ensure this value is greater than or equal to 1.")
	}
	if in.NumOfRooms < 1 {
		v.Add("num_of_rooms", "Ensure this value is greater than or equal to 1.")
	}
	return v.OrNil()
}

func assign(property *model.Property, in PropertyInput) {
	property.Address = in.Address
	property.Description = in.Description
	property.PropertyType = in.PropertyType
	property.Status = in.Status
	property.Area = round2(in.Area)
	property.NumOfRooms = in.NumOfRooms
}
