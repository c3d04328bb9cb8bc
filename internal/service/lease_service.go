package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

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

// LeaseInput is the client-writable part of a lease. Nil fields and
// KeepProperty leave the stored value on update and take the default on create.
type LeaseInput struct {
	// TenantID zero means the caller on create and the stored tenant on update
	TenantID     uint
	PropertyID   *uint
	KeepProperty bool
	// StartDate nil means today on create
	StartDate   *time.Time
	EndDate     time.Time
	RateAmount  float64
	ActiveLease *bool
}

type LeaseService struct {
	db       *gorm.DB
	settings Settings
}

func NewLeaseService(db *gorm.DB, settings Settings) *LeaseService {
	return &LeaseService{db: db, settings: settings}
}

func (s *LeaseService) List(ctx context.Context, id scope.Identity) ([]model.Lease, error) {
	defer prometheus.TrackDBOperation("lease_list")()
	return repository.NewLeaseRepository(s.db.WithContext(ctx)).List(scope.LeasesOwnedBy(id))
}

// Detail returns a lease with its property and payments
func (s *LeaseService) Detail(ctx context.Context, id scope.Identity, leaseID uint) (model.Lease, error) {
	defer prometheus.TrackDBOperation("lease_detail")()
	return repository.NewLeaseRepository(s.db.WithContext(ctx)).FindDetail(leaseID, scope.LeasesOwnedBy(id))
}

// Create inserts a lease for any authenticated caller and reconciles its property
func (s *LeaseService) Create(ctx context.Context, id scope.Identity, in LeaseInput) (model.Lease, error) {
	if !id.Authenticated() {
		return model.Lease{}, apperr.ErrUnauthorized
	}
	if in.TenantID == 0 {
		in.TenantID = id.UserID
	}
	if in.StartDate == nil {
		today := s.settings.today()
		in.StartDate = &today
	}

	lease := model.Lease{}
	apply(&lease, in)

	if err := s.Save(ctx, &lease); err != nil {
		return model.Lease{}, err
	}
	prometheus.RecordEntityOperation("lease", "create")
	return lease, nil
}

// Update rewrites a lease on one of the caller's properties and returns its detail
func (s *LeaseService) Update(ctx context.Context, id scope.Identity, leaseID uint, in LeaseInput) (model.Lease, error) {
	leases := repository.NewLeaseRepository(s.db.WithContext(ctx))
	lease, err := leases.Find(leaseID, scope.LeasesOwnedBy(id))
	if err != nil {
		return model.Lease{}, err
	}
	if in.TenantID == 0 {
		in.TenantID = lease.TenantID
	}
	previous := lease.PropertyID
	apply(&lease, in)

	if err := s.save(ctx, &lease, previous); err != nil {
		return model.Lease{}, err
	}
	prometheus.RecordEntityOperation("lease", "update")
	return leases.FindDetail(lease.ID)
}

// Save validates and writes lease, then recomputes the status of its property
// in the same transaction. A rejected lease leaves the store untouched.
func (s *LeaseService) Save(ctx context.Context, lease *model.Lease) error {
	return s.save(ctx, lease, nil)
}

// save also recomputes previous, the property the lease was moved off
func (s *LeaseService) save(ctx context.Context, lease *model.Lease, previous *uint) error {
	log := logger.FromStdContext(ctx)
	today := s.settings.today()

	if err := reconcile.ValidateDates(lease.Start(), lease.End(), today); err != nil {
		recordValidationFailures(err)
		log.Info("Lease rejected by date rules", zap.Uint("lease_id", lease.ID), zap.Error(err))
		return err
	}
	if lease.RateAmount < 0 {
		return apperr.NewValidationError("rate_amount", "Ensure this value is greater than or equal to 0.")
	}
	if previous != nil && lease.PropertyID != nil && *previous == *lease.PropertyID {
		previous = nil
	}

	defer prometheus.TrackDBOperation("lease_save")()

	var status, previousStatus model.PropertyStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		properties := repository.NewPropertyRepository(tx)
		leases := repository.NewLeaseRepository(tx)

		if _, err := users.FindByID(lease.TenantID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return invalidPK("tenant", lease.TenantID)
			}
			return err
		}

		// lock before reading sibling leases so concurrent saves on the
		// same property see each other's writes
		locked, err := lockProperties(properties, lease.PropertyID, previous)
		if err != nil {
			return err
		}

		if lease.ID == 0 {
			if err := leases.Create(lease); err != nil {
				return fmt.Errorf("create lease: %w", err)
			}
		} else if err := leases.Save(lease); err != nil {
			return fmt.Errorf("save lease: %w", err)
		}

		if previous != nil {
			old := locked[*previous]
			remaining, err := leases.ListActiveByProperty(old.ID, lease.ID)
			if err != nil {
				return fmt.Errorf("list remaining leases: %w", err)
			}
			previousStatus = reconcile.StatusFromLeases(old.Status, remaining, today, s.settings.options())
			if err := properties.UpdateStatus(old.ID, previousStatus); err != nil {
				return fmt.Errorf("update previous property status: %w", err)
			}
		}

		if lease.PropertyID == nil {
			return nil
		}

		property := locked[*lease.PropertyID]
		others, err := leases.ListActiveByProperty(property.ID, lease.ID)
		if err != nil {
			return fmt.Errorf("list sibling leases: %w", err)
		}
		status = reconcile.PropertyStatus(property.Status, *lease, others, today, s.settings.options())
		if err := properties.UpdateStatus(property.ID, status); err != nil {
			return fmt.Errorf("update property status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if previous != nil {
		prometheus.RecordReconciliation("move", string(previousStatus))
		log.Info("Property status reconciled after lease moved away",
			zap.Uint("lease_id", lease.ID),
			zap.Uint("property_id", *previous),
			zap.String("status", string(previousStatus)))
	}
	if lease.PropertyID != nil {
		prometheus.RecordReconciliation("save", string(status))
		log.Info("Property status reconciled",
			zap.Uint("lease_id", lease.ID),
			zap.Uint("property_id", *lease.PropertyID),
			zap.String("status", string(status)))
	}
	return nil
}

// lockProperties locks the lease's property and the one it left, lower id first
func lockProperties(properties *repository.PropertyRepository, target, previous *uint) (map[uint]model.Property, error) {
	ids := make([]uint, 0, 2)
	if target != nil {
		ids = append(ids, *target)
	}
	if previous != nil {
		ids = append(ids, *previous)
	}
	slices.Sort(ids)

	locked := make(map[uint]model.Property, len(ids))
	for _, id := range ids {
		property, err := properties.FindForUpdate(id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) && target != nil && id == *target {
				return nil, invalidPK("property", id)
			}
			return nil, err
		}
		locked[id] = property
	}
	return locked, nil
}

// Delete removes a lease on one of the caller's properties with its payments
// and recomputes the property status from the remaining leases.
func (s *LeaseService) Delete(ctx context.Context, id scope.Identity, leaseID uint) error {
	log := logger.FromStdContext(ctx)
	today := s.settings.today()

	defer prometheus.TrackDBOperation("lease_delete")()

	var status model.PropertyStatus
	var propertyID *uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leases := repository.NewLeaseRepository(tx)
		properties := repository.NewPropertyRepository(tx)

		lease, err := leases.Find(leaseID, scope.LeasesOwnedBy(id))
		if err != nil {
			return err
		}
		propertyID = lease.PropertyID

		var property model.Property
		if propertyID != nil {
			if property, err = properties.FindForUpdate(*propertyID); err != nil {
				return err
			}
		}

		if err := leases.Delete(lease.ID); err != nil {
			return fmt.Errorf("delete lease: %w", err)
		}

		if propertyID == nil {
			return nil
		}
		remaining, err := leases.ListActiveByProperty(property.ID, lease.ID)
		if err != nil {
			return fmt.Errorf("list remaining leases: %w", err)
		}
		status = reconcile.StatusFromLeases(property.Status, remaining, today, s.settings.options())
		return properties.UpdateStatus(property.ID, status)
	})
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("lease", "delete")
	if propertyID != nil {
		prometheus.RecordReconciliation("delete", string(status))
		log.Info("Property status reconciled after lease deletion",
			zap.Uint("lease_id", leaseID),
			zap.Uint("property_id", *propertyID),
			zap.String("status", string(status)))
	}
	return nil
}

// ForContract loads a lease with tenant and property for document export.
// Only the tenant and the property owner may export.
func (s *LeaseService) ForContract(ctx context.Context, id scope.Identity, leaseID uint) (model.Lease, error) {
	if !id.Authenticated() {
		return model.Lease{}, apperr.ErrUnauthorized
	}
	lease, err := repository.NewLeaseRepository(s.db.WithContext(ctx)).FindWithParties(leaseID)
	if err != nil {
		return model.Lease{}, err
	}
	if err := scope.CanExportContract(id, lease, lease.Property); err != nil {
		prometheus.RecordAuthError("contract_denied")
		return model.Lease{}, err
	}
	return lease, nil
}

// Today exposes the calendar day used by the lease rules
func (s *LeaseService) Today() time.Time {
	return s.settings.today()
}

func apply(lease *model.Lease, in LeaseInput) {
	lease.TenantID = in.TenantID
	if !in.KeepProperty {
		lease.PropertyID = in.PropertyID
	}
	if in.StartDate != nil {
		lease.StartDate = model.DateOf(*in.StartDate)
	}
	lease.EndDate = model.DateOf(in.EndDate)
	lease.RateAmount = round2(in.RateAmount)
	if in.ActiveLease != nil {
		lease.ActiveLease = *in.ActiveLease
	}
}
