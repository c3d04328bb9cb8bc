package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/repository"
	"rental-service/internal/scope"
	"rental-service/prometheus"

	"gorm.io/gorm"
)

// PaymentInput is the client-writable part of a payment
type PaymentInput struct {
	LeaseID uint
	Amount  float64
	// PaymentDate nil means today
	PaymentDate *time.Time
	IsPaid      bool
}

type PaymentService struct {
	db       *gorm.DB
	settings Settings
}

func NewPaymentService(db *gorm.DB, settings Settings) *PaymentService {
	return &PaymentService{db: db, settings: settings}
}

func (s *PaymentService) List(ctx context.Context, id scope.Identity) ([]model.Payment, error) {
	defer prometheus.TrackDBOperation("payment_list")()
	return repository.NewPaymentRepository(s.db.WithContext(ctx)).List(scope.PaymentsOwnedBy(id))
}

func (s *PaymentService) Get(ctx context.Context, id scope.Identity, paymentID uint) (model.Payment, error) {
	defer prometheus.TrackDBOperation("payment_get")()
	return repository.NewPaymentRepository(s.db.WithContext(ctx)).Find(paymentID, scope.PaymentsOwnedBy(id))
}

// Create records a payment against a lease the caller rents or owns
func (s *PaymentService) Create(ctx context.Context, id scope.Identity, in PaymentInput) (model.Payment, error) {
	if !id.Authenticated() {
		return model.Payment{}, apperr.ErrUnauthorized
	}
	if err := validatePayment(in); err != nil {
		return model.Payment{}, err
	}

	defer prometheus.TrackDBOperation("payment_create")()

	payment := model.Payment{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkLease(tx, id, in.LeaseID); err != nil {
			return err
		}
		s.fill(&payment, in)
		if err := repository.NewPaymentRepository(tx).Create(&payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Payment{}, err
	}

	prometheus.RecordEntityOperation("payment", "create")
	return payment, nil
}

// Update rewrites a payment on one of the caller's properties
func (s *PaymentService) Update(ctx context.Context, id scope.Identity, paymentID uint, in PaymentInput) (model.Payment, error) {
	if err := validatePayment(in); err != nil {
		return model.Payment{}, err
	}

	defer prometheus.TrackDBOperation("payment_update")()

	var payment model.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := repository.NewPaymentRepository(tx)
		found, err := payments.Find(paymentID, scope.PaymentsOwnedBy(id))
		if err != nil {
			return err
		}
		payment = found

		if in.LeaseID != payment.LeaseID {
			if err := checkLease(tx, id, in.LeaseID); err != nil {
				return err
			}
		}
		if in.PaymentDate == nil {
			// keep the stored date on updates that omit it
			stored := payment.PaymentDate
			s.fill(&payment, in)
			payment.PaymentDate = stored
		} else {
			s.fill(&payment, in)
		}
		if err := payments.Save(&payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Payment{}, err
	}

	prometheus.RecordEntityOperation("payment", "update")
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id scope.Identity, paymentID uint) error {
	defer prometheus.TrackDBOperation("payment_delete")()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := repository.NewPaymentRepository(tx)
		if _, err := payments.Find(paymentID, scope.PaymentsOwnedBy(id)); err != nil {
			return err
		}
		return payments.Delete(paymentID)
	})
	if err != nil {
		return err
	}

	prometheus.RecordEntityOperation("payment", "delete")
	return nil
}

func (s *PaymentService) fill(payment *model.Payment, in PaymentInput) {
	payment.LeaseID = in.LeaseID
	payment.Amount = round2(in.Amount)
	payment.IsPaid = in.IsPaid
	if in.PaymentDate != nil {
		payment.PaymentDate = model.DateOf(*in.PaymentDate)
	} else {
		payment.PaymentDate = model.DateOf(s.settings.today())
	}
}

func validatePayment(in PaymentInput) error {
	if in.Amount < 0 {
		return apperr.NewValidationError("amount", "Ensure this value is greater than or equal to 0.")
	}
	return nil
}

// checkLease rejects lease references the caller may not attach payments to.
// Foreign leases are reported as missing.
func checkLease(tx *gorm.DB, id scope.Identity, leaseID uint) error {
	lease, err := repository.NewLeaseRepository(tx).FindWithParties(leaseID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return invalidPK("lease", leaseID)
		}
		return err
	}
	if !scope.CanUseLease(id, lease, lease.Property) {
		return invalidPK("lease", leaseID)
	}
	return nil
}
