package service

import (
	"context"
	"testing"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/scope"
	"rental-service/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCreate(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	stranger := testdb.User(t, db, "stranger", model.RoleGuest)
	property := testdb.Property(t, db, owner, "1 Main St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)

	svc := NewPaymentService(db, Settings{Clock: testdb.FixedClock(testdb.Date(2026, 2, 3))})
	ctx := context.Background()

	payment, err := svc.Create(ctx, scope.Identity{UserID: tenant.ID}, PaymentInput{LeaseID: lease.ID, Amount: 1000.004})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, payment.Amount)
	assert.False(t, payment.IsPaid)
	assert.Equal(t, testdb.Date(2026, 2, 3), payment.PaidOn())

	paidOn := testdb.Date(2026, 1, 15)
	payment, err = svc.Create(ctx, scope.Identity{UserID: owner.ID}, PaymentInput{LeaseID: lease.ID, Amount: 50, PaymentDate: &paidOn, IsPaid: true})
	require.NoError(t, err)
	assert.True(t, payment.IsPaid)
	assert.Equal(t, paidOn, payment.PaidOn())

	_, err = svc.Create(ctx, scope.Identity{UserID: stranger.ID}, PaymentInput{LeaseID: lease.ID, Amount: 1})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lease")

	_, err = svc.Create(ctx, scope.Identity{UserID: owner.ID}, PaymentInput{LeaseID: 9999, Amount: 1})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lease")
}

func TestPaymentAccessIsOwnerScoped(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "1 Main St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	payment := testdb.Payment(t, db, lease, 100, testdb.Date(2026, 1, 5))

	svc := NewPaymentService(db, Settings{Clock: testdb.FixedClock(testdb.Date(2026, 2, 3))})
	ctx := context.Background()
	asOwner := scope.Identity{UserID: owner.ID}
	asTenant := scope.Identity{UserID: tenant.ID}

	_, err := svc.Get(ctx, asTenant, payment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	payments, err := svc.List(ctx, asTenant)
	require.NoError(t, err)
	assert.Empty(t, payments)

	updated, err := svc.Update(ctx, asOwner, payment.ID, PaymentInput{LeaseID: lease.ID, Amount: 150, IsPaid: true})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Amount)
	assert.True(t, updated.IsPaid)
	assert.Equal(t, testdb.Date(2026, 1, 5), updated.PaidOn())

	_, err = svc.Update(ctx, asTenant, payment.ID, PaymentInput{LeaseID: lease.ID, Amount: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, asTenant, payment.ID), apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, asOwner, payment.ID))

	_, err = svc.Get(ctx, asOwner, payment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPaymentRejectsNegativeAmount(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "1 Main St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	payment := testdb.Payment(t, db, lease, 100, testdb.Date(2026, 1, 5))

	svc := NewPaymentService(db, Settings{Clock: testdb.FixedClock(testdb.Date(2026, 2, 3))})
	ctx := context.Background()
	asOwner := scope.Identity{UserID: owner.ID}

	_, err := svc.Create(ctx, asOwner, PaymentInput{LeaseID: lease.ID, Amount: -1})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")

	_, err = svc.Update(ctx, asOwner, payment.ID, PaymentInput{LeaseID: lease.ID, Amount: -0.5})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")

	stored := model.Payment{}
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, 100.0, stored.Amount)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
