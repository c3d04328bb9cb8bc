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

func propertyInput(address string) PropertyInput {
	return PropertyInput{
		Address:      address,
		PropertyType: model.PropertyApartment,
		Area:         85.5,
		NumOfRooms:   3,
	}
}

func TestPropertyCreateAssignsOwnerAndStatus(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	svc := NewPropertyService(db, Settings{Clock: testdb.FixedClock(testdb.Date(2026, 1, 1))})
	id := scope.Identity{UserID: owner.ID}

	in := propertyInput("1 Main St")
	in.Status = model.StatusRented
	property, err := svc.Create(context.Background(), id, in)
	require.NoError(t, err)

	require.NotNil(t, property.OwnerID)
	assert.Equal(t, owner.ID, *property.OwnerID)
	assert.Equal(t, model.StatusAvailable, property.Status)

	in = propertyInput("2 Main St")
	in.Status = model.StatusUnderRenovation
	property, err = svc.Create(context.Background(), id, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderRenovation, property.Status)
}

func TestPropertyCreateValidation(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	testdb.Property(t, db, owner, "1 Main St")
	svc := NewPropertyService(db, Settings{})
	id := scope.Identity{UserID: owner.ID}

	_, err := svc.Create(context.Background(), id, propertyInput("1 Main St"))
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")

	in := propertyInput("")
	in.PropertyType = "castle"
	in.Area = 0
	in.NumOfRooms = 0
	_, err = svc.Create(context.Background(), id, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "property_type")
	assert.Contains(t, verr.Fields, "area")
	assert.Contains(t, verr.Fields, "num_of_rooms")

	_, err = svc.Create(context.Background(), scope.Identity{}, propertyInput("3 Main St"))
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestPropertyUpdateStatusRules(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "1 Main St")
	testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)

	svc := NewPropertyService(db, Settings{Clock: testdb.FixedClock(testdb.Date(2026, 3, 1))})
	id := scope.Identity{UserID: owner.ID}
	ctx := context.Background()

	in := propertyInput("1 Main St")
	in.Status = model.StatusUnderRenovation
	updated, err := svc.Update(ctx, id, property.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderRenovation, updated.Status)

	// asking for available while a lease is running yields rented
	in.Status = model.StatusAvailable
	in.Address = "1A Main St"
	updated, err = svc.Update(ctx, id, property.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRented, updated.Status)

	stored, err := svc.Get(ctx, id, property.ID)
	require.NoError(t, err)
	assert.Equal(t, "1A Main St", stored.Address)
	assert.Equal(t, model.StatusRented, stored.Status)
}

func TestPropertyAccessIsOwnerScoped(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	other := testdb.User(t, db, "owner2", model.RoleOwner)
	property := testdb.Property(t, db, owner, "1 Main St")
	testdb.Property(t, db, other, "2 Main St")

	svc := NewPropertyService(db, Settings{})
	ctx := context.Background()
	stranger := scope.Identity{UserID: other.ID}

	_, err := svc.Get(ctx, stranger, property.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Update(ctx, stranger, property.ID, propertyInput("1 Main St"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, stranger, property.ID), apperr.ErrNotFound)

	properties, err := svc.List(ctx, scope.Identity{UserID: owner.ID})
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, property.ID, properties[0].ID)
}

func TestPropertyDeleteCascades(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "1 Main St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	testdb.Payment(t, db, lease, 900, testdb.Date(2026, 1, 10))

	svc := NewPropertyService(db, Settings{})
	require.NoError(t, svc.Delete(context.Background(), scope.Identity{UserID: owner.ID}, property.ID))

	var leases, payments int64
	require.NoError(t, db.Model(&model.Lease{}).Count(&leases).Error)
	require.NoError(t, db.Model(&model.Payment{}).Count(&payments).Error)
	assert.Zero(t, leases)
	assert.Zero(t, payments)
}
