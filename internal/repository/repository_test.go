package repository

import (
	"testing"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/scope"
	"rental-service/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRepositoryScopedFind(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	other := testdb.User(t, db, "owner2", model.RoleOwner)
	property := testdb.Property(t, db, owner, "123 Test St")

	repo := NewPropertyRepository(db)

	found, err := repo.Find(property.ID, scope.PropertiesOwnedBy(scope.Identity{UserID: owner.ID}))
	require.NoError(t, err)
	assert.Equal(t, "123 Test St", found.Address)

	_, err = repo.Find(property.ID, scope.PropertiesOwnedBy(scope.Identity{UserID: other.ID}))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.Find(9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPropertyRepositoryUpdateStatusTouchesOnlyStatus(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	property := testdb.Property(t, db, owner, "123 Test St")

	// a concurrent edit that was never written through this handle
	require.NoError(t, db.Model(&model.Property{}).Where("id = ?", property.ID).Update("num_of_rooms", 7).Error)

	repo := NewPropertyRepository(db)
	require.NoError(t, repo.UpdateStatus(property.ID, model.StatusRented))

	reloaded, err := repo.Find(property.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRented, reloaded.Status)
	assert.Equal(t, 7, reloaded.NumOfRooms)
}

func TestPropertyRepositoryAddressTaken(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	property := testdb.Property(t, db, owner, "123 Test St")
	repo := NewPropertyRepository(db)

	taken, err := repo.AddressTaken("123 Test St", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.AddressTaken("123 Test St", property.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPropertyRepositoryDeleteCascades(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "123 Test St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	testdb.Payment(t, db, lease, 1200, testdb.Date(2026, 2, 1))

	repo := NewPropertyRepository(db)
	require.NoError(t, repo.Delete(property.ID))

	var leases, payments int64
	require.NoError(t, db.Model(&model.Lease{}).Count(&leases).Error)
	require.NoError(t, db.Model(&model.Payment{}).Count(&payments).Error)
	assert.Zero(t, leases)
	assert.Zero(t, payments)

	assert.ErrorIs(t, repo.Delete(property.ID), apperr.ErrNotFound)
}

func TestLeaseRepositoryDetailAndSiblings(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "123 Test St")

	start, end := testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31)
	first := testdb.Lease(t, db, tenant, &property, start, end, true)
	second := testdb.Lease(t, db, tenant, &property, start, end, true)
	testdb.Lease(t, db, tenant, &property, start, end, false)
	p1 := testdb.Payment(t, db, first, 500, testdb.Date(2026, 2, 1))
	p2 := testdb.Payment(t, db, first, 700, testdb.Date(2026, 3, 1))

	repo := NewLeaseRepository(db)

	detail, err := repo.FindDetail(first.ID, scope.LeasesOwnedBy(scope.Identity{UserID: owner.ID}))
	require.NoError(t, err)
	require.NotNil(t, detail.Property)
	assert.Equal(t, property.Address, detail.Property.Address)
	require.Len(t, detail.Payments, 2)
	assert.Equal(t, p1.ID, detail.Payments[0].ID)
	assert.Equal(t, p2.ID, detail.Payments[1].ID)
	assert.Equal(t, start, detail.Start())
	assert.Equal(t, end, detail.End())

	siblings, err := repo.ListActiveByProperty(property.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, siblings, 1)
	assert.Equal(t, second.ID, siblings[0].ID)

	_, err = repo.FindDetail(first.ID, scope.LeasesOwnedBy(scope.Identity{UserID: tenant.ID}))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLeaseRepositorySaveAndDelete(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	property := testdb.Property(t, db, owner, "123 Test St")
	lease := testdb.Lease(t, db, tenant, &property, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	testdb.Payment(t, db, lease, 500, testdb.Date(2026, 2, 1))

	repo := NewLeaseRepository(db)

	lease.ActiveLease = false
	lease.RateAmount = 1500
	require.NoError(t, repo.Save(&lease))

	reloaded, err := repo.Find(lease.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.ActiveLease)
	assert.Equal(t, 1500.0, reloaded.RateAmount)

	require.NoError(t, repo.Delete(lease.ID))
	var payments int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)
	assert.ErrorIs(t, repo.Delete(lease.ID), apperr.ErrNotFound)
}

func TestPaymentRepositoryScopedList(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.User(t, db, "owner1", model.RoleOwner)
	other := testdb.User(t, db, "owner2", model.RoleOwner)
	tenant := testdb.User(t, db, "tenant1", model.RoleTenant)
	mine := testdb.Property(t, db, owner, "1 Mine St")
	theirs := testdb.Property(t, db, other, "2 Theirs St")
	myLease := testdb.Lease(t, db, tenant, &mine, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	theirLease := testdb.Lease(t, db, tenant, &theirs, testdb.Date(2026, 1, 1), testdb.Date(2026, 12, 31), true)
	mp := testdb.Payment(t, db, myLease, 100, testdb.Date(2026, 2, 1))
	tp := testdb.Payment(t, db, theirLease, 100, testdb.Date(2026, 2, 1))

	repo := NewPaymentRepository(db)
	payments, err := repo.List(scope.PaymentsOwnedBy(scope.Identity{UserID: owner.ID}))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, mp.ID, payments[0].ID)

	_, err = repo.Find(tp.ID, scope.PaymentsOwnedBy(scope.Identity{UserID: owner.ID}))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	mp.IsPaid = true
	mp.Amount = 1800
	require.NoError(t, repo.Save(&mp))
	reloaded, err := repo.Find(mp.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPaid)
	assert.Equal(t, 1800.0, reloaded.Amount)
}

func TestUserRepositoryExists(t *testing.T) {
	db := testdb.Open(t)
	testdb.User(t, db, "owner1", model.RoleOwner)
	repo := NewUserRepository(db)

	exists, err := repo.ExistsByUsername("owner1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("OWNER1@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername("nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
