package dto

import (
	"encoding/json"
	"testing"
	"time"

	"rental-service/internal/apperr"
	"rental-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&PropertyRequest{PropertyType: "castle", Area: 0, NumOfRooms: 2})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"This field is required."}, verr.Fields["address"])
	assert.Equal(t, []string{`"castle" is not a valid choice.`}, verr.Fields["property_type"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 1."}, verr.Fields["area"])
	assert.NotContains(t, verr.Fields, "num_of_rooms")
}

func TestValidatorAcceptsValidRequests(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&PropertyRequest{
		Address:      "1 Main St",
		PropertyType: "bungalow",
		Area:         40,
		NumOfRooms:   2,
	}))
	assert.NoError(t, v.Validate(&LeaseRequest{EndDate: "2026-12-31"}))
	assert.NoError(t, v.Validate(&PaymentRequest{Lease: 1, Amount: 10}))
}

func TestValidatorRejectsMalformedDates(t *testing.T) {
	start := "01/02/2026"
	err := NewValidator().Validate(&LeaseRequest{StartDate: &start, EndDate: "2026-12-31"})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "start_date")
	assert.NotContains(t, verr.Fields, "end_date")
}

func TestLeaseRequestOmittedFieldsAreLeftUnset(t *testing.T) {
	var req LeaseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tenant":2,"end_date":"2027-01-31","rate_amount":900}`), &req))

	in, err := req.ToInput()
	require.NoError(t, err)

	assert.Nil(t, in.StartDate)
	assert.Nil(t, in.ActiveLease)
	assert.True(t, in.KeepProperty)
	assert.Nil(t, in.PropertyID)
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), in.EndDate)
	assert.Equal(t, uint(2), in.TenantID)
}

func TestLeaseRequestPropertyPresence(t *testing.T) {
	var req LeaseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"property":4,"start_date":"2026-11-01","end_date":"2027-01-31","active_lease":false}`), &req))

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.False(t, in.KeepProperty)
	require.NotNil(t, in.PropertyID)
	assert.Equal(t, uint(4), *in.PropertyID)
	require.NotNil(t, in.StartDate)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), *in.StartDate)
	require.NotNil(t, in.ActiveLease)
	assert.False(t, *in.ActiveLease)

	req = LeaseRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"property":null,"end_date":"2027-01-31"}`), &req))
	in, err = req.ToInput()
	require.NoError(t, err)
	assert.False(t, in.KeepProperty, "explicit null detaches the lease")
	assert.Nil(t, in.PropertyID)

	req = LeaseRequest{}
	assert.Error(t, json.Unmarshal([]byte(`{"property":"four","end_date":"2027-01-31"}`), &req))
}

func TestPaymentRequestDate(t *testing.T) {
	in, err := PaymentRequest{Lease: 1, Amount: 5}.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.PaymentDate)

	in, err = PaymentRequest{Lease: 1, Amount: 5, PaymentDate: "2026-02-01"}.ToInput()
	require.NoError(t, err)
	require.NotNil(t, in.PaymentDate)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *in.PaymentDate)
}

func TestLeaseDetailResponseNestsPropertyAndPayments(t *testing.T) {
	propertyID := uint(3)
	lease := model.Lease{
		ID:          7,
		TenantID:    2,
		PropertyID:  &propertyID,
		Property:    &model.Property{ID: 3, Address: "1 Main St", Status: model.StatusRented},
		StartDate:   model.DateOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:     model.DateOf(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)),
		RateAmount:  1000,
		ActiveLease: true,
		Payments: []model.Payment{
			{ID: 9, LeaseID: 7, Amount: 250, PaymentDate: model.DateOf(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC))},
		},
	}

	detail := NewLeaseDetailResponse(lease)

	require.NotNil(t, detail.Property)
	assert.Equal(t, "1 Main St", detail.Property.Address)
	assert.Equal(t, "rented", detail.Property.Status)
	assert.Equal(t, "2026-01-01", detail.StartDate)
	assert.Equal(t, "2026-12-31", detail.EndDate)
	require.Len(t, detail.Payments, 1)
	assert.Equal(t, "2026-01-03", detail.Payments[0].PaymentDate)

	flat := NewLeaseResponse(lease)
	assert.Equal(t, &propertyID, flat.Property)
}
