package dto

import (
	"encoding/json"
	"time"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
	"rental-service/internal/service"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// LeaseRequest is the body of lease create and update. Omitted fields keep
// their stored value on update.
type LeaseRequest struct {
	Tenant      uint       `json:"tenant"`
	Property    OptionalID `json:"property"`
	StartDate   *string    `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string     `json:"end_date" validate:"required,datetime=2006-01-02"`
	RateAmount  float64    `json:"rate_amount" validate:"gte=0"`
	ActiveLease *bool      `json:"active_lease"`
}

// OptionalID is a nullable id that remembers whether the body carried it
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (r LeaseRequest) ToInput() (service.LeaseInput, error) {
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return service.LeaseInput{}, err
	}
	in := service.LeaseInput{
		TenantID:     r.Tenant,
		PropertyID:   r.Property.Value,
		KeepProperty: !r.Property.Set,
		EndDate:      end,
		RateAmount:   r.RateAmount,
		ActiveLease:  r.ActiveLease,
	}
	if r.StartDate != nil && *r.StartDate != "" {
		start, err := parseDate("start_date", *r.StartDate)
		if err != nil {
			return service.LeaseInput{}, err
		}
		in.StartDate = &start
	}
	return in, nil
}

type LeaseResponse struct {
	ID          uint    `json:"id"`
	Tenant      uint    `json:"tenant"`
	Property    *uint   `json:"property"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	RateAmount  float64 `json:"rate_amount"`
	ActiveLease bool    `json:"active_lease"`
}

func NewLeaseResponse(l model.Lease) LeaseResponse {
	return LeaseResponse{
		ID:          l.ID,
		Tenant:      l.TenantID,
		Property:    l.PropertyID,
		StartDate:   l.Start().Format(DateLayout),
		EndDate:     l.End().Format(DateLayout),
		RateAmount:  l.RateAmount,
		ActiveLease: l.ActiveLease,
	}
}

func NewLeaseList(leases []model.Lease) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, NewLeaseResponse(l))
	}
	return out
}

// LeaseDetailResponse nests the property and the payments of a lease
type LeaseDetailResponse struct {
	ID          uint              `json:"id"`
	Tenant      uint              `json:"tenant"`
	Property    *PropertyResponse `json:"property"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	RateAmount  float64           `json:"rate_amount"`
	ActiveLease bool              `json:"active_lease"`
	Payments    []PaymentResponse `json:"payments"`
}

func NewLeaseDetailResponse(l model.Lease) LeaseDetailResponse {
	detail := LeaseDetailResponse{
		ID:          l.ID,
		Tenant:      l.TenantID,
		StartDate:   l.Start().Format(DateLayout),
		EndDate:     l.End().Format(DateLayout),
		RateAmount:  l.RateAmount,
		ActiveLease: l.ActiveLease,
		Payments:    NewPaymentList(l.Payments),
	}
	if l.Property != nil {
		property := NewPropertyResponse(*l.Property)
		detail.Property = &property
	}
	return detail
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.NewValidationError(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	return t, nil
}
