package dto

import (
	"rental-service/internal/model"
	"rental-service/internal/service"
)

// PaymentRequest is the body of payment create and update
type PaymentRequest struct {
	Lease       uint    `json:"lease" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	PaymentDate string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	IsPaid      bool    `json:"is_paid"`
}

func (r PaymentRequest) ToInput() (service.PaymentInput, error) {
	in := service.PaymentInput{
		LeaseID: r.Lease,
		Amount:  r.Amount,
		IsPaid:  r.IsPaid,
	}
	if r.PaymentDate != "" {
		paidOn, err := parseDate("payment_date", r.PaymentDate)
		if err != nil {
			return service.PaymentInput{}, err
		}
		in.PaymentDate = &paidOn
	}
	return in, nil
}

type PaymentResponse struct {
	ID          uint    `json:"id"`
	Lease       uint    `json:"lease"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	IsPaid      bool    `json:"is_paid"`
}

func NewPaymentResponse(p model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Lease:       p.LeaseID,
		Amount:      p.Amount,
		PaymentDate: p.PaidOn().Format(DateLayout),
		IsPaid:      p.IsPaid,
	}
}

func NewPaymentList(payments []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}
