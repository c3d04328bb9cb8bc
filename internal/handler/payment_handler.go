package handler

import (
	"net/http"

	"rental-service/internal/dto"
	"rental-service/internal/middleware"
	"rental-service/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err, "failed to retrieve payments")
	}
	return c.JSON(http.StatusOK, dto.NewPaymentList(payments))
}

func (h *PaymentHandler) Create(c echo.Context) error {
	in, err := paymentInput(c)
	if err != nil {
		return respondError(c, err, "invalid request")
	}

	payment, err := h.payments.Create(c.Request().Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		return respondError(c, err, "failed to create payment")
	}
	return c.JSON(http.StatusCreated, dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	payment, err := h.payments.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return respondError(c, err, "failed to retrieve payment")
	}
	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	in, err := paymentInput(c)
	if err != nil {
		return respondError(c, err, "invalid request")
	}

	payment, err := h.payments.Update(c.Request().Context(), middleware.IdentityFrom(c), id, in)
	if err != nil {
		return respondError(c, err, "failed to update payment")
	}
	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	if err := h.payments.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err, "failed to delete payment")
	}
	return c.NoContent(http.StatusNoContent)
}

func paymentInput(c echo.Context) (service.PaymentInput, error) {
	var req dto.PaymentRequest
	if err := bind(c, &req); err != nil {
		return service.PaymentInput{}, err
	}
	return req.ToInput()
}
