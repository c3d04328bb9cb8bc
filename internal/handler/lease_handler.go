package handler

import (
	"net/http"

	"rental-service/internal/dto"
	"rental-service/internal/middleware"
	"rental-service/internal/service"

	"github.com/labstack/echo/v4"
)

type LeaseHandler struct {
	leases *service.LeaseService
}

func NewLeaseHandler(leases *service.LeaseService) *LeaseHandler {
	return &LeaseHandler{leases: leases}
}

// List returns leases on the caller's properties
func (h *LeaseHandler) List(c echo.Context) error {
	leases, err := h.leases.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err, "failed to retrieve leases")
	}
	return c.JSON(http.StatusOK, dto.NewLeaseList(leases))
}

// Create is open to any authenticated caller
func (h *LeaseHandler) Create(c echo.Context) error {
	in, err := h.input(c)
	if err != nil {
		return respondError(c, err, "invalid request")
	}

	lease, err := h.leases.Create(c.Request().Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		return respondError(c, err, "failed to create lease")
	}
	return c.JSON(http.StatusCreated, dto.NewLeaseResponse(lease))
}

// Get returns the lease with its nested property and payments
func (h *LeaseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	lease, err := h.leases.Detail(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return respondError(c, err, "failed to retrieve lease")
	}
	return c.JSON(http.StatusOK, dto.NewLeaseDetailResponse(lease))
}

func (h *LeaseHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	in, err := h.input(c)
	if err != nil {
		return respondError(c, err, "invalid request")
	}

	lease, err := h.leases.Update(c.Request().Context(), middleware.IdentityFrom(c), id, in)
	if err != nil {
		return respondError(c, err, "failed to update lease")
	}
	return c.JSON(http.StatusOK, dto.NewLeaseDetailResponse(lease))
}

func (h *LeaseHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	if err := h.leases.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err, "failed to delete lease")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LeaseHandler) input(c echo.Context) (service.LeaseInput, error) {
	var req dto.LeaseRequest
	if err := bind(c, &req); err != nil {
		return service.LeaseInput{}, err
	}
	return req.ToInput()
}
