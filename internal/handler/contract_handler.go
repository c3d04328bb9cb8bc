package handler

import (
	"fmt"
	"net/http"

	"rental-service/internal/contract"
	"rental-service/internal/middleware"
	"rental-service/internal/service"
	"rental-service/pkg/logger"
	"rental-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ContractHandler struct {
	leases   *service.LeaseService
	renderer contract.Renderer
}

func NewContractHandler(leases *service.LeaseService, renderer contract.Renderer) *ContractHandler {
	return &ContractHandler{leases: leases, renderer: renderer}
}

// Export renders the contract of a lease for its tenant or property owner
func (h *ContractHandler) Export(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	lease, err := h.leases.ForContract(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return respondError(c, err, "failed to load lease")
	}

	body, err := h.renderer.Render(contract.Document{Lease: lease, Today: h.leases.Today()})
	if err != nil {
		log.Error("Failed to render contract", zap.Uint("lease_id", lease.ID), zap.Error(err))
		prometheus.RecordContractRender("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error while generating document"})
	}
	prometheus.RecordContractRender("ok")

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=\"lease-%d-contract.html\"", lease.ID))
	return c.Blob(http.StatusOK, h.renderer.ContentType(), body)
}
