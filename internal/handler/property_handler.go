package handler

import (
	"net/http"

	"rental-service/internal/dto"
	"rental-service/internal/middleware"
	"rental-service/internal/service"
	"rental-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	properties *service.PropertyService
}

func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List returns the caller's properties
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.properties.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err, "failed to retrieve properties")
	}
	logger.FromContext(c).Debug("Properties retrieved", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, dto.NewPropertyList(properties))
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var req dto.PropertyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err, "invalid request")
	}

	property, err := h.properties.Create(c.Request().Context(), middleware.IdentityFrom(c), req.ToInput())
	if err != nil {
		return respondError(c, err, "failed to create property")
	}
	return c.JSON(http.StatusCreated, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	property, err := h.properties.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return respondError(c, err, "failed to retrieve property")
	}
	return c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	var req dto.PropertyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err, "invalid request")
	}

	property, err := h.properties.Update(c.Request().Context(), middleware.IdentityFrom(c), id, req.ToInput())
	if err != nil {
		return respondError(c, err, "failed to update property")
	}
	return c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err, "")
	}

	if err := h.properties.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err, "failed to delete property")
	}
	return c.NoContent(http.StatusNoContent)
}
