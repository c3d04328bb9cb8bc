package handler

import (
	"rental-service/internal/contract"
	"rental-service/internal/dto"
	"rental-service/internal/middleware"
	"rental-service/internal/service"
	"rental-service/pkg/jwtutil"
	"rental-service/pkg/logger"
	"rental-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Dependencies wires the HTTP layer
type Dependencies struct {
	ServiceName string
	DB          *gorm.DB
	JWT         *jwtutil.JWTUtil
	Settings    service.Settings
	Renderer    contract.Renderer
}

// NewServer builds the echo instance with middleware and routes
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = dto.NewValidator()

	// serve every route with or without the trailing slash
	e.Pre(echomiddleware.AddTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
	}))

	// order matters
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	leaseService := service.NewLeaseService(deps.DB, deps.Settings)
	properties := NewPropertyHandler(service.NewPropertyService(deps.DB, deps.Settings))
	leases := NewLeaseHandler(leaseService)
	payments := NewPaymentHandler(service.NewPaymentService(deps.DB, deps.Settings))
	users := NewUserHandler(service.NewUserService(deps.DB))
	contracts := NewContractHandler(leaseService, deps.Renderer)

	auth := middleware.AuthMiddleware(deps.JWT)

	// Public routes
	e.GET("/health", HealthCheck(deps.ServiceName))
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.POST("/auth/users/", users.Register)
	e.GET("/auth/users/me/", users.Me, auth)

	api := e.Group("/api", auth)

	api.GET("/", properties.List)
	api.POST("/", properties.Create)
	api.GET("/:id/", properties.Get)
	api.PUT("/:id/", properties.Update)
	api.DELETE("/:id/", properties.Delete)

	api.GET("/leases/", leases.List)
	api.POST("/leases/", leases.Create)
	api.GET("/leases/:id/", leases.Get)
	api.PUT("/leases/:id/", leases.Update)
	api.DELETE("/leases/:id/", leases.Delete)

	api.GET("/payments/", payments.List)
	api.POST("/payments/", payments.Create)
	api.GET("/payments/:id/", payments.Get)
	api.PUT("/payments/:id/", payments.Update)
	api.DELETE("/payments/:id/", payments.Delete)

	api.GET("/users/", users.List)

	e.GET("/leases/:id/contract/", contracts.Export, auth)

	return e
}
