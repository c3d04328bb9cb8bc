package middleware

import (
	"net/http"
	"strings"

	"rental-service/internal/model"
	"rental-service/internal/scope"
	"rental-service/pkg/jwtutil"
	"rental-service/pkg/logger"
	"rental-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer token and stores the caller's identity
func AuthMiddleware(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(identityKey, scope.Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     model.Role(claims.Role),
			})
			if l, ok := c.Get("logger").(*zap.Logger); ok {
				l = l.With(zap.Uint("user_id", claims.UserID))
				c.Set("logger", l)
				req := c.Request()
				c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
			}

			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware; the zero
// Identity when the request was not authenticated.
func IdentityFrom(c echo.Context) scope.Identity {
	id, _ := c.Get(identityKey).(scope.Identity)
	return id
}
