package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

// RequireAdmin returns a middleware that restricts a route to
// administrators. It assumes JWTAuth already ran and stored the
// caller's role in the context; anything other than the administrator
// role is rejected with 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != model.RoleAdministrador {
				return c.JSON(http.StatusForbidden, echo.Map{
					"statusCode": http.StatusForbidden,
					"message":    "Acesso restrito a administradores.",
				})
			}
			return next(c)
		}
	}
}
