package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthUser is the authenticated caller identity rebuilt from the JWT
// claims. It is derived once per request by JWTAuth and passed to
// handlers by value through the request context; no shared mutable
// state is involved.
type AuthUser struct {
	ID    uint64
	Nome  string
	Email string
	Role  string
}

// authUserKey is the context key under which JWTAuth stores the caller.
const authUserKey = "auth_user"

// CurrentUser returns the caller identity injected by JWTAuth. The
// second return is false when the request was not authenticated.
func CurrentUser(c echo.Context) (AuthUser, bool) {
	u, ok := c.Get(authUserKey).(AuthUser)
	return u, ok
}

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller identity into the request context. The
// provided secret must match the one used when issuing tokens. Wrap
// protected routes with it so handlers can call CurrentUser.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "Token não fornecido",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; tokens signed with any other
			// algorithm are rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "Token inválido ou expirado.",
				})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "Token inválido ou expirado.",
				})
			}

			user := AuthUser{ID: subjectID(claims)}
			if v, ok := claims["nome"].(string); ok {
				user.Nome = v
			}
			if v, ok := claims["email"].(string); ok {
				user.Email = v
			}
			if v, ok := claims["role"].(string); ok {
				user.Role = v
			}
			if user.ID == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "Token inválido ou expirado.",
				})
			}

			c.Set(authUserKey, user)
			// Role is also stored separately for RequireRole and for
			// user-keyed rate limiting.
			c.Set("role", user.Role)
			c.Set("user_id", strconv.FormatUint(user.ID, 10))
			return next(c)
		}
	}
}

// subjectID extracts the numeric user id from the sub claim. JSON
// numbers decode as float64; string subjects are parsed for
// compatibility with other issuers.
func subjectID(claims jwt.MapClaims) uint64 {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v)
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
